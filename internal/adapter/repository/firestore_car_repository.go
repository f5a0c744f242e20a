package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/pkg/errors"
)

type firestoreCarRepository struct {
	client *firestore.Client
}

func NewFirestoreCarRepository(client *firestore.Client) repository.CarRepository {
	return &firestoreCarRepository{
		client: client,
	}
}

func (r *firestoreCarRepository) Create(ctx context.Context, car *entity.Car) error {
	if car.ID == "" {
		car.ID = uuid.New().String()
	}

	now := time.Now()
	car.CreatedAt = now
	car.UpdatedAt = now

	_, err := r.client.Collection("cars").Doc(car.ID).Set(ctx, car)
	if err != nil {
		return errors.Internal("Failed to create car", err)
	}

	return nil
}

func (r *firestoreCarRepository) GetByID(ctx context.Context, id string) (*entity.Car, error) {
	doc, err := r.client.Collection("cars").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Car", err)
		}
		return nil, errors.Internal("Failed to get car", err)
	}

	var car entity.Car
	if err := doc.DataTo(&car); err != nil {
		return nil, errors.Internal("Failed to parse car data", err)
	}
	if car.DeletedAt != nil {
		return nil, errors.NotFound("Car", nil)
	}

	return &car, nil
}

func (r *firestoreCarRepository) List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Car, int64, error) {
	query := r.client.Collection("cars").Query
	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	switch sort {
	case "price_asc":
		query = query.OrderBy("price", firestore.Asc)
	case "price_desc":
		query = query.OrderBy("price", firestore.Desc)
	case "year_desc":
		query = query.OrderBy("year", firestore.Desc)
	default:
		query = query.OrderBy("createdAt", firestore.Desc)
	}

	cars, err := r.collect(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return paginateCars(cars, limit, offset)
}

// Search filters by case-insensitive substring over title, make and model.
// Firestore has no native text search, so the filter runs in memory over the
// filtered candidate set.
func (r *firestoreCarRepository) Search(ctx context.Context, queryStr string, filter map[string]interface{}, limit, offset int) ([]*entity.Car, int64, error) {
	query := r.client.Collection("cars").Query
	for key, value := range filter {
		query = query.Where(key, "==", value)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	cars, err := r.collect(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	needle := strings.ToLower(strings.TrimSpace(queryStr))
	if needle != "" {
		matched := cars[:0]
		for _, car := range cars {
			haystack := strings.ToLower(car.Title + " " + car.Make + " " + car.Model)
			if strings.Contains(haystack, needle) {
				matched = append(matched, car)
			}
		}
		cars = matched
	}

	return paginateCars(cars, limit, offset)
}

func (r *firestoreCarRepository) ListByShowroomID(ctx context.Context, showroomID string, limit, offset int) ([]*entity.Car, int64, error) {
	query := r.client.Collection("cars").
		Where("showroomId", "==", showroomID).
		OrderBy("createdAt", firestore.Desc)

	cars, err := r.collect(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	return paginateCars(cars, limit, offset)
}

func (r *firestoreCarRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Car, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.client.Collection("cars").Doc(id))
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errors.Internal("Failed to batch get cars", err)
	}

	cars := make([]*entity.Car, 0, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var car entity.Car
		if err := doc.DataTo(&car); err != nil {
			return nil, errors.Internal("Failed to parse car data", err)
		}
		if car.DeletedAt != nil {
			continue
		}
		cars = append(cars, &car)
	}

	return cars, nil
}

func (r *firestoreCarRepository) Update(ctx context.Context, car *entity.Car) error {
	car.UpdatedAt = time.Now()

	_, err := r.client.Collection("cars").Doc(car.ID).Set(ctx, car)
	if err != nil {
		return errors.Internal("Failed to update car", err)
	}

	return nil
}

func (r *firestoreCarRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("cars").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Car", err)
		}
		return errors.Internal("Failed to delete car", err)
	}

	return nil
}

func (r *firestoreCarRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.client.Collection("cars").Doc(id).Update(ctx, []firestore.Update{
		{Path: "views", Value: firestore.Increment(1)},
	})
	if err != nil {
		return errors.Internal("Failed to increment car views", err)
	}

	return nil
}

// collect runs the query and drops soft-deleted documents.
func (r *firestoreCarRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Car, error) {
	iter := query.Documents(ctx)
	var cars []*entity.Car
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate cars", err)
		}

		var car entity.Car
		if err := doc.DataTo(&car); err != nil {
			return nil, errors.Internal("Failed to parse car data", err)
		}
		if car.DeletedAt != nil {
			continue
		}
		cars = append(cars, &car)
	}

	return cars, nil
}

func paginateCars(cars []*entity.Car, limit, offset int) ([]*entity.Car, int64, error) {
	total := int64(len(cars))

	if offset >= len(cars) {
		return nil, total, nil
	}
	cars = cars[offset:]
	if limit > 0 && limit < len(cars) {
		cars = cars[:limit]
	}

	return cars, total, nil
}
