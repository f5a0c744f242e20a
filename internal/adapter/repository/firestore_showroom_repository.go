package repository

import (
	"context"
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

type firestoreShowroomRepository struct {
	client *firestore.Client
}

func NewFirestoreShowroomRepository(client *firestore.Client) repository.ShowroomRepository {
	return &firestoreShowroomRepository{
		client: client,
	}
}

func (r *firestoreShowroomRepository) Create(ctx context.Context, showroom *entity.Showroom) error {
	if showroom.ID == "" {
		showroom.ID = uuid.New().String()
	}

	now := time.Now()
	showroom.CreatedAt = now
	showroom.UpdatedAt = now

	_, err := r.client.Collection("showrooms").Doc(showroom.ID).Set(ctx, showroom)
	if err != nil {
		return errors.Internal("Failed to create showroom", err)
	}

	return nil
}

func (r *firestoreShowroomRepository) GetByID(ctx context.Context, id string) (*entity.Showroom, error) {
	doc, err := r.client.Collection("showrooms").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Showroom", err)
		}
		return nil, errors.Internal("Failed to get showroom", err)
	}

	var showroom entity.Showroom
	if err := doc.DataTo(&showroom); err != nil {
		return nil, errors.Internal("Failed to parse showroom data", err)
	}

	return &showroom, nil
}

func (r *firestoreShowroomRepository) GetBySlug(ctx context.Context, slug string) (*entity.Showroom, error) {
	return r.getByField(ctx, "slug", slug)
}

func (r *firestoreShowroomRepository) GetByOwnerID(ctx context.Context, ownerID string) (*entity.Showroom, error) {
	return r.getByField(ctx, "ownerId", ownerID)
}

func (r *firestoreShowroomRepository) getByField(ctx context.Context, field, value string) (*entity.Showroom, error) {
	iter := r.client.Collection("showrooms").Where(field, "==", value).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Showroom", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query showroom", err)
	}

	var showroom entity.Showroom
	if err := doc.DataTo(&showroom); err != nil {
		return nil, errors.Internal("Failed to parse showroom data", err)
	}

	return &showroom, nil
}

// GetByIDs batch-fetches showrooms; missing IDs are silently skipped so the
// caller can treat them as unresolved references.
func (r *firestoreShowroomRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Showroom, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.client.Collection("showrooms").Doc(id))
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, errors.Internal("Failed to batch get showrooms", err)
	}

	showrooms := make([]*entity.Showroom, 0, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var showroom entity.Showroom
		if err := doc.DataTo(&showroom); err != nil {
			return nil, errors.Internal("Failed to parse showroom data", err)
		}
		showrooms = append(showrooms, &showroom)
	}

	return showrooms, nil
}

func (r *firestoreShowroomRepository) Update(ctx context.Context, showroom *entity.Showroom) error {
	showroom.UpdatedAt = time.Now()

	_, err := r.client.Collection("showrooms").Doc(showroom.ID).Set(ctx, showroom)
	if err != nil {
		return errors.Internal("Failed to update showroom", err)
	}

	return nil
}

func (r *firestoreShowroomRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("showrooms").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete showroom", err)
	}

	return nil
}

func (r *firestoreShowroomRepository) List(ctx context.Context, limit, offset int) ([]*entity.Showroom, int64, error) {
	query := r.client.Collection("showrooms").OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count showrooms", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var showrooms []*entity.Showroom
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate showrooms", err)
		}

		var showroom entity.Showroom
		if err := doc.DataTo(&showroom); err != nil {
			return nil, 0, errors.Internal("Failed to parse showroom data", err)
		}
		showrooms = append(showrooms, &showroom)
	}

	return showrooms, total, nil
}
