package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{
		client: client,
	}
}

// Document ID is userID_carID, so adding twice overwrites the same document
// and a favorite can be looked up without a query.
func favoriteDocID(userID, carID string) string {
	return userID + "_" + carID
}

func (r *firestoreFavoriteRepository) Add(ctx context.Context, userID, carID string) (*entity.Favorite, error) {
	favorite := &entity.Favorite{
		ID:        favoriteDocID(userID, carID),
		UserID:    userID,
		CarID:     carID,
		CreatedAt: time.Now(),
	}

	_, err := r.client.Collection("favorites").Doc(favorite.ID).Set(ctx, favorite)
	if err != nil {
		return nil, errors.Internal("Failed to add favorite", err)
	}

	return favorite, nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, carID string) error {
	_, err := r.client.Collection("favorites").Doc(favoriteDocID(userID, carID)).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to remove favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) IsFavorite(ctx context.Context, userID, carID string) (bool, error) {
	_, err := r.client.Collection("favorites").Doc(favoriteDocID(userID, carID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errors.Internal("Failed to check favorite", err)
	}

	return true, nil
}

func (r *firestoreFavoriteRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, int64, error) {
	query := r.client.Collection("favorites").
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count favorites", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var favorites []*entity.Favorite
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate favorites", err)
		}

		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			return nil, 0, errors.Internal("Failed to parse favorite data", err)
		}
		favorites = append(favorites, &favorite)
	}

	return favorites, total, nil
}

func (r *firestoreFavoriteRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("favorites").
		Where("userId", "==", userID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count favorites", err)
	}

	return int64(len(docs)), nil
}
