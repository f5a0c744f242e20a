package repository

import (
	"context"

	"otodeal/internal/domain/entity"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, carID string) (*entity.Favorite, error)
	Remove(ctx context.Context, userID, carID string) error
	IsFavorite(ctx context.Context, userID, carID string) (bool, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, int64, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}
