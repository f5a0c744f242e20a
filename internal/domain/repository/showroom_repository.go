package repository

import (
	"context"

	"otodeal/internal/domain/entity"
)

type ShowroomRepository interface {
	Create(ctx context.Context, showroom *entity.Showroom) error
	GetByID(ctx context.Context, id string) (*entity.Showroom, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Showroom, error)
	// GetByOwnerID returns the owner's showroom; NOT_FOUND when the seller
	// has not created one yet.
	GetByOwnerID(ctx context.Context, ownerID string) (*entity.Showroom, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Showroom, error)
	Update(ctx context.Context, showroom *entity.Showroom) error
	Delete(ctx context.Context, id string) error
	// List returns candidates regardless of status; visibility is applied by
	// the caller, never here.
	List(ctx context.Context, limit, offset int) ([]*entity.Showroom, int64, error)
}
