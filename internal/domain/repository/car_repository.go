package repository

import (
	"context"

	"otodeal/internal/domain/entity"
)

type CarRepository interface {
	Create(ctx context.Context, car *entity.Car) error
	GetByID(ctx context.Context, id string) (*entity.Car, error)
	// List and Search return candidates regardless of showroom status;
	// visibility is applied by the caller, never here.
	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Car, int64, error)
	Search(ctx context.Context, query string, filter map[string]interface{}, limit, offset int) ([]*entity.Car, int64, error)
	ListByShowroomID(ctx context.Context, showroomID string, limit, offset int) ([]*entity.Car, int64, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Car, error)
	Update(ctx context.Context, car *entity.Car) error
	SoftDelete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}
