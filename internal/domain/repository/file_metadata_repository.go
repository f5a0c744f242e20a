package repository

import (
	"context"

	"otodeal/internal/domain/entity"
)

type FileMetadataRepository interface {
	Create(ctx context.Context, metadata *entity.FileMetadata) error
	GetByID(ctx context.Context, id string) (*entity.FileMetadata, error)
	Delete(ctx context.Context, id string) error
}
