package usecase

import (
	"context"
	"fmt"
	"io"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/internal/domain/service"
	"otodeal/pkg/errors"
	"otodeal/pkg/logger"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

type FileUseCase struct {
	fileRepo       repository.FileMetadataRepository
	storage        FileStorage
	maxUploadBytes int64
}

func NewFileUseCase(fileRepo repository.FileMetadataRepository, storage FileStorage, maxUploadSizeMB int64) *FileUseCase {
	return &FileUseCase{
		fileRepo:       fileRepo,
		storage:        storage,
		maxUploadBytes: maxUploadSizeMB * 1024 * 1024,
	}
}

type UploadInput struct {
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
	EntityType  string
	EntityID    string
	IsPublic    bool
}

func (uc *FileUseCase) Upload(ctx context.Context, userID string, input UploadInput) (*entity.FileMetadata, error) {
	if input.Size > uc.maxUploadBytes {
		return nil, errors.BadRequest(fmt.Sprintf("File exceeds %d MB limit", uc.maxUploadBytes/(1024*1024)), nil)
	}
	if !allowedImageTypes[input.ContentType] {
		return nil, errors.BadRequest("Only JPEG, PNG and WebP images are allowed", nil)
	}
	switch input.EntityType {
	case "car", "showroom", "user":
	default:
		return nil, errors.BadRequest("Invalid entity type", nil)
	}

	url, objectName, err := uc.storage.UploadFile(ctx, input.File, input.ContentType, input.EntityType, input.IsPublic)
	if err != nil {
		return nil, errors.Internal("Failed to upload file", err)
	}

	metadata := &entity.FileMetadata{
		URL:        url,
		ObjectName: objectName,
		EntityType: input.EntityType,
		EntityID:   input.EntityID,
		UploadedBy: userID,
		Filename:   input.Filename,
		FileType:   input.ContentType,
		FileSize:   input.Size,
		IsPublic:   input.IsPublic,
	}
	if err := uc.fileRepo.Create(ctx, metadata); err != nil {
		if delErr := uc.storage.DeleteFile(ctx, url); delErr != nil {
			logger.Error("Failed to roll back upload %s: %v", objectName, delErr)
		}
		return nil, err
	}

	logger.Info("File %s uploaded by %s for %s/%s", metadata.ID, userID, input.EntityType, input.EntityID)
	return metadata, nil
}

func (uc *FileUseCase) Delete(ctx context.Context, requester service.Requester, id string) error {
	metadata, err := uc.fileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !requester.IsAdmin() && metadata.UploadedBy != requester.UserID {
		return errors.Forbidden("Not your file", nil)
	}

	if err := uc.storage.DeleteFile(ctx, metadata.URL); err != nil {
		return errors.Internal("Failed to delete file", err)
	}
	return uc.fileRepo.Delete(ctx, id)
}
