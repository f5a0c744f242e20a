package handler

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/middleware"
	"otodeal/internal/usecase"
	"otodeal/pkg/errors"
	"otodeal/pkg/response"
)

type FileHandler struct {
	fileUseCase *usecase.FileUseCase
}

func NewFileHandler(fileUseCase *usecase.FileUseCase) *FileHandler {
	return &FileHandler{
		fileUseCase: fileUseCase,
	}
}

func (h *FileHandler) Upload(c echo.Context) error {
	userID := c.Get("uid").(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	entityType := c.FormValue("entity_type")
	if entityType == "" {
		entityType = "car"
	}

	metadata, err := h.fileUseCase.Upload(c.Request().Context(), userID, usecase.UploadInput{
		File:        src,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		EntityType:  entityType,
		EntityID:    c.FormValue("entity_id"),
		IsPublic:    c.FormValue("public") != "false",
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, metadata)
}

func (h *FileHandler) Delete(c echo.Context) error {
	if err := h.fileUseCase.Delete(c.Request().Context(), middleware.RequesterFrom(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "File deleted successfully",
	})
}
