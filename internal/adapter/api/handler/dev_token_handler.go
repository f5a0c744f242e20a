package handler

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/domain/repository"
	"otodeal/internal/infrastructure/firebase"
	"otodeal/pkg/errors"
	"otodeal/pkg/response"
)

// DevTokenHandler mints custom tokens for local testing. Never wired up in
// production.
type DevTokenHandler struct {
	authClient *firebase.FirebaseAuthClient
	userRepo   repository.UserRepository
}

func NewDevTokenHandler(authClient *firebase.FirebaseAuthClient, userRepo repository.UserRepository) *DevTokenHandler {
	return &DevTokenHandler{
		authClient: authClient,
		userRepo:   userRepo,
	}
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		return response.Error(c, errors.BadRequest("uid query parameter is required", nil))
	}

	if _, err := h.userRepo.GetByID(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	token, err := h.authClient.GenerateDevToken(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate token", err))
	}

	return response.Success(c, map[string]string{
		"custom_token": token,
	})
}
