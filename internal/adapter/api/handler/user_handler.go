package handler

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/usecase"
	"otodeal/pkg/errors"
	"otodeal/pkg/response"
	"otodeal/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

type updateProfileRequest struct {
	Username  string `json:"username" validate:"omitempty,min=3,max=30"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio" validate:"omitempty,max=500"`
	FullName  string `json:"full_name"`
	City      string `json:"city"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

type setRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=buyer seller admin"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	user, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), userID, usecase.UpdateProfileInput{
		Username:  req.Username,
		Phone:     req.Phone,
		Bio:       req.Bio,
		FullName:  req.FullName,
		City:      req.City,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	users, total, err := h.userUseCase.ListUsers(
		c.Request().Context(),
		c.QueryParam("role"),
		c.QueryParam("status"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, users, total, pagination.Page, pagination.PageSize)
}

func (h *UserHandler) SetRole(c echo.Context) error {
	userID := c.Param("id")

	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.SetRole(c.Request().Context(), userID, req.Role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) SetStatus(c echo.Context) error {
	userID := c.Param("id")

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.SetStatus(c.Request().Context(), userID, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
