package handler

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/middleware"
	"otodeal/internal/usecase"
	"otodeal/pkg/errors"
	"otodeal/pkg/response"
	"otodeal/pkg/utils"
)

type ShowroomHandler struct {
	showroomUseCase *usecase.ShowroomUseCase
}

func NewShowroomHandler(showroomUseCase *usecase.ShowroomUseCase) *ShowroomHandler {
	return &ShowroomHandler{
		showroomUseCase: showroomUseCase,
	}
}

type showroomRequest struct {
	Name        string `json:"name" validate:"omitempty,min=3,max=100"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	City        string `json:"city"`
	Phone       string `json:"phone"`
	LogoURL     string `json:"logo_url" validate:"omitempty,url"`
	BannerURL   string `json:"banner_url" validate:"omitempty,url"`
	Status      string `json:"status" validate:"omitempty,oneof=draft published"`
}

type showroomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published"`
}

func (h *ShowroomHandler) Create(c echo.Context) error {
	var req showroomRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if req.Name == "" {
		return response.Error(c, errors.BadRequest("Name is required", nil))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	showroom, err := h.showroomUseCase.Create(c.Request().Context(), middleware.RequesterFrom(c), usecase.ShowroomInput{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Phone:       req.Phone,
		LogoURL:     req.LogoURL,
		BannerURL:   req.BannerURL,
		Status:      req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, showroom)
}

func (h *ShowroomHandler) Update(c echo.Context) error {
	var req showroomRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	showroom, err := h.showroomUseCase.Update(c.Request().Context(), middleware.RequesterFrom(c), c.Param("id"), usecase.ShowroomInput{
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		Phone:       req.Phone,
		LogoURL:     req.LogoURL,
		BannerURL:   req.BannerURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, showroom)
}

func (h *ShowroomHandler) SetStatus(c echo.Context) error {
	var req showroomStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	showroom, err := h.showroomUseCase.SetStatus(c.Request().Context(), middleware.RequesterFrom(c), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, showroom)
}

func (h *ShowroomHandler) Get(c echo.Context) error {
	showroom, err := h.showroomUseCase.Get(c.Request().Context(), middleware.RequesterFrom(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, showroom)
}

func (h *ShowroomHandler) GetBySlug(c echo.Context) error {
	showroom, err := h.showroomUseCase.GetBySlug(c.Request().Context(), middleware.RequesterFrom(c), c.Param("slug"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, showroom)
}

func (h *ShowroomHandler) GetMine(c echo.Context) error {
	userID := c.Get("uid").(string)

	showroom, err := h.showroomUseCase.GetMine(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, showroom)
}

func (h *ShowroomHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	showrooms, total, err := h.showroomUseCase.List(c.Request().Context(), middleware.RequesterFrom(c), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, showrooms, total, pagination.Page, pagination.PageSize)
}

func (h *ShowroomHandler) Delete(c echo.Context) error {
	if err := h.showroomUseCase.Delete(c.Request().Context(), middleware.RequesterFrom(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Showroom deleted successfully",
	})
}
