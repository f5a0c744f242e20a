package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/middleware"
	"otodeal/internal/domain/entity"
	"otodeal/internal/usecase"
	"otodeal/pkg/errors"
	"otodeal/pkg/response"
	"otodeal/pkg/utils"
)

type CarHandler struct {
	carUseCase *usecase.CarUseCase
}

func NewCarHandler(carUseCase *usecase.CarUseCase) *CarHandler {
	return &CarHandler{
		carUseCase: carUseCase,
	}
}

type carRequest struct {
	Title        string            `json:"title" validate:"omitempty,min=3,max=150"`
	Make         string            `json:"make"`
	Model        string            `json:"model"`
	Year         int               `json:"year" validate:"omitempty,gte=1900,lte=2100"`
	Price        float64           `json:"price" validate:"omitempty,gt=0"`
	Mileage      int               `json:"mileage" validate:"omitempty,gte=0"`
	Transmission string            `json:"transmission" validate:"omitempty,oneof=manual automatic"`
	FuelType     string            `json:"fuel_type"`
	Description  string            `json:"description" validate:"omitempty,max=5000"`
	Images       []entity.CarImage `json:"images"`
	Status       string            `json:"status" validate:"omitempty,oneof=active sold"`
}

type featuredRequest struct {
	Featured bool `json:"featured"`
}

func (h *CarHandler) Create(c echo.Context) error {
	var req carRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if req.Title == "" || req.Make == "" || req.Model == "" {
		return response.Error(c, errors.BadRequest("Title, make and model are required", nil))
	}
	if req.Year == 0 || req.Price == 0 {
		return response.Error(c, errors.BadRequest("Year and price are required", nil))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	car, err := h.carUseCase.Create(c.Request().Context(), middleware.RequesterFrom(c), carInputFrom(req))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, car)
}

func (h *CarHandler) Get(c echo.Context) error {
	car, err := h.carUseCase.Get(c.Request().Context(), middleware.RequesterFrom(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, car)
}

func (h *CarHandler) Update(c echo.Context) error {
	var req carRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	car, err := h.carUseCase.Update(c.Request().Context(), middleware.RequesterFrom(c), c.Param("id"), carInputFrom(req))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, car)
}

func (h *CarHandler) Delete(c echo.Context) error {
	if err := h.carUseCase.Delete(c.Request().Context(), middleware.RequesterFrom(c), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Car deleted successfully",
	})
}

func (h *CarHandler) List(c echo.Context) error {
	params := h.listParams(c)

	cars, total, err := h.carUseCase.List(c.Request().Context(), middleware.RequesterFrom(c), params)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, cars, total, params.Page, params.PageSize)
}

func (h *CarHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return response.Error(c, errors.BadRequest("Search query is required", nil))
	}
	params := h.listParams(c)

	cars, total, err := h.carUseCase.Search(c.Request().Context(), middleware.RequesterFrom(c), query, params)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, cars, total, params.Page, params.PageSize)
}

func (h *CarHandler) Featured(c echo.Context) error {
	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 50 {
			limit = parsed
		}
	}

	cars, err := h.carUseCase.Featured(c.Request().Context(), middleware.RequesterFrom(c), limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, cars)
}

func (h *CarHandler) SetFeatured(c echo.Context) error {
	var req featuredRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	car, err := h.carUseCase.SetFeatured(c.Request().Context(), middleware.RequesterFrom(c), c.Param("id"), req.Featured)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, car)
}

func (h *CarHandler) ListByShowroom(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	cars, total, err := h.carUseCase.ListByShowroom(
		c.Request().Context(),
		middleware.RequesterFrom(c),
		c.Param("id"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, cars, total, pagination.Page, pagination.PageSize)
}

func (h *CarHandler) listParams(c echo.Context) usecase.CarListParams {
	pagination := utils.GetPaginationParams(c)

	year := 0
	if raw := c.QueryParam("year"); raw != "" {
		year, _ = strconv.Atoi(raw)
	}

	return usecase.CarListParams{
		Make:     c.QueryParam("make"),
		Model:    c.QueryParam("model"),
		Year:     year,
		Status:   c.QueryParam("status"),
		Sort:     c.QueryParam("sort"),
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}
}

func carInputFrom(req carRequest) usecase.CarInput {
	return usecase.CarInput{
		Title:        req.Title,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		Mileage:      req.Mileage,
		Transmission: req.Transmission,
		FuelType:     req.FuelType,
		Description:  req.Description,
		Images:       req.Images,
		Status:       req.Status,
	}
}
