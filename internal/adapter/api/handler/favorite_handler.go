package handler

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/middleware"
	"otodeal/internal/usecase"
	"otodeal/pkg/errors"
	"otodeal/pkg/response"
	"otodeal/pkg/utils"
)

type FavoriteHandler struct {
	favoriteUseCase *usecase.FavoriteUseCase
}

func NewFavoriteHandler(favoriteUseCase *usecase.FavoriteUseCase) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUseCase: favoriteUseCase,
	}
}

func (h *FavoriteHandler) Add(c echo.Context) error {
	carID := c.Param("carId")
	if carID == "" {
		return response.Error(c, errors.BadRequest("Car ID is required", nil))
	}

	favorite, err := h.favoriteUseCase.Add(c.Request().Context(), middleware.RequesterFrom(c), carID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, favorite)
}

func (h *FavoriteHandler) Remove(c echo.Context) error {
	userID := c.Get("uid").(string)
	carID := c.Param("carId")
	if carID == "" {
		return response.Error(c, errors.BadRequest("Car ID is required", nil))
	}

	if err := h.favoriteUseCase.Remove(c.Request().Context(), userID, carID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Car removed from favorites",
	})
}

func (h *FavoriteHandler) Status(c echo.Context) error {
	userID := c.Get("uid").(string)
	carID := c.Param("carId")

	isFavorite, err := h.favoriteUseCase.IsFavorite(c.Request().Context(), userID, carID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{
		"is_favorite": isFavorite,
	})
}

func (h *FavoriteHandler) List(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	favorites, total, err := h.favoriteUseCase.List(
		c.Request().Context(),
		middleware.RequesterFrom(c),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, favorites, total, pagination.Page, pagination.PageSize)
}

func (h *FavoriteHandler) Count(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.favoriteUseCase.Count(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{
		"count": count,
	})
}
