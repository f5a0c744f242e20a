package router

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/handler"
	"otodeal/internal/adapter/api/middleware"
)

func SetupFavoriteRouter(e *echo.Echo, favoriteHandler *handler.FavoriteHandler, authMiddleware *middleware.AuthMiddleware) {
	favorites := e.Group("/v1/favorites")
	favorites.Use(authMiddleware.Authenticate)

	favorites.POST("/:carId", favoriteHandler.Add)
	favorites.DELETE("/:carId", favoriteHandler.Remove)
	favorites.GET("/:carId/status", favoriteHandler.Status)
	favorites.GET("", favoriteHandler.List)
	favorites.GET("/count", favoriteHandler.Count)
}
