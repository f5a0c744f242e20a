package router

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/handler"
	"otodeal/internal/adapter/api/middleware"
)

func SetupShowroomRouter(e *echo.Echo, showroomHandler *handler.ShowroomHandler, carHandler *handler.CarHandler, authMiddleware *middleware.AuthMiddleware) {
	showrooms := e.Group("/v1/showrooms")

	// Public reads carry an optional identity so owners see their own draft.
	showrooms.GET("", showroomHandler.List, authMiddleware.OptionalAuthenticate)
	showrooms.GET("/slug/:slug", showroomHandler.GetBySlug, authMiddleware.OptionalAuthenticate)
	showrooms.GET("/:id", showroomHandler.Get, authMiddleware.OptionalAuthenticate)
	showrooms.GET("/:id/cars", carHandler.ListByShowroom, authMiddleware.OptionalAuthenticate)

	showrooms.POST("", showroomHandler.Create, authMiddleware.Authenticate)
	showrooms.GET("/me", showroomHandler.GetMine, authMiddleware.Authenticate)
	showrooms.PATCH("/:id", showroomHandler.Update, authMiddleware.Authenticate)
	showrooms.PATCH("/:id/status", showroomHandler.SetStatus, authMiddleware.Authenticate)
	showrooms.DELETE("/:id", showroomHandler.Delete, authMiddleware.Authenticate)
}
