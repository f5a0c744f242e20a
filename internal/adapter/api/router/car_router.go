package router

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/handler"
	"otodeal/internal/adapter/api/middleware"
)

func SetupCarRouter(e *echo.Echo, carHandler *handler.CarHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	cars := e.Group("/v1/cars")

	cars.GET("", carHandler.List, authMiddleware.OptionalAuthenticate)
	cars.GET("/search", carHandler.Search, authMiddleware.OptionalAuthenticate)
	cars.GET("/featured", carHandler.Featured, authMiddleware.OptionalAuthenticate)
	cars.GET("/:id", carHandler.Get, authMiddleware.OptionalAuthenticate)

	cars.POST("", carHandler.Create, authMiddleware.Authenticate)
	cars.PATCH("/:id", carHandler.Update, authMiddleware.Authenticate)
	cars.DELETE("/:id", carHandler.Delete, authMiddleware.Authenticate)

	cars.PATCH("/:id/featured", carHandler.SetFeatured, authMiddleware.Authenticate, adminMiddleware.AdminOnly)
}
