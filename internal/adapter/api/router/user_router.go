package router

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/handler"
	"otodeal/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", userHandler.GetProfile)
	users.PATCH("/me", userHandler.UpdateProfile)

	admin := e.Group("/v1/admin/users")
	admin.Use(authMiddleware.Authenticate, adminMiddleware.AdminOnly)

	admin.GET("", userHandler.ListUsers)
	admin.PATCH("/:id/role", userHandler.SetRole)
	admin.PATCH("/:id/status", userHandler.SetStatus)
}
