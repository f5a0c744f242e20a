package router

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/handler"
	"otodeal/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware *middleware.AuthMiddleware) {
	auth := e.Group("/v1/auth")

	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/change-password", authHandler.ChangePassword, authMiddleware.Authenticate)
}
