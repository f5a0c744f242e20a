package router

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/handler"
	"otodeal/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, fileHandler *handler.FileHandler, authMiddleware *middleware.AuthMiddleware) {
	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)

	files.POST("/upload", fileHandler.Upload)
	files.DELETE("/:id", fileHandler.Delete)
}
