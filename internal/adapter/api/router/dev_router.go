package router

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/handler"
)

// SetupDevRouter mounts development-only endpoints. No-op in production.
func SetupDevRouter(e *echo.Echo, environment string, devTokenHandler *handler.DevTokenHandler) {
	if environment == "production" {
		return
	}

	dev := e.Group("/v1/dev")
	dev.GET("/token", devTokenHandler.GenerateToken)
}
