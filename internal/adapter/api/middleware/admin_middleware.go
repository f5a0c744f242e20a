package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"otodeal/internal/domain/service"
)

type AdminMiddleware struct{}

func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

// AdminOnly must run after Authenticate; it trusts the requester loaded there.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req, ok := c.Get("requester").(service.Requester)
		if !ok || !req.Authenticated {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}
		if !req.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "Admin privileges required")
		}
		return next(c)
	}
}
