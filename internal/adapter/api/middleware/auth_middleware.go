package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/internal/domain/service"
)

type AuthMiddleware struct {
	authClient *auth.Client
	userRepo   repository.UserRepository
}

func NewAuthMiddleware(authClient *auth.Client, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authClient: authClient,
		userRepo:   userRepo,
	}
}

// Authenticate requires a valid Bearer token and loads the requester. Every
// downstream permission check reads the requester from the context; nothing
// else may construct one.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, err := m.verifyBearer(c)
		if err != nil {
			return err
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unknown user")
		}
		if user.Status != entity.UserStatusActive {
			return echo.NewHTTPError(http.StatusForbidden, "Account suspended")
		}

		c.Set("uid", uid)
		c.Set("requester", service.RequesterFor(user))
		return next(c)
	}
}

// OptionalAuthenticate loads the requester when a valid token is present and
// continues as a guest otherwise. Public listings use this so owners see
// their own drafts.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set("requester", service.Guest())

		uid, err := m.verifyBearer(c)
		if err != nil {
			return next(c)
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil || user.Status != entity.UserStatusActive {
			return next(c)
		}

		c.Set("uid", uid)
		c.Set("requester", service.RequesterFor(user))
		return next(c)
	}
}

func (m *AuthMiddleware) verifyBearer(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
	}

	token, err := m.authClient.VerifyIDToken(c.Request().Context(), parts[1])
	if err != nil {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}
	return token.UID, nil
}

// RequesterFrom reads the requester set by the middleware, falling back to a
// guest when absent.
func RequesterFrom(c echo.Context) service.Requester {
	if req, ok := c.Get("requester").(service.Requester); ok {
		return req
	}
	return service.Guest()
}
