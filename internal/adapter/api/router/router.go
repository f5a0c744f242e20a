package router

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/handler"
	"otodeal/internal/adapter/api/middleware"
)

type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Showroom     *handler.ShowroomHandler
	Car          *handler.CarHandler
	Message      *handler.MessageHandler
	Favorite     *handler.FavoriteHandler
	Subscription *handler.SubscriptionHandler
	File         *handler.FileHandler
	WebSocket    *handler.WebSocketHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	SetupAuthRouter(e, h.Auth, authMiddleware)
	SetupUserRouter(e, h.User, authMiddleware, adminMiddleware)
	SetupShowroomRouter(e, h.Showroom, h.Car, authMiddleware)
	SetupCarRouter(e, h.Car, authMiddleware, adminMiddleware)
	SetupMessageRouter(e, h.Message, authMiddleware)
	SetupFavoriteRouter(e, h.Favorite, authMiddleware)
	SetupSubscriptionRouter(e, h.Subscription, authMiddleware)
	SetupFileRouter(e, h.File, authMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
}
