package router

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/handler"
	"otodeal/internal/adapter/api/middleware"
)

func SetupSubscriptionRouter(e *echo.Echo, subscriptionHandler *handler.SubscriptionHandler, authMiddleware *middleware.AuthMiddleware) {
	subscriptions := e.Group("/v1/subscriptions")

	// The webhook authenticates by signature, not by bearer token.
	subscriptions.POST("/webhook", subscriptionHandler.Webhook)

	subscriptions.POST("/checkout", subscriptionHandler.Checkout, authMiddleware.Authenticate)
	subscriptions.GET("/me", subscriptionHandler.Get, authMiddleware.Authenticate)
	subscriptions.DELETE("/me", subscriptionHandler.Cancel, authMiddleware.Authenticate)
}
