package router

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/adapter/api/handler"
	"otodeal/internal/adapter/api/middleware"
)

func SetupMessageRouter(e *echo.Echo, messageHandler *handler.MessageHandler, authMiddleware *middleware.AuthMiddleware) {
	messages := e.Group("/v1/messages")
	messages.Use(authMiddleware.Authenticate)

	messages.POST("", messageHandler.Send)
	messages.GET("/conversations", messageHandler.ListConversations)
	messages.GET("/conversations/:userId", messageHandler.GetConversation)
	messages.POST("/conversations/:userId/read", messageHandler.MarkConversationRead)
	messages.POST("/read", messageHandler.MarkRead)
	messages.GET("/unread-count", messageHandler.UnreadCount)
}
