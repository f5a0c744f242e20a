package handler

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"otodeal/internal/infrastructure/websocket"
	"otodeal/pkg/logger"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	manager    *websocket.Manager
	authClient *auth.Client
}

func NewWebSocketHandler(manager *websocket.Manager, authClient *auth.Client) *WebSocketHandler {
	return &WebSocketHandler{
		manager:    manager,
		authClient: authClient,
	}
}

// Connect authenticates via the token query parameter; browsers cannot set
// headers on WebSocket requests.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Token is required")
	}

	decoded, err := h.authClient.VerifyIDToken(c.Request().Context(), token)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed for %s: %v", decoded.UID, err)
		return err
	}

	client := &websocket.Client{
		UserID: decoded.UID,
		Conn:   conn,
		Send:   make(chan []byte, 64),
	}

	h.manager.Register <- client

	go client.WritePump()
	go client.ReadPump(h.manager)

	return nil
}
