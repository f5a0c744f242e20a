package handler

import (
	"github.com/labstack/echo/v4"

	"otodeal/internal/usecase"
	"otodeal/pkg/errors"
	"otodeal/pkg/response"
	"otodeal/pkg/utils"
)

type MessageHandler struct {
	messageUseCase *usecase.MessageUseCase
}

func NewMessageHandler(messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiver_id" validate:"required"`
	Content    string `json:"content" validate:"required,max=2000"`
}

type markReadRequest struct {
	MessageIDs []string `json:"message_ids" validate:"required,min=1"`
}

func (h *MessageHandler) Send(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.messageUseCase.Send(c.Request().Context(), userID, req.ReceiverID, req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *MessageHandler) ListConversations(c echo.Context) error {
	userID := c.Get("uid").(string)

	conversations, err := h.messageUseCase.ListConversations(
		c.Request().Context(),
		userID,
		c.QueryParam("q"),
		c.QueryParam("unread") == "true",
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

func (h *MessageHandler) GetConversation(c echo.Context) error {
	userID := c.Get("uid").(string)
	counterpartID := c.Param("userId")
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.messageUseCase.GetConversation(
		c.Request().Context(),
		userID,
		counterpartID,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *MessageHandler) MarkConversationRead(c echo.Context) error {
	userID := c.Get("uid").(string)
	counterpartID := c.Param("userId")

	count, err := h.messageUseCase.MarkConversationRead(c.Request().Context(), userID, counterpartID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int{
		"marked_read": count,
	})
}

func (h *MessageHandler) MarkRead(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req markReadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.messageUseCase.MarkRead(c.Request().Context(), userID, req.MessageIDs); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Messages marked as read",
	})
}

func (h *MessageHandler) UnreadCount(c echo.Context) error {
	userID := c.Get("uid").(string)

	count, err := h.messageUseCase.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{
		"unread_count": count,
	})
}
