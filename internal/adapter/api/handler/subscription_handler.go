package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"otodeal/internal/usecase"
	"otodeal/pkg/errors"
	"otodeal/pkg/response"
)

type SubscriptionHandler struct {
	subscriptionUseCase *usecase.SubscriptionUseCase
}

func NewSubscriptionHandler(subscriptionUseCase *usecase.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: subscriptionUseCase,
	}
}

func (h *SubscriptionHandler) Checkout(c echo.Context) error {
	userID := c.Get("uid").(string)

	result, err := h.subscriptionUseCase.Checkout(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *SubscriptionHandler) Get(c echo.Context) error {
	userID := c.Get("uid").(string)

	subscription, err := h.subscriptionUseCase.Get(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, subscription)
}

func (h *SubscriptionHandler) Cancel(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.subscriptionUseCase.Cancel(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Subscription canceled",
	})
}

// Webhook needs the raw body for signature verification, so it reads the
// request itself instead of binding.
func (h *SubscriptionHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read webhook body", err))
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if err := h.subscriptionUseCase.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"received": "true",
	})
}
