package usecase

import (
	"context"
	"fmt"
	"time"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/internal/domain/service"
	"otodeal/pkg/errors"
	"otodeal/pkg/logger"
)

type SubscriptionUseCase struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
	gateway          PaymentGateway
	limiter          RateLimiter

	priceIDPro string
	successURL string
	cancelURL  string
}

func NewSubscriptionUseCase(
	subscriptionRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	gateway PaymentGateway,
	limiter RateLimiter,
	priceIDPro, successURL, cancelURL string,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		gateway:          gateway,
		limiter:          limiter,
		priceIDPro:       priceIDPro,
		successURL:       successURL,
		cancelURL:        cancelURL,
	}
}

type CheckoutResult struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

func (uc *SubscriptionUseCase) Checkout(ctx context.Context, userID string) (*CheckoutResult, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != entity.RoleSeller {
		return nil, errors.Forbidden("Only sellers can subscribe", nil)
	}

	if existing, err := uc.subscriptionRepo.GetByUserID(ctx, userID); err == nil &&
		existing.Status == entity.SubscriptionStatusActive {
		return nil, errors.Conflict("Subscription already active")
	}

	if allowed, retryAfter := uc.limiter.Allow(ctx, userID, "checkout"); !allowed {
		return nil, errors.TooManyRequests(fmt.Sprintf("Too many checkout attempts, retry in %s", retryAfter.Round(time.Second)))
	}

	session, err := uc.gateway.CreateCheckoutSession(ctx, user.Email, uc.priceIDPro, uc.successURL, uc.cancelURL)
	if err != nil {
		return nil, errors.Internal("Failed to create checkout session", err)
	}

	subscription := &entity.Subscription{
		UserID:            userID,
		Plan:              entity.PlanPro,
		Status:            entity.SubscriptionStatusIncomplete,
		CheckoutSessionID: session.ID,
	}
	if err := uc.subscriptionRepo.Upsert(ctx, subscription); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

// HandleWebhook verifies the signature, then applies the event to the matching
// subscription record. Unknown event types and unknown sessions are ignored so
// replays and test events cannot fail the endpoint.
func (uc *SubscriptionUseCase) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if err := uc.gateway.VerifyWebhookSignature(payload, signatureHeader); err != nil {
		return errors.Unauthorized("Invalid webhook signature", err)
	}

	event, err := uc.gateway.ParseEvent(payload)
	if err != nil {
		return errors.BadRequest("Malformed webhook payload", err)
	}

	switch event.Type {
	case "checkout.session.completed":
		return uc.activateFromCheckout(ctx, event)
	case "customer.subscription.updated":
		return uc.syncStatus(ctx, event)
	case "customer.subscription.deleted":
		return uc.deactivate(ctx, event)
	default:
		logger.Debug("Ignoring webhook event type %s", event.Type)
		return nil
	}
}

func (uc *SubscriptionUseCase) activateFromCheckout(ctx context.Context, event *service.WebhookEvent) error {
	obj := event.Data.Object
	subscription, err := uc.subscriptionRepo.GetByCheckoutSessionID(ctx, obj.ID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			logger.Warn("Webhook for unknown checkout session %s", obj.ID)
			return nil
		}
		return err
	}

	subscription.Status = entity.SubscriptionStatusActive
	subscription.Plan = entity.PlanPro
	subscription.StripeCustomerID = obj.Customer
	subscription.StripeSubscriptionID = obj.Subscription
	if err := uc.subscriptionRepo.Upsert(ctx, subscription); err != nil {
		return err
	}

	logger.Info("Subscription activated for user %s", subscription.UserID)
	return nil
}

func (uc *SubscriptionUseCase) syncStatus(ctx context.Context, event *service.WebhookEvent) error {
	obj := event.Data.Object
	subscription, err := uc.subscriptionRepo.GetByStripeSubscriptionID(ctx, obj.ID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil
		}
		return err
	}

	switch obj.Status {
	case "active":
		subscription.Status = entity.SubscriptionStatusActive
	case "past_due":
		subscription.Status = entity.SubscriptionStatusPastDue
	case "canceled", "unpaid":
		subscription.Status = entity.SubscriptionStatusCanceled
		subscription.Plan = entity.PlanFree
	default:
		return nil
	}
	if obj.CurrentPeriodEnd > 0 {
		end := time.Unix(obj.CurrentPeriodEnd, 0)
		subscription.CurrentPeriodEnd = &end
	}

	return uc.subscriptionRepo.Upsert(ctx, subscription)
}

func (uc *SubscriptionUseCase) deactivate(ctx context.Context, event *service.WebhookEvent) error {
	subscription, err := uc.subscriptionRepo.GetByStripeSubscriptionID(ctx, event.Data.Object.ID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil
		}
		return err
	}

	subscription.Status = entity.SubscriptionStatusCanceled
	subscription.Plan = entity.PlanFree
	if err := uc.subscriptionRepo.Upsert(ctx, subscription); err != nil {
		return err
	}

	logger.Info("Subscription canceled for user %s", subscription.UserID)
	return nil
}

// Get returns the user's subscription, or a synthesized free plan when none
// exists; every user is implicitly on the free plan.
func (uc *SubscriptionUseCase) Get(ctx context.Context, userID string) (*entity.Subscription, error) {
	subscription, err := uc.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return &entity.Subscription{
				UserID: userID,
				Plan:   entity.PlanFree,
				Status: entity.SubscriptionStatusActive,
			}, nil
		}
		return nil, err
	}
	return subscription, nil
}

func (uc *SubscriptionUseCase) Cancel(ctx context.Context, userID string) error {
	subscription, err := uc.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if subscription.StripeSubscriptionID == "" || subscription.Status != entity.SubscriptionStatusActive {
		return errors.BadRequest("No active subscription to cancel", nil)
	}

	if err := uc.gateway.CancelSubscription(ctx, subscription.StripeSubscriptionID); err != nil {
		return errors.Internal("Failed to cancel subscription", err)
	}

	subscription.Status = entity.SubscriptionStatusCanceled
	subscription.Plan = entity.PlanFree
	return uc.subscriptionRepo.Upsert(ctx, subscription)
}
