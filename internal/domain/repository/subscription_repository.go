package repository

import (
	"context"

	"otodeal/internal/domain/entity"
)

type SubscriptionRepository interface {
	Upsert(ctx context.Context, subscription *entity.Subscription) error
	GetByUserID(ctx context.Context, userID string) (*entity.Subscription, error)
	GetByCheckoutSessionID(ctx context.Context, sessionID string) (*entity.Subscription, error)
	GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*entity.Subscription, error)
}
