package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/pkg/errors"
)

type firestoreSubscriptionRepository struct {
	client *firestore.Client
}

func NewFirestoreSubscriptionRepository(client *firestore.Client) repository.SubscriptionRepository {
	return &firestoreSubscriptionRepository{
		client: client,
	}
}

// Upsert keys the document by user ID; a user has at most one subscription
// record and webhook replays just rewrite the same document.
func (r *firestoreSubscriptionRepository) Upsert(ctx context.Context, subscription *entity.Subscription) error {
	if subscription.ID == "" {
		subscription.ID = subscription.UserID
	}

	now := time.Now()
	if subscription.CreatedAt.IsZero() {
		subscription.CreatedAt = now
	}
	subscription.UpdatedAt = now

	_, err := r.client.Collection("subscriptions").Doc(subscription.ID).Set(ctx, subscription)
	if err != nil {
		return errors.Internal("Failed to save subscription", err)
	}

	return nil
}

func (r *firestoreSubscriptionRepository) GetByUserID(ctx context.Context, userID string) (*entity.Subscription, error) {
	doc, err := r.client.Collection("subscriptions").Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Subscription", err)
		}
		return nil, errors.Internal("Failed to get subscription", err)
	}

	var subscription entity.Subscription
	if err := doc.DataTo(&subscription); err != nil {
		return nil, errors.Internal("Failed to parse subscription data", err)
	}

	return &subscription, nil
}

func (r *firestoreSubscriptionRepository) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*entity.Subscription, error) {
	return r.getByField(ctx, "checkoutSessionId", sessionID)
}

func (r *firestoreSubscriptionRepository) GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*entity.Subscription, error) {
	return r.getByField(ctx, "stripeSubscriptionId", stripeSubscriptionID)
}

func (r *firestoreSubscriptionRepository) getByField(ctx context.Context, field, value string) (*entity.Subscription, error) {
	iter := r.client.Collection("subscriptions").Where(field, "==", value).Limit(1).Documents(ctx)
	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Subscription", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query subscription", err)
	}

	var subscription entity.Subscription
	if err := doc.DataTo(&subscription); err != nil {
		return nil, errors.Internal("Failed to parse subscription data", err)
	}

	return &subscription, nil
}
