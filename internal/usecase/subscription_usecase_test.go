package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/service"
	"otodeal/pkg/errors"
)

type fakeSubscriptionRepo struct {
	byUser map[string]*entity.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{byUser: map[string]*entity.Subscription{}}
}

func (r *fakeSubscriptionRepo) Upsert(ctx context.Context, subscription *entity.Subscription) error {
	r.byUser[subscription.UserID] = subscription
	return nil
}

func (r *fakeSubscriptionRepo) GetByUserID(ctx context.Context, userID string) (*entity.Subscription, error) {
	if s, ok := r.byUser[userID]; ok {
		return s, nil
	}
	return nil, errors.NotFound("Subscription", nil)
}

func (r *fakeSubscriptionRepo) GetByCheckoutSessionID(ctx context.Context, sessionID string) (*entity.Subscription, error) {
	for _, s := range r.byUser {
		if s.CheckoutSessionID == sessionID {
			return s, nil
		}
	}
	return nil, errors.NotFound("Subscription", nil)
}

func (r *fakeSubscriptionRepo) GetByStripeSubscriptionID(ctx context.Context, stripeSubscriptionID string) (*entity.Subscription, error) {
	for _, s := range r.byUser {
		if s.StripeSubscriptionID == stripeSubscriptionID {
			return s, nil
		}
	}
	return nil, errors.NotFound("Subscription", nil)
}

type fakeGateway struct {
	session        *service.CheckoutSession
	verifyErr      error
	canceledSubIDs []string
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, customerEmail, priceID, successURL, cancelURL string) (*service.CheckoutSession, error) {
	return g.session, nil
}

func (g *fakeGateway) CancelSubscription(ctx context.Context, subscriptionID string) error {
	g.canceledSubIDs = append(g.canceledSubIDs, subscriptionID)
	return nil
}

func (g *fakeGateway) VerifyWebhookSignature(payload []byte, header string) error {
	return g.verifyErr
}

func (g *fakeGateway) ParseEvent(payload []byte) (*service.WebhookEvent, error) {
	var event service.WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func billingFixture() (*SubscriptionUseCase, *fakeSubscriptionRepo, *fakeGateway) {
	subRepo := newFakeSubscriptionRepo()
	userRepo := newFakeUserRepo(
		&entity.User{ID: "seller-1", Email: "seller@example.com", Role: entity.RoleSeller},
		&entity.User{ID: "buyer-1", Email: "buyer@example.com", Role: entity.RoleBuyer},
	)
	gateway := &fakeGateway{session: &service.CheckoutSession{ID: "cs_123", URL: "https://checkout.example/cs_123"}}
	uc := NewSubscriptionUseCase(subRepo, userRepo, gateway, allowAllLimiter{},
		"price_pro", "https://app.example/ok", "https://app.example/cancel")
	return uc, subRepo, gateway
}

func TestCheckout_SellerOnly(t *testing.T) {
	uc, _, _ := billingFixture()

	_, err := uc.Checkout(context.Background(), "buyer-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCheckout_CreatesIncompleteSubscription(t *testing.T) {
	uc, subRepo, _ := billingFixture()

	result, err := uc.Checkout(context.Background(), "seller-1")
	require.NoError(t, err)
	assert.Equal(t, "cs_123", result.SessionID)

	sub := subRepo.byUser["seller-1"]
	require.NotNil(t, sub)
	assert.Equal(t, entity.SubscriptionStatusIncomplete, sub.Status)
	assert.Equal(t, "cs_123", sub.CheckoutSessionID)
}

func TestWebhook_CheckoutCompletedActivates(t *testing.T) {
	uc, subRepo, _ := billingFixture()

	_, err := uc.Checkout(context.Background(), "seller-1")
	require.NoError(t, err)

	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_123","customer":"cus_9","subscription":"sub_9"}}}`)
	require.NoError(t, uc.HandleWebhook(context.Background(), payload, "sig"))

	sub := subRepo.byUser["seller-1"]
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, entity.PlanPro, sub.Plan)
	assert.Equal(t, "sub_9", sub.StripeSubscriptionID)

	// Replay changes nothing and does not error.
	require.NoError(t, uc.HandleWebhook(context.Background(), payload, "sig"))
	assert.Equal(t, entity.SubscriptionStatusActive, subRepo.byUser["seller-1"].Status)
}

func TestWebhook_InvalidSignatureRejected(t *testing.T) {
	uc, _, gateway := billingFixture()
	gateway.verifyErr = assert.AnError

	err := uc.HandleWebhook(context.Background(), []byte(`{}`), "bad")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestWebhook_SubscriptionDeletedDowngrades(t *testing.T) {
	uc, subRepo, _ := billingFixture()
	subRepo.byUser["seller-1"] = &entity.Subscription{
		UserID:               "seller-1",
		Plan:                 entity.PlanPro,
		Status:               entity.SubscriptionStatusActive,
		StripeSubscriptionID: "sub_9",
	}

	payload := []byte(`{"type":"customer.subscription.deleted","data":{"object":{"id":"sub_9"}}}`)
	require.NoError(t, uc.HandleWebhook(context.Background(), payload, "sig"))

	sub := subRepo.byUser["seller-1"]
	assert.Equal(t, entity.SubscriptionStatusCanceled, sub.Status)
	assert.Equal(t, entity.PlanFree, sub.Plan)
}

func TestGet_SynthesizesFreePlan(t *testing.T) {
	uc, _, _ := billingFixture()

	sub, err := uc.Get(context.Background(), "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PlanFree, sub.Plan)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
}

func TestCancel_CallsGatewayAndDowngrades(t *testing.T) {
	uc, subRepo, gateway := billingFixture()
	subRepo.byUser["seller-1"] = &entity.Subscription{
		UserID:               "seller-1",
		Plan:                 entity.PlanPro,
		Status:               entity.SubscriptionStatusActive,
		StripeSubscriptionID: "sub_9",
	}

	require.NoError(t, uc.Cancel(context.Background(), "seller-1"))
	assert.Equal(t, []string{"sub_9"}, gateway.canceledSubIDs)
	assert.Equal(t, entity.PlanFree, subRepo.byUser["seller-1"].Plan)
}
