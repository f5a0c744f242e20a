package entity

import (
	"time"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

const (
	SubscriptionStatusIncomplete = "incomplete"
	SubscriptionStatusActive     = "active"
	SubscriptionStatusPastDue    = "past_due"
	SubscriptionStatusCanceled   = "canceled"
)

type Subscription struct {
	ID     string `json:"id" firestore:"id"`
	UserID string `json:"user_id" firestore:"userId"`
	Plan   string `json:"plan" firestore:"plan"`
	Status string `json:"status" firestore:"status"`

	StripeCustomerID     string `json:"stripe_customer_id,omitempty" firestore:"stripeCustomerId,omitempty"`
	StripeSubscriptionID string `json:"stripe_subscription_id,omitempty" firestore:"stripeSubscriptionId,omitempty"`
	CheckoutSessionID    string `json:"checkout_session_id,omitempty" firestore:"checkoutSessionId,omitempty"`

	CurrentPeriodEnd *time.Time `json:"current_period_end,omitempty" firestore:"currentPeriodEnd,omitempty"`
	CreatedAt        time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt        time.Time  `json:"updated_at" firestore:"updatedAt"`
}
