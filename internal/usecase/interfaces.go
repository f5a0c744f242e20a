package usecase

import (
	"context"
	"io"
	"time"

	"otodeal/internal/domain/service"
	"otodeal/internal/infrastructure/firebase"
)

// AuthProvider abstracts the identity backend so the auth flow can be tested
// without Firebase.
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(ctx context.Context, email, password string) (*firebase.SignInResult, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
	DeleteUser(ctx context.Context, uid string) error
}

// Notifier pushes real-time payloads to connected users. Offline users are
// skipped; messages are persisted regardless.
type Notifier interface {
	SendToUser(userID string, payload []byte)
	IsOnline(userID string) bool
}

// RateLimiter caps per-user action rates.
type RateLimiter interface {
	Allow(ctx context.Context, userID, action string) (bool, time.Duration)
}

// PaymentGateway is the billing surface used by subscriptions.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, customerEmail, priceID, successURL, cancelURL string) (*service.CheckoutSession, error)
	CancelSubscription(ctx context.Context, subscriptionID string) error
	VerifyWebhookSignature(payload []byte, header string) error
	ParseEvent(payload []byte) (*service.WebhookEvent, error)
}

// FileStorage stores uploaded files and returns their public URL plus object
// name.
type FileStorage interface {
	UploadFile(ctx context.Context, file io.Reader, contentType, folder string, isPublic bool) (string, string, error)
	DeleteFile(ctx context.Context, fileURL string) error
}
