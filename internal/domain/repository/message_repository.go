package repository

import (
	"context"

	"otodeal/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// ListByUserID returns every message the user sent or received,
	// unordered; the conversation grouper needs the complete log.
	ListByUserID(ctx context.Context, userID string) ([]*entity.Message, error)
	// ListBetween returns the chronological message log between two users.
	ListBetween(ctx context.Context, userA, userB string, limit, offset int) ([]*entity.Message, int64, error)
	// MarkRead flips IsRead in one batch write, but only for messages whose
	// receiver is receiverID and that are still unread. Retries are no-ops.
	MarkRead(ctx context.Context, receiverID string, messageIDs []string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}
