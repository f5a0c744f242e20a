package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/pkg/errors"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	// Sorted pair so equality and array-contains queries both hit the same
	// indexed field regardless of message direction.
	pair := []string{message.SenderID, message.ReceiverID}
	if pair[1] < pair[0] {
		pair[0], pair[1] = pair[1], pair[0]
	}
	message.Participants = pair

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Message, error) {
	iter := r.client.Collection("messages").
		Where("participants", "array-contains", userID).
		Documents(ctx)

	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreMessageRepository) ListBetween(ctx context.Context, userA, userB string, limit, offset int) ([]*entity.Message, int64, error) {
	pair := []string{userA, userB}
	if pair[1] < pair[0] {
		pair[0], pair[1] = pair[1], pair[0]
	}

	iter := r.client.Collection("messages").
		Where("participants", "==", pair).
		Documents(ctx)

	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	total := int64(len(messages))
	if offset >= len(messages) {
		return nil, total, nil
	}
	messages = messages[offset:]
	if limit > 0 && limit < len(messages) {
		messages = messages[:limit]
	}

	return messages, total, nil
}

// MarkRead flips IsRead for the given messages in a single batch. Messages
// that are missing, already read, or not addressed to receiverID are skipped,
// which makes retries harmless.
func (r *firestoreMessageRepository) MarkRead(ctx context.Context, receiverID string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(messageIDs))
	for _, id := range messageIDs {
		refs = append(refs, r.client.Collection("messages").Doc(id))
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return errors.Internal("Failed to get messages for read update", err)
	}

	batch := r.client.Batch()
	dirty := false
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return errors.Internal("Failed to parse message data", err)
		}
		if message.ReceiverID != receiverID || message.IsRead {
			continue
		}
		batch.Update(doc.Ref, []firestore.Update{
			{Path: "isRead", Value: true},
		})
		dirty = true
	}

	if !dirty {
		return nil
	}
	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to mark messages as read", err)
	}

	return nil
}

func (r *firestoreMessageRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("messages").
		Where("receiverId", "==", userID).
		Where("isRead", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread messages", err)
	}

	return int64(len(docs)), nil
}
