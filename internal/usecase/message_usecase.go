package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"otodeal/internal/domain/entity"
	"otodeal/internal/domain/repository"
	"otodeal/internal/domain/service"
	"otodeal/pkg/errors"
	"otodeal/pkg/logger"
)

type MessageUseCase struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	limiter     RateLimiter
	notifier    Notifier
}

func NewMessageUseCase(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	limiter RateLimiter,
	notifier Notifier,
) *MessageUseCase {
	return &MessageUseCase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		limiter:     limiter,
		notifier:    notifier,
	}
}

type ConversationSummary struct {
	ID          string          `json:"id"`
	Counterpart *Counterpart    `json:"counterpart"`
	LastMessage *entity.Message `json:"last_message,omitempty"`
	UnreadCount int             `json:"unread_count"`
}

type Counterpart struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Online    bool   `json:"online"`
}

func (uc *MessageUseCase) Send(ctx context.Context, senderID, receiverID, content string) (*entity.Message, error) {
	if senderID == receiverID {
		return nil, errors.BadRequest("Cannot message yourself", nil)
	}
	if content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	receiver, err := uc.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		return nil, err
	}

	if allowed, retryAfter := uc.limiter.Allow(ctx, senderID, "send_message"); !allowed {
		return nil, errors.TooManyRequests(fmt.Sprintf("Sending too fast, retry in %s", retryAfter.Round(time.Second)))
	}

	message := &entity.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		payload, err := json.Marshal(map[string]interface{}{
			"type":    "new_message",
			"message": message,
		})
		if err == nil {
			uc.notifier.SendToUser(receiver.ID, payload)
		}
	}

	return message, nil
}

// ListConversations rebuilds the conversation list from the flat message log.
// Search and unread filters run after grouping so counts and ordering stay
// correct.
func (uc *MessageUseCase) ListConversations(ctx context.Context, userID, query string, unreadOnly bool) ([]*ConversationSummary, error) {
	messages, err := uc.messageRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations := service.GroupMessages(userID, messages)

	counterparts := uc.resolveCounterparts(ctx, conversations)
	if query != "" {
		conversations = service.SearchConversations(conversations, query, func(id string) string {
			if c, ok := counterparts[id]; ok {
				return c.Username
			}
			return ""
		})
	}
	if unreadOnly {
		conversations = service.UnreadConversations(conversations)
	}

	summaries := make([]*ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		counterpart := counterparts[conv.CounterpartID]
		if counterpart == nil {
			counterpart = &Counterpart{ID: conv.CounterpartID, Username: "Deleted user"}
		}
		summaries = append(summaries, &ConversationSummary{
			ID:          conv.ID,
			Counterpart: counterpart,
			LastMessage: conv.LastMessage,
			UnreadCount: conv.UnreadCount,
		})
	}
	return summaries, nil
}

func (uc *MessageUseCase) GetConversation(ctx context.Context, userID, counterpartID string, page, pageSize int) ([]*entity.Message, int64, error) {
	offset := (page - 1) * pageSize
	return uc.messageRepo.ListBetween(ctx, userID, counterpartID, pageSize, offset)
}

// MarkConversationRead flips every unread message the user received from the
// counterpart in one batch. Safe to call repeatedly.
func (uc *MessageUseCase) MarkConversationRead(ctx context.Context, userID, counterpartID string) (int, error) {
	messages, _, err := uc.messageRepo.ListBetween(ctx, userID, counterpartID, 0, 0)
	if err != nil {
		return 0, err
	}

	conv := &service.Conversation{Messages: messages}
	ids := conv.UnreadMessageIDs(userID)
	if len(ids) == 0 {
		return 0, nil
	}

	if err := uc.messageRepo.MarkRead(ctx, userID, ids); err != nil {
		return 0, err
	}

	logger.Debug("Marked %d messages read for %s in conversation with %s", len(ids), userID, counterpartID)
	return len(ids), nil
}

func (uc *MessageUseCase) MarkRead(ctx context.Context, userID string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return errors.BadRequest("No message IDs provided", nil)
	}
	return uc.messageRepo.MarkRead(ctx, userID, messageIDs)
}

func (uc *MessageUseCase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.messageRepo.CountUnread(ctx, userID)
}

func (uc *MessageUseCase) resolveCounterparts(ctx context.Context, conversations []*service.Conversation) map[string]*Counterpart {
	resolved := make(map[string]*Counterpart, len(conversations))
	for _, conv := range conversations {
		if _, ok := resolved[conv.CounterpartID]; ok {
			continue
		}
		user, err := uc.userRepo.GetByID(ctx, conv.CounterpartID)
		if err != nil {
			// Deleted accounts keep their conversations readable.
			continue
		}
		counterpart := &Counterpart{
			ID:        user.ID,
			Username:  user.Username,
			AvatarURL: user.AvatarURL,
		}
		if uc.notifier != nil {
			counterpart.Online = uc.notifier.IsOnline(user.ID)
		}
		resolved[user.ID] = counterpart
	}
	return resolved
}
