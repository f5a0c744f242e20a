package service

import (
	"sort"
	"strings"

	"otodeal/internal/domain/entity"
)

// Conversation is a derived view over the flat message log: one per
// counterpart, recomputed on every fetch, never persisted.
type Conversation struct {
	ID            string            `json:"id"`
	CounterpartID string            `json:"counterpart_id"`
	Messages      []*entity.Message `json:"messages"`
	LastMessage   *entity.Message   `json:"last_message,omitempty"`
	UnreadCount   int               `json:"unread_count"`
}

// ConversationID builds the canonical key for a pair of users. The key is
// order-independent so A→B and B→A land in the same bucket.
func ConversationID(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return userA + "_" + userB
}

// GroupMessages reconstructs conversations from the flat, unordered message
// log of the current user. Messages within a conversation are sorted
// chronologically ascending; conversations are ordered by last activity,
// most recent first. Unread counts only ever count messages the current
// user received.
func GroupMessages(currentUserID string, messages []*entity.Message) []*Conversation {
	byKey := make(map[string]*Conversation)
	var order []string

	for _, m := range messages {
		if m == nil {
			continue
		}
		counterpart := m.ReceiverID
		if m.SenderID != currentUserID {
			counterpart = m.SenderID
		}
		key := ConversationID(currentUserID, counterpart)
		conv, ok := byKey[key]
		if !ok {
			conv = &Conversation{ID: key, CounterpartID: counterpart}
			byKey[key] = conv
			order = append(order, key)
		}
		conv.Messages = append(conv.Messages, m)
	}

	conversations := make([]*Conversation, 0, len(order))
	for _, key := range order {
		conv := byKey[key]
		sort.SliceStable(conv.Messages, func(i, j int) bool {
			return conv.Messages[i].CreatedAt.Before(conv.Messages[j].CreatedAt)
		})
		if n := len(conv.Messages); n > 0 {
			conv.LastMessage = conv.Messages[n-1]
		}
		for _, m := range conv.Messages {
			if !m.IsRead && m.ReceiverID == currentUserID {
				conv.UnreadCount++
			}
		}
		conversations = append(conversations, conv)
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		a, b := conversations[i].LastMessage, conversations[j].LastMessage
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return conversations
}

// SearchConversations keeps conversations whose counterpart display name or
// any message content contains the query, case-insensitive. Applied after
// grouping so unread counts and last-message pointers stay correct.
func SearchConversations(conversations []*Conversation, query string, displayName func(userID string) string) []*Conversation {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return conversations
	}

	matched := make([]*Conversation, 0, len(conversations))
	for _, conv := range conversations {
		if displayName != nil && strings.Contains(strings.ToLower(displayName(conv.CounterpartID)), query) {
			matched = append(matched, conv)
			continue
		}
		for _, m := range conv.Messages {
			if strings.Contains(strings.ToLower(m.Content), query) {
				matched = append(matched, conv)
				break
			}
		}
	}
	return matched
}

// UnreadConversations keeps conversations with at least one unread message.
func UnreadConversations(conversations []*Conversation) []*Conversation {
	unread := make([]*Conversation, 0, len(conversations))
	for _, conv := range conversations {
		if conv.UnreadCount > 0 {
			unread = append(unread, conv)
		}
	}
	return unread
}

// UnreadMessageIDs returns the IDs the receiver should mark as read when
// opening the conversation, as one batch.
func (c *Conversation) UnreadMessageIDs(currentUserID string) []string {
	var ids []string
	for _, m := range c.Messages {
		if !m.IsRead && m.ReceiverID == currentUserID {
			ids = append(ids, m.ID)
		}
	}
	return ids
}
