package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"otodeal/internal/domain/entity"
)

func msg(id, sender, receiver, content string, read bool, at int64) *entity.Message {
	return &entity.Message{
		ID:         id,
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    content,
		IsRead:     read,
		CreatedAt:  time.Unix(at, 0),
	}
}

func TestConversationIDOrderIndependent(t *testing.T) {
	assert.Equal(t, ConversationID("a", "b"), ConversationID("b", "a"))
	assert.Equal(t, "a_b", ConversationID("b", "a"))
}

func TestGroupMessagesDirectionIndependent(t *testing.T) {
	messages := []*entity.Message{
		msg("1", "u1", "u2", "hi", false, 10),
		msg("2", "u2", "u1", "hello", false, 20),
	}

	conversations := GroupMessages("u1", messages)

	assert.Len(t, conversations, 1)
	assert.Equal(t, "u2", conversations[0].CounterpartID)
	assert.Len(t, conversations[0].Messages, 2)
}

func TestGroupMessagesTwoPartyExchange(t *testing.T) {
	// Messages 1→2 (unread, t=10) and 2→1 (unread, t=20) for currentUserId=1:
	// one conversation, unreadCount=1, lastMessage.id=2.
	messages := []*entity.Message{
		msg("1", "1", "2", "a", false, 10),
		msg("2", "2", "1", "b", false, 20),
	}

	conversations := GroupMessages("1", messages)

	assert.Len(t, conversations, 1)
	assert.Equal(t, "2", conversations[0].CounterpartID)
	assert.Equal(t, 1, conversations[0].UnreadCount)
	assert.Equal(t, "2", conversations[0].LastMessage.ID)
}

func TestGroupMessagesChronologicalOrder(t *testing.T) {
	messages := []*entity.Message{
		msg("3", "u2", "u1", "third", false, 30),
		msg("1", "u1", "u2", "first", true, 10),
		msg("2", "u2", "u1", "second", true, 20),
	}

	conversations := GroupMessages("u1", messages)

	assert.Len(t, conversations, 1)
	got := conversations[0].Messages
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].CreatedAt.Before(got[i-1].CreatedAt))
	}
	assert.Equal(t, "3", conversations[0].LastMessage.ID)
}

func TestGroupMessagesUnreadExcludesSelfSent(t *testing.T) {
	messages := []*entity.Message{
		msg("1", "u1", "u2", "sent by me, unread by them", false, 10),
		msg("2", "u1", "u2", "also mine", false, 11),
		msg("3", "u2", "u1", "theirs", false, 12),
	}

	conversations := GroupMessages("u1", messages)

	assert.Equal(t, 1, conversations[0].UnreadCount)
}

func TestGroupMessagesOrdersByLastActivity(t *testing.T) {
	messages := []*entity.Message{
		msg("1", "u1", "u2", "old thread", true, 10),
		msg("2", "u1", "u3", "newer thread", true, 50),
		msg("3", "u4", "u1", "newest thread", false, 90),
	}

	conversations := GroupMessages("u1", messages)

	assert.Len(t, conversations, 3)
	assert.Equal(t, "u4", conversations[0].CounterpartID)
	assert.Equal(t, "u3", conversations[1].CounterpartID)
	assert.Equal(t, "u2", conversations[2].CounterpartID)
}

func TestGroupMessagesEmptyInput(t *testing.T) {
	assert.Empty(t, GroupMessages("u1", nil))
	assert.Empty(t, GroupMessages("u1", []*entity.Message{}))
}

func TestGroupMessagesMultipleCounterparts(t *testing.T) {
	messages := []*entity.Message{
		msg("1", "u2", "u1", "a", false, 10),
		msg("2", "u1", "u3", "b", false, 20),
		msg("3", "u3", "u1", "c", false, 30),
		msg("4", "u2", "u1", "d", false, 40),
	}

	conversations := GroupMessages("u1", messages)

	assert.Len(t, conversations, 2)
	for _, conv := range conversations {
		assert.Len(t, conv.Messages, 2)
	}
}

func TestSearchConversationsMatchesNameOrContent(t *testing.T) {
	conversations := GroupMessages("u1", []*entity.Message{
		msg("1", "u2", "u1", "about the BMW listing", false, 10),
		msg("2", "u3", "u1", "hello there", false, 20),
	})
	names := map[string]string{"u2": "Andi Motors", "u3": "Budi"}
	displayName := func(id string) string { return names[id] }

	byContent := SearchConversations(conversations, "bmw", displayName)
	assert.Len(t, byContent, 1)
	assert.Equal(t, "u2", byContent[0].CounterpartID)

	byName := SearchConversations(conversations, "budi", displayName)
	assert.Len(t, byName, 1)
	assert.Equal(t, "u3", byName[0].CounterpartID)

	all := SearchConversations(conversations, "  ", displayName)
	assert.Len(t, all, 2)
}

func TestUnreadConversationsFilter(t *testing.T) {
	conversations := GroupMessages("u1", []*entity.Message{
		msg("1", "u2", "u1", "unread", false, 10),
		msg("2", "u3", "u1", "read", true, 20),
	})

	unread := UnreadConversations(conversations)

	assert.Len(t, unread, 1)
	assert.Equal(t, "u2", unread[0].CounterpartID)
}

func TestUnreadMessageIDsOnlyReceiverUnread(t *testing.T) {
	conversations := GroupMessages("u1", []*entity.Message{
		msg("1", "u1", "u2", "mine unread by them", false, 10),
		msg("2", "u2", "u1", "theirs unread", false, 20),
		msg("3", "u2", "u1", "theirs read", true, 30),
	})

	ids := conversations[0].UnreadMessageIDs("u1")

	assert.Equal(t, []string{"2"}, ids)
}

func TestGroupMessagesMarkReadIdempotence(t *testing.T) {
	messages := []*entity.Message{
		msg("1", "u2", "u1", "a", false, 10),
		msg("2", "u2", "u1", "b", false, 20),
	}

	first := GroupMessages("u1", messages)
	assert.Equal(t, 2, first[0].UnreadCount)

	// Simulate the batch mark-as-read transition, then a retry of the same
	// batch: the second application changes nothing.
	for _, m := range messages {
		if m.ReceiverID == "u1" && !m.IsRead {
			m.IsRead = true
		}
	}
	second := GroupMessages("u1", messages)
	assert.Equal(t, 0, second[0].UnreadCount)

	for _, m := range messages {
		if m.ReceiverID == "u1" && !m.IsRead {
			m.IsRead = true
		}
	}
	third := GroupMessages("u1", messages)
	assert.Equal(t, 0, third[0].UnreadCount)
}
