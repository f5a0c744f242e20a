package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otodeal/internal/domain/entity"
	"otodeal/pkg/errors"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.User, int64, error) {
	var result []*entity.User
	for _, u := range r.users {
		result = append(result, u)
	}
	return result, int64(len(result)), nil
}

type fakeMessageRepo struct {
	messages []*entity.Message
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = "msg-" + message.Content
	}
	r.messages = append(r.messages, message)
	return nil
}

func (r *fakeMessageRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Message, error) {
	var result []*entity.Message
	for _, m := range r.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (r *fakeMessageRepo) ListBetween(ctx context.Context, userA, userB string, limit, offset int) ([]*entity.Message, int64, error) {
	var result []*entity.Message
	for _, m := range r.messages {
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			result = append(result, m)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, int64(len(result)), nil
}

func (r *fakeMessageRepo) MarkRead(ctx context.Context, receiverID string, messageIDs []string) error {
	wanted := map[string]bool{}
	for _, id := range messageIDs {
		wanted[id] = true
	}
	for _, m := range r.messages {
		if wanted[m.ID] && m.ReceiverID == receiverID {
			m.IsRead = true
		}
	}
	return nil
}

func (r *fakeMessageRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.ReceiverID == userID && !m.IsRead {
			count++
		}
	}
	return count, nil
}

type recordingNotifier struct {
	sent map[string][][]byte
}

func (n *recordingNotifier) SendToUser(userID string, payload []byte) {
	if n.sent == nil {
		n.sent = map[string][][]byte{}
	}
	n.sent[userID] = append(n.sent[userID], payload)
}

func (n *recordingNotifier) IsOnline(userID string) bool {
	return false
}

func messagingFixture() (*MessageUseCase, *fakeMessageRepo, *recordingNotifier) {
	userRepo := newFakeUserRepo(
		&entity.User{ID: "alice", Username: "Alice"},
		&entity.User{ID: "bob", Username: "Bob"},
		&entity.User{ID: "carol", Username: "Carol"},
	)
	messageRepo := &fakeMessageRepo{}
	notifier := &recordingNotifier{}
	uc := NewMessageUseCase(messageRepo, userRepo, allowAllLimiter{}, notifier)
	return uc, messageRepo, notifier
}

func at(sec int) time.Time {
	return time.Date(2026, 3, 1, 12, 0, sec, 0, time.UTC)
}

func TestSend_RejectsSelfMessage(t *testing.T) {
	uc, _, _ := messagingFixture()

	_, err := uc.Send(context.Background(), "alice", "alice", "hi me")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSend_UnknownReceiverReportsNotFound(t *testing.T) {
	uc, _, _ := messagingFixture()

	_, err := uc.Send(context.Background(), "alice", "nobody", "hello?")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSend_NotifiesReceiver(t *testing.T) {
	uc, _, notifier := messagingFixture()

	_, err := uc.Send(context.Background(), "alice", "bob", "hello")
	require.NoError(t, err)

	require.Len(t, notifier.sent["bob"], 1)
	assert.Contains(t, string(notifier.sent["bob"][0]), "new_message")
}

func TestListConversations_GroupsBothDirections(t *testing.T) {
	uc, repo, _ := messagingFixture()
	repo.messages = []*entity.Message{
		{ID: "m1", SenderID: "alice", ReceiverID: "bob", Content: "hi", IsRead: true, CreatedAt: at(1)},
		{ID: "m2", SenderID: "bob", ReceiverID: "alice", Content: "hey", CreatedAt: at(2)},
		{ID: "m3", SenderID: "carol", ReceiverID: "alice", Content: "ping", CreatedAt: at(3)},
	}

	conversations, err := uc.ListConversations(context.Background(), "alice", "", false)
	require.NoError(t, err)
	require.Len(t, conversations, 2)

	// Ordered by last activity, carol's message is the newest.
	assert.Equal(t, "carol", conversations[0].Counterpart.ID)
	assert.Equal(t, "bob", conversations[1].Counterpart.ID)
	assert.Equal(t, 1, conversations[1].UnreadCount)
	assert.Equal(t, "m2", conversations[1].LastMessage.ID)
}

func TestListConversations_UnreadFilterAndSearch(t *testing.T) {
	uc, repo, _ := messagingFixture()
	repo.messages = []*entity.Message{
		{ID: "m1", SenderID: "bob", ReceiverID: "alice", Content: "about the civic", IsRead: true, CreatedAt: at(1)},
		{ID: "m2", SenderID: "carol", ReceiverID: "alice", Content: "still available?", CreatedAt: at(2)},
	}

	unread, err := uc.ListConversations(context.Background(), "alice", "", true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "carol", unread[0].Counterpart.ID)

	byName, err := uc.ListConversations(context.Background(), "alice", "bob", false)
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "bob", byName[0].Counterpart.ID)

	byContent, err := uc.ListConversations(context.Background(), "alice", "civic", false)
	require.NoError(t, err)
	require.Len(t, byContent, 1)
	assert.Equal(t, "bob", byContent[0].Counterpart.ID)
}

func TestListConversations_DeletedCounterpartKeepsConversation(t *testing.T) {
	uc, repo, _ := messagingFixture()
	repo.messages = []*entity.Message{
		{ID: "m1", SenderID: "ghost", ReceiverID: "alice", Content: "boo", CreatedAt: at(1)},
	}

	conversations, err := uc.ListConversations(context.Background(), "alice", "", false)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, "Deleted user", conversations[0].Counterpart.Username)
}

func TestMarkConversationRead_OnlyFlipsReceivedMessages(t *testing.T) {
	uc, repo, _ := messagingFixture()
	repo.messages = []*entity.Message{
		{ID: "m1", SenderID: "bob", ReceiverID: "alice", Content: "one", CreatedAt: at(1)},
		{ID: "m2", SenderID: "bob", ReceiverID: "alice", Content: "two", CreatedAt: at(2)},
		{ID: "m3", SenderID: "alice", ReceiverID: "bob", Content: "three", CreatedAt: at(3)},
	}

	count, err := uc.MarkConversationRead(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Alice's own outgoing message stays untouched; bob still has it unread.
	unread, err := uc.UnreadCount(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	// Second call is a no-op.
	count, err = uc.MarkConversationRead(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSend_RateLimited(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "bob", Username: "Bob"})
	uc := NewMessageUseCase(&fakeMessageRepo{}, userRepo, denyAllLimiter{}, nil)

	_, err := uc.Send(context.Background(), "alice", "bob", "spam")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}
