package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreCountsWithinWindow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	count, _, err := store.Increment(ctx, "k", time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, remaining, err := store.Increment(ctx, "k", time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Greater(t, remaining, time.Duration(0))
}

func TestMemoryStoreResetsAfterWindow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Increment(ctx, "k", 10*time.Millisecond)
	store.Increment(ctx, "k", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	count, _, err := store.Increment(ctx, "k", 10*time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(NewMemoryStore())
	rl.SetLimit("send_message", Limit{Max: 2, Window: time.Minute})
	ctx := context.Background()

	allowed, _ := rl.Allow(ctx, "u1", "send_message")
	assert.True(t, allowed)
	allowed, _ = rl.Allow(ctx, "u1", "send_message")
	assert.True(t, allowed)

	allowed, wait := rl.Allow(ctx, "u1", "send_message")
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestRateLimiterIsolatesUsers(t *testing.T) {
	rl := NewRateLimiter(NewMemoryStore())
	rl.SetLimit("send_message", Limit{Max: 1, Window: time.Minute})
	ctx := context.Background()

	rl.Allow(ctx, "u1", "send_message")
	allowed, _ := rl.Allow(ctx, "u1", "send_message")
	assert.False(t, allowed)

	allowed, _ = rl.Allow(ctx, "u2", "send_message")
	assert.True(t, allowed)
}

func TestRateLimiterUnknownActionAlwaysAllowed(t *testing.T) {
	rl := NewRateLimiter(NewMemoryStore())

	for i := 0; i < 100; i++ {
		allowed, _ := rl.Allow(context.Background(), "u1", "unknown_action")
		assert.True(t, allowed)
	}
}
