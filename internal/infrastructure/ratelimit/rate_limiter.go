package ratelimit

import (
	"context"
	"fmt"
	"time"

	"otodeal/pkg/logger"
)

// Store counts hits per key inside a rolling window. Implementations must be
// safe for concurrent use; the limiter never holds process-global state so
// stores can be swapped (in-memory for a single node, Redis for a fleet).
type Store interface {
	// Increment bumps the counter for key, starting a new window when none is
	// active, and returns the new count plus the time left in the window.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, remaining time.Duration, err error)
}

// Limit caps an action at Max hits per Window.
type Limit struct {
	Max    int64
	Window time.Duration
}

type RateLimiter struct {
	store  Store
	limits map[string]Limit
}

func NewRateLimiter(store Store) *RateLimiter {
	return &RateLimiter{
		store: store,
		limits: map[string]Limit{
			"send_message":    {Max: 30, Window: time.Minute},
			"create_showroom": {Max: 3, Window: time.Hour},
			"create_car":      {Max: 20, Window: time.Hour},
			"checkout":        {Max: 5, Window: 10 * time.Minute},
		},
	}
}

// Allow reports whether the user may perform the action now, and how long to
// wait when not. Unknown actions are never limited. Store failures fail open:
// a broken limiter must not take messaging down with it.
func (rl *RateLimiter) Allow(ctx context.Context, userID, action string) (bool, time.Duration) {
	limit, ok := rl.limits[action]
	if !ok {
		return true, 0
	}

	key := fmt.Sprintf("ratelimit:%s:%s", action, userID)
	count, remaining, err := rl.store.Increment(ctx, key, limit.Window)
	if err != nil {
		logger.Warn("Rate limit store error for %s: %v", key, err)
		return true, 0
	}

	if count > limit.Max {
		return false, remaining
	}
	return true, 0
}

// SetLimit overrides the limit for an action; mainly for tests.
func (rl *RateLimiter) SetLimit(action string, limit Limit) {
	rl.limits[action] = limit
}
