package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryWindow struct {
	count     int64
	expiresAt time.Time
}

// MemoryStore is the single-node default. Expired windows are dropped lazily
// on access and by a periodic sweep.
type MemoryStore struct {
	windows map[string]*memoryWindow
	mutex   sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*memoryWindow),
	}
}

func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	w, ok := s.windows[key]
	if !ok || now.After(w.expiresAt) {
		w = &memoryWindow{expiresAt: now.Add(window)}
		s.windows[key] = w
	}
	w.count++

	return w.count, time.Until(w.expiresAt), nil
}

// StartCleanupRoutine sweeps expired windows until ctx is done.
func (s *MemoryStore) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				now := time.Now()
				s.mutex.Lock()
				for key, w := range s.windows {
					if now.After(w.expiresAt) {
						delete(s.windows, key)
					}
				}
				s.mutex.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()
}
