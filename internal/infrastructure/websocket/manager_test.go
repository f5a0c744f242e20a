package websocket

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSendToUserDuringReconnect(t *testing.T) {
	m := NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			m.Register <- &Client{UserID: "user-1", Send: make(chan []byte, 1)}
		}
	}()

	// Each re-register closes the previous Send channel; sends racing those
	// closes must never panic.
	for i := 0; i < 1000; i++ {
		m.SendToUser("user-1", []byte("ping"))
	}
	<-done

	assert.True(t, m.IsOnline("user-1"))
}

func TestSendToUserOfflineIsNoop(t *testing.T) {
	m := NewManager()
	m.SendToUser("nobody", []byte("ping"))
	assert.False(t, m.IsOnline("nobody"))
}
