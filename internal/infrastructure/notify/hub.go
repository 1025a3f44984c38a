package notify

import (
	"sync"
)

// PushMessage is a single realtime event delivered to a connected session.
type PushMessage struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Hub implements ports.Pusher with in-process per-user channels. A user has
// at most one active session channel; a new subscription replaces the old one.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]chan PushMessage
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]chan PushMessage)}
}

// Subscribe registers a session channel for userID and returns it together
// with an unsubscribe function. Any prior session channel is closed.
func (h *Hub) Subscribe(userID string) (<-chan PushMessage, func()) {
	ch := make(chan PushMessage, 16)

	h.mu.Lock()
	if prev, ok := h.sessions[userID]; ok {
		close(prev)
	}
	h.sessions[userID] = ch
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if cur, ok := h.sessions[userID]; ok && cur == ch {
			delete(h.sessions, userID)
			close(cur)
		}
	}
}

// Push delivers a message to the user's session if one is connected.
// Returns false when no session exists or its buffer is full.
// The read lock is held across the send: session channels are only closed
// under the write lock, so a channel found in the map cannot be closed while
// the send is in flight.
func (h *Hub) Push(userID string, event string, payload any) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ch, ok := h.sessions[userID]
	if !ok {
		return false
	}

	select {
	case ch <- PushMessage{Event: event, Payload: payload}:
		return true
	default:
		return false
	}
}
