package ports

import (
	"context"
	"io"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// Notifier accepts outbound notifications emitted after state transitions.
// Enqueue never blocks the caller; delivery is fire-and-forget.
type Notifier interface {
	Enqueue(n domain.Notification)
}

// Mailer sends a templated email.
type Mailer interface {
	Send(ctx context.Context, to string, template domain.NotificationTemplate, data map[string]string) error
}

// Pusher delivers a best-effort realtime message to a connected user session.
// Returns false when no session is connected; that is not an error.
type Pusher interface {
	Push(userID string, event string, payload any) bool
}

// FileStorage uploads a file to external object storage and returns its
// publicly reachable URL.
type FileStorage interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}
