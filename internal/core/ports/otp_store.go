package ports

import (
	"context"
	"time"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// OTPStore abstracts the expiring key-value store backing one-time codes.
// Implementations: in-process map with active expiry timers, and Redis with
// native TTLs for multi-instance deployments. Get returns
// domain.ErrOTPNotFound when the key is absent or already expired.
type OTPStore interface {
	Put(ctx context.Context, key string, record domain.OTPRecord, ttl time.Duration) error
	Get(ctx context.Context, key string) (*domain.OTPRecord, error)
	Delete(ctx context.Context, key string) error
}
