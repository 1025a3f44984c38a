package ports

import (
	"context"
	"time"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// CalendarRepository defines persistence operations for calendar events.
type CalendarRepository interface {
	Create(ctx context.Context, event *domain.CalendarEvent) (*domain.CalendarEvent, error)
	Update(ctx context.Context, event *domain.CalendarEvent) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	// ListRange returns events overlapping [from, to]. Zero bounds disable that side.
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.CalendarEvent, error)
}
