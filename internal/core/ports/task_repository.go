package ports

import (
	"context"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns tasks newest-first. Empty assigneeID means all tasks.
	List(ctx context.Context, assigneeID string) ([]*domain.Task, error)
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)
}
