package ports

import (
	"context"
	"time"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// CreateTaskInput carries all data for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	AssigneeID  string
	Department  string
	Priority    string
	DueDate     *time.Time
	CreatedBy   string
}

// UpdateTaskStatusInput carries an assignee-driven status change.
type UpdateTaskStatusInput struct {
	TaskID  string
	Status  domain.TaskStatus
	ActorID string
	// Admin bypasses the assignee ownership check.
	Admin bool
}

// TaskService defines the task use cases.
type TaskService interface {
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, assigneeID string) ([]*domain.Task, error)
	UpdateStatus(ctx context.Context, input UpdateTaskStatusInput) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
