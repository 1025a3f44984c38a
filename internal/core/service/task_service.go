package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// TaskService implements task assignment and the task status state machine.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	priority := domain.TaskPriority(input.Priority)
	switch priority {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
	default:
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		AssigneeID:  input.AssigneeID,
		Department:  input.Department,
		Priority:    priority,
		Status:      domain.TaskPending,
		DueDate:     input.DueDate,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", created.ID).
		Str("assignee_id", created.AssigneeID).
		Msg("task created")
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) List(ctx context.Context, assigneeID string) ([]*domain.Task, error) {
	return s.repo.List(ctx, assigneeID)
}

// UpdateStatus applies a task status transition. Non-admin actors may only
// move their own tasks.
func (s *TaskService) UpdateStatus(ctx context.Context, input ports.UpdateTaskStatusInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if !input.Admin && task.AssigneeID != input.ActorID {
		return nil, domain.ErrTaskNotAssignee
	}
	if !task.Status.CanTransitionTo(input.Status) {
		return nil, domain.ErrTaskBadTransition
	}

	task.Status = input.Status
	task.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
