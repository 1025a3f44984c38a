package ports

import (
	"context"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// ApprovalInput carries an admin approval or rejection decision.
type ApprovalInput struct {
	AccountID string
	ActorID   string
	// Status is the target state: approved or rejected.
	Status domain.AccountStatus
	Reason string
}

// AccountService defines the admin-side account operations.
type AccountService interface {
	// PendingEmployees lists Employee accounts awaiting a decision.
	PendingEmployees(ctx context.Context) ([]*domain.Account, error)
	// Decide applies the pending → approved|rejected transition.
	Decide(ctx context.Context, input ApprovalInput) (*domain.Account, error)
	Employees(ctx context.Context) ([]*domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
}
