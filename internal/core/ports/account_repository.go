package ports

import (
	"context"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	// Update replaces the stored document for account.ID.
	Update(ctx context.Context, account *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByGoogleID(ctx context.Context, googleID string) (*domain.Account, error)
	// ListByRoleAndStatus returns accounts matching both filters. An empty role
	// or status means no filter on that field.
	ListByRoleAndStatus(ctx context.Context, role domain.Role, status domain.AccountStatus) ([]*domain.Account, error)
	CountByRoleAndStatus(ctx context.Context, role domain.Role, status domain.AccountStatus) (int64, error)
}
