package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/api/metrics"
	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// AccountService implements the admin-side approval workflow.
type AccountService struct {
	accounts ports.AccountRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewAccountService(accounts ports.AccountRepository, notifier ports.Notifier, logger zerolog.Logger) *AccountService {
	return &AccountService{accounts: accounts, notifier: notifier, logger: logger}
}

// PendingEmployees lists Employee accounts awaiting an approval decision.
func (s *AccountService) PendingEmployees(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts.ListByRoleAndStatus(ctx, domain.RoleEmployee, domain.StatusPending)
}

// Employees lists all Employee accounts.
func (s *AccountService) Employees(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts.ListByRoleAndStatus(ctx, domain.RoleEmployee, "")
}

func (s *AccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// Decide applies the pending → approved|rejected transition and emits the
// matching notification. The push leg is best-effort: no connected session
// means the event is simply dropped.
func (s *AccountService) Decide(ctx context.Context, input ports.ApprovalInput) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var template domain.NotificationTemplate

	switch input.Status {
	case domain.StatusApproved:
		if err := account.Approve(input.ActorID, now); err != nil {
			return nil, err
		}
		template = domain.TemplateAccountApproved
	case domain.StatusRejected:
		if err := account.Reject(input.ActorID, input.Reason, now); err != nil {
			return nil, err
		}
		template = domain.TemplateAccountRejected
	default:
		return nil, domain.ErrNotApprovable
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	metrics.ApprovalsTotal.WithLabelValues(string(input.Status)).Inc()
	s.logger.Info().
		Str("account_id", account.ID).
		Str("decision", string(input.Status)).
		Str("decided_by", input.ActorID).
		Msg("approval decision applied")

	s.notifier.Enqueue(domain.Notification{
		RecipientEmail: account.Email,
		RecipientID:    account.ID,
		Template:       template,
		Data: map[string]string{
			"name":   account.DisplayName(),
			"reason": input.Reason,
			"status": string(input.Status),
		},
	})

	return account, nil
}
