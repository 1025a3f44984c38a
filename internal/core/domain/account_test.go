package domain

import (
	"errors"
	"testing"
	"time"
)

func TestAccountStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to AccountStatus
		ok       bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s → %s: expected %v", tc.from, tc.to, tc.ok)
		}
	}
}

func TestRoleDefaults(t *testing.T) {
	if RoleEmployee.DefaultStatus() != StatusPending {
		t.Fatalf("employees must start pending")
	}
	if RoleUser.DefaultStatus() != StatusApproved {
		t.Fatalf("users must start approved")
	}
	if RoleAdministrator.SelfRegisterable() {
		t.Fatalf("administrators must not self-register")
	}
}

func TestAccountApproveReject(t *testing.T) {
	now := time.Now()
	account := &Account{Role: RoleEmployee, Status: StatusPending}

	if err := account.Approve("admin-1", now); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if account.Status != StatusApproved || account.ApprovedBy != "admin-1" {
		t.Fatalf("approval not recorded: %+v", account)
	}

	// A decided account cannot be decided again.
	if err := account.Reject("admin-1", "nope", now); !errors.Is(err, ErrNotApprovable) {
		t.Fatalf("expected ErrNotApprovable, got %v", err)
	}

	// Non-employee accounts never pass through the approval gate.
	user := &Account{Role: RoleUser, Status: StatusPending}
	if err := user.Approve("admin-1", now); !errors.Is(err, ErrNotApprovable) {
		t.Fatalf("expected ErrNotApprovable for non-employee, got %v", err)
	}
}

func TestClearRejection(t *testing.T) {
	now := time.Now()
	account := &Account{Role: RoleEmployee, Status: StatusPending}
	if err := account.Reject("admin-1", "missing docs", now); err != nil {
		t.Fatalf("Reject: %v", err)
	}

	account.ClearRejection(now.Add(time.Hour))
	if account.Status != StatusPending {
		t.Fatalf("employee must return to pending, got %s", account.Status)
	}
	if account.RejectedAt != nil || account.RejectedBy != "" || account.RejectionReason != "" {
		t.Fatalf("rejection audit trail not cleared: %+v", account)
	}
}
