package domain

import (
	"errors"
	"time"
)

// Role identifies the kind of actor an account represents.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleEmployee      Role = "Employee"
	RoleUser          Role = "User"
)

// SelfRegisterable reports whether a role may be chosen during self-service
// registration. Administrator accounts are only ever provisioned out of band.
func (r Role) SelfRegisterable() bool {
	return r == RoleEmployee || r == RoleUser
}

// DefaultStatus returns the status a freshly registered account starts in.
// Only Employee accounts go through the admin approval gate.
func (r Role) DefaultStatus() AccountStatus {
	if r == RoleEmployee {
		return StatusPending
	}
	return StatusApproved
}

// AccountStatus represents the approval lifecycle state of an account.
type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusApproved AccountStatus = "approved"
	StatusRejected AccountStatus = "rejected"
)

// statusTransitions defines the allowed approval state machine transitions.
// Approval and rejection are one-directional; a rejected account only leaves
// that state through re-registration, which resets it via Role.DefaultStatus.
var statusTransitions = map[AccountStatus][]AccountStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s AccountStatus) CanTransitionTo(next AccountStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountPending     = errors.New("account pending approval")
	ErrAccountRejected    = errors.New("account rejected")
	ErrRoleNotAllowed     = errors.New("role not allowed for self registration")
	ErrNotApprovable      = errors.New("account is not awaiting approval")
	ErrForbidden          = errors.New("access forbidden")
)

// GoogleIdentity links an account to a Google sign-in identity.
type GoogleIdentity struct {
	GoogleID string `json:"google_id" bson:"google_id"`
	Picture  string `json:"picture,omitempty" bson:"picture,omitempty"`
}

// Profile holds the optional descriptive fields of an account.
type Profile struct {
	Name    string `json:"name,omitempty" bson:"name,omitempty"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
}

// Account is the identity and authorization aggregate.
type Account struct {
	ID           string          `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	Role         Role            `json:"role"`
	Status       AccountStatus   `json:"status"`
	Profile      Profile         `json:"profile"`
	Department   string          `json:"department,omitempty"`
	Google       *GoogleIdentity `json:"google,omitempty"`

	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ApprovedBy      string     `json:"approved_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectedBy      string     `json:"rejected_by,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the profile name, falling back to the username.
func (a *Account) DisplayName() string {
	if a.Profile.Name != "" {
		return a.Profile.Name
	}
	return a.Username
}

// Approve transitions the account to approved, recording the actor and time.
func (a *Account) Approve(by string, at time.Time) error {
	if a.Role != RoleEmployee || !a.Status.CanTransitionTo(StatusApproved) {
		return ErrNotApprovable
	}
	a.Status = StatusApproved
	a.ApprovedAt = &at
	a.ApprovedBy = by
	a.UpdatedAt = at
	return nil
}

// Reject transitions the account to rejected, recording the actor, time and reason.
func (a *Account) Reject(by, reason string, at time.Time) error {
	if a.Role != RoleEmployee || !a.Status.CanTransitionTo(StatusRejected) {
		return ErrNotApprovable
	}
	a.Status = StatusRejected
	a.RejectedAt = &at
	a.RejectedBy = by
	a.RejectionReason = reason
	a.UpdatedAt = at
	return nil
}

// ClearRejection wipes rejection audit fields and recomputes the status from
// the account's role. Used when a rejected account re-registers.
func (a *Account) ClearRejection(at time.Time) {
	a.RejectedAt = nil
	a.RejectedBy = ""
	a.RejectionReason = ""
	a.ApprovedAt = nil
	a.ApprovedBy = ""
	a.Status = a.Role.DefaultStatus()
	a.UpdatedAt = at
}
