package ports

import (
	"context"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// RegisterInput carries all data for local registration. OTP verification for
// the verification purpose must have succeeded for Email beforehand.
type RegisterInput struct {
	Username   string
	Password   string
	Email      string
	Role       string
	Name       string
	Phone      string
	Address    string
	Department string
}

// GoogleRegisterInput carries data for registration through a Google identity.
type GoogleRegisterInput struct {
	IDToken    string
	Role       string
	Phone      string
	Department string
}

// RegisterResult is returned after a successful registration.
type RegisterResult struct {
	Account *domain.Account
	// Token is issued immediately for roles that skip the approval gate.
	Token string
	// RequiresApproval signals the Employee pending state to the client.
	RequiresApproval bool
}

// AuthService defines the account lifecycle use cases: OTP issuance and
// verification, registration (local and Google), and the status-gated logins.
type AuthService interface {
	SendOTP(ctx context.Context, email string, purpose domain.OTPPurpose) error
	VerifyOTP(ctx context.Context, email, code string, purpose domain.OTPPurpose) error
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string, remember bool) (string, *domain.Account, error)
	// EmailLogin exchanges a login-purpose OTP for a session token.
	EmailLogin(ctx context.Context, email, code string) (string, *domain.Account, error)
	GoogleRegister(ctx context.Context, input GoogleRegisterInput) (*RegisterResult, error)
	GoogleLogin(ctx context.Context, idToken string) (string, *domain.Account, error)
}

// GoogleClaims is the identity extracted from a verified Google ID token.
type GoogleClaims struct {
	GoogleID string
	Email    string
	Name     string
	Picture  string
}

// GoogleVerifier validates a Google ID token and extracts its identity claims.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}
