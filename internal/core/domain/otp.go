package domain

import (
	"errors"
	"time"
)

// OTPPurpose scopes a one-time code to the flow that requested it.
type OTPPurpose string

const (
	PurposeVerification OTPPurpose = "verification"
	PurposeLogin        OTPPurpose = "login"
	PurposeReset        OTPPurpose = "reset"
)

// Valid reports whether the purpose is one of the known flows.
func (p OTPPurpose) Valid() bool {
	switch p {
	case PurposeVerification, PurposeLogin, PurposeReset:
		return true
	}
	return false
}

const (
	// OTPTTL is how long an issued code stays valid.
	OTPTTL = 5 * time.Minute
	// OTPMaxAttempts is the number of failed verifications before a code is burned.
	OTPMaxAttempts = 3
)

var (
	ErrOTPNotFound        = errors.New("no code issued for this email and purpose")
	ErrOTPExpired         = errors.New("code has expired")
	ErrOTPMismatch        = errors.New("code does not match")
	ErrOTPTooManyAttempts = errors.New("too many failed attempts")
	ErrOTPInvalidPurpose  = errors.New("unknown otp purpose")
	ErrEmailNotVerified   = errors.New("email not verified")
)

// OTPRecord is the ephemeral credential stored per (email, purpose) key.
type OTPRecord struct {
	Email     string     `json:"email"`
	Purpose   OTPPurpose `json:"purpose"`
	Code      string     `json:"code"`
	ExpiresAt time.Time  `json:"expires_at"`
	Attempts  int        `json:"attempts"`
}

// Expired reports whether the code is past its expiry at the given instant.
func (r OTPRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Exhausted reports whether the attempt budget has been spent.
func (r OTPRecord) Exhausted() bool {
	return r.Attempts >= OTPMaxAttempts
}

// OTPKey builds the store key for an (email, purpose) pair.
func OTPKey(email string, purpose OTPPurpose) string {
	return "otp:" + string(purpose) + ":" + email
}
