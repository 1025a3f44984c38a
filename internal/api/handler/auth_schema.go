package handler

import "github.com/officecorner/hr-system/internal/core/domain"

type sendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	// Purpose defaults to verification when omitted.
	Purpose string `json:"purpose" validate:"omitempty,oneof=verification login reset"`
}

type verifyOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Code    string `json:"code" validate:"required,len=6,numeric"`
	Purpose string `json:"purpose" validate:"omitempty,oneof=verification login reset"`
}

// otpResponse is the OTP endpoint envelope. Verification failures keep HTTP
// 400 but distinguish causes via Code so clients can prompt accordingly.
type otpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

type registerRequest struct {
	Username   string `json:"username" validate:"required,min=3,max=64"`
	Password   string `json:"password" validate:"required,min=6"`
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"required"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Department string `json:"department"`
}

type googleRegisterRequest struct {
	IDToken    string `json:"id_token" validate:"required"`
	Role       string `json:"role" validate:"required"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type emailLoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// registerResponse reports the outcome of a registration. Token is empty when
// the account still needs administrator approval.
type registerResponse struct {
	Success          bool            `json:"success"`
	Message          string          `json:"message,omitempty"`
	RequiresApproval bool            `json:"requires_approval"`
	Token            string          `json:"token,omitempty"`
	Account          *domain.Account `json:"account,omitempty"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Account *domain.Account `json:"account"`
}
