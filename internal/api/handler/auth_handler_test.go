package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// stubAuthService returns canned results per call.
type stubAuthService struct {
	sendOTPErr   error
	verifyOTPErr error

	registerResult *ports.RegisterResult
	registerErr    error

	loginToken   string
	loginAccount *domain.Account
	loginErr     error
}

func (s *stubAuthService) SendOTP(context.Context, string, domain.OTPPurpose) error {
	return s.sendOTPErr
}

func (s *stubAuthService) VerifyOTP(context.Context, string, string, domain.OTPPurpose) error {
	return s.verifyOTPErr
}

func (s *stubAuthService) Register(context.Context, ports.RegisterInput) (*ports.RegisterResult, error) {
	return s.registerResult, s.registerErr
}

func (s *stubAuthService) Login(context.Context, string, string, bool) (string, *domain.Account, error) {
	return s.loginToken, s.loginAccount, s.loginErr
}

func (s *stubAuthService) EmailLogin(context.Context, string, string) (string, *domain.Account, error) {
	return s.loginToken, s.loginAccount, s.loginErr
}

func (s *stubAuthService) GoogleRegister(context.Context, ports.GoogleRegisterInput) (*ports.RegisterResult, error) {
	return s.registerResult, s.registerErr
}

func (s *stubAuthService) GoogleLogin(context.Context, string) (string, *domain.Account, error) {
	return s.loginToken, s.loginAccount, s.loginErr
}

func newAuthTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_SendOTP_DefaultsPurpose(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, zerolog.Nop())
	c, rec := newAuthTestContext(t, `{"email":"a@example.com"}`)

	if err := h.SendOTP(c); err != nil {
		t.Fatalf("SendOTP: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp otpResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Fatalf("expected success")
	}
}

func TestAuthHandler_SendOTP_InvalidEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, zerolog.Nop())
	c, _ := newAuthTestContext(t, `{"email":"not-an-email"}`)

	err := h.SendOTP(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 validation error, got %v", err)
	}
}

func TestAuthHandler_VerifyOTP_FailureCodes(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{domain.ErrOTPNotFound, "NOT_FOUND"},
		{domain.ErrOTPExpired, "EXPIRED"},
		{domain.ErrOTPTooManyAttempts, "TOO_MANY_ATTEMPTS"},
		{domain.ErrOTPMismatch, "MISMATCH"},
	}

	for _, tc := range cases {
		h := NewAuthHandler(&stubAuthService{verifyOTPErr: tc.err}, zerolog.Nop())
		c, rec := newAuthTestContext(t, `{"email":"a@example.com","code":"123456"}`)

		if err := h.VerifyOTP(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.code, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tc.code, rec.Code)
		}

		var resp otpResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Success {
			t.Fatalf("%s: expected failure envelope", tc.code)
		}
		if resp.Code != tc.code {
			t.Fatalf("expected code %s, got %s", tc.code, resp.Code)
		}
	}
}

func TestAuthHandler_VerifyOTP_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, zerolog.Nop())
	c, rec := newAuthTestContext(t, `{"email":"a@example.com","code":"123456"}`)

	if err := h.VerifyOTP(c); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_PendingEmployee(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerResult: &ports.RegisterResult{
			Account: &domain.Account{
				ID: "acc-1", Username: "frank", Email: "frank@example.com",
				Role: domain.RoleEmployee, Status: domain.StatusPending,
			},
			RequiresApproval: true,
		},
	}, zerolog.Nop())
	c, rec := newAuthTestContext(t, `{"username":"frank","password":"s3cret99","email":"frank@example.com","role":"Employee"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.RequiresApproval {
		t.Fatalf("expected requires_approval")
	}
	if resp.Token != "" {
		t.Fatalf("pending employee must not receive a token")
	}
}

func TestAuthHandler_Register_DomainErrorPropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrEmailTaken}, zerolog.Nop())
	c, _ := newAuthTestContext(t, `{"username":"frank","password":"s3cret99","email":"frank@example.com","role":"Employee"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken to reach the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginToken:   "token-123",
		loginAccount: &domain.Account{ID: "acc-1", Username: "judy"},
	}, zerolog.Nop())
	c, rec := newAuthTestContext(t, `{"email":"judy@example.com","password":"s3cret99"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "token-123" || resp.Account.Username != "judy" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_PendingPropagates(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrAccountPending}, zerolog.Nop())
	c, _ := newAuthTestContext(t, `{"email":"liam@example.com","password":"s3cret99"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrAccountPending) {
		t.Fatalf("expected ErrAccountPending, got %v", err)
	}
}

func TestAuthHandler_EmailLogin_MismatchMappedLocally(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrOTPMismatch}, zerolog.Nop())
	c, rec := newAuthTestContext(t, `{"email":"a@example.com","code":"123456"}`)

	if err := h.EmailLogin(c); err != nil {
		t.Fatalf("EmailLogin: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp otpResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "MISMATCH" {
		t.Fatalf("expected MISMATCH, got %s", resp.Code)
	}
}
