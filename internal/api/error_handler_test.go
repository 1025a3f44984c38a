package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/core/domain"
)

func render(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec.Code, resp
}

func TestErrorHandler_DomainMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrAccountNotFound, http.StatusNotFound, ""},
		{domain.ErrTaskNotFound, http.StatusNotFound, ""},
		{domain.ErrEmailTaken, http.StatusBadRequest, "EMAIL_TAKEN"},
		{domain.ErrUsernameTaken, http.StatusBadRequest, "USERNAME_TAKEN"},
		{domain.ErrDepartmentExists, http.StatusBadRequest, ""},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, ""},
		{domain.ErrAccountPending, http.StatusForbidden, "ACCOUNT_PENDING"},
		{domain.ErrAccountRejected, http.StatusForbidden, "ACCOUNT_REJECTED"},
		{domain.ErrForbidden, http.StatusForbidden, ""},
		{domain.ErrTaskNotAssignee, http.StatusForbidden, ""},
		{domain.ErrRoleNotAllowed, http.StatusBadRequest, ""},
		{domain.ErrOTPInvalidPurpose, http.StatusBadRequest, ""},
		{domain.ErrEmailNotVerified, http.StatusBadRequest, "EMAIL_NOT_VERIFIED"},
		{domain.ErrAlreadyClockedOut, http.StatusBadRequest, ""},
		{domain.ErrInvalidAttendanceStatus, http.StatusBadRequest, ""},
		{domain.ErrTaskBadTransition, http.StatusBadRequest, ""},
		{domain.ErrNotApprovable, http.StatusBadRequest, ""},
	}

	for _, tc := range cases {
		status, resp := render(t, tc.err)
		if status != tc.status {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.status, status)
		}
		if resp.Code != tc.code {
			t.Errorf("%v: expected code %q, got %q", tc.err, tc.code, resp.Code)
		}
		if resp.Error == "" {
			t.Errorf("%v: empty error message", tc.err)
		}
	}
}

func TestErrorHandler_WrappedErrorKeepsMessage(t *testing.T) {
	wrapped := fmt.Errorf("your employee account is awaiting administrator approval: %w", domain.ErrAccountPending)
	status, resp := render(t, wrapped)
	if status != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", status)
	}
	if resp.Code != "ACCOUNT_PENDING" {
		t.Fatalf("expected ACCOUNT_PENDING, got %s", resp.Code)
	}
	if resp.Error != wrapped.Error() {
		t.Fatalf("role-aware message lost: %q", resp.Error)
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	status, resp := render(t, echo.NewHTTPError(http.StatusBadRequest, "name is required"))
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if resp.Error != "name is required" {
		t.Fatalf("unexpected message: %q", resp.Error)
	}
}

func TestErrorHandler_UnknownErrorIs500(t *testing.T) {
	status, resp := render(t, errors.New("boom"))
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("internal details leaked: %q", resp.Error)
	}
}
