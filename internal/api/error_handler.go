package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Code
// carries the machine-readable status for gate failures (ACCOUNT_PENDING,
// ACCOUNT_REJECTED, ...).
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<CODE>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, resp := resolveError(err, log, c)
		_ = c.JSON(status, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, errorResponse{Error: "account not found"}
	case errors.Is(err, domain.ErrAttendanceNotFound):
		return http.StatusNotFound, errorResponse{Error: "attendance record not found"}
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, errorResponse{Error: "task not found"}
	case errors.Is(err, domain.ErrDepartmentNotFound):
		return http.StatusNotFound, errorResponse{Error: "department not found"}
	case errors.Is(err, domain.ErrEventNotFound):
		return http.StatusNotFound, errorResponse{Error: "event not found"}

	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, errorResponse{Error: "Email already in use", Code: "EMAIL_TAKEN"}
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, errorResponse{Error: "Username already in use", Code: "USERNAME_TAKEN"}
	case errors.Is(err, domain.ErrDepartmentExists):
		return http.StatusBadRequest, errorResponse{Error: "department already exists"}

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrAccountRejected):
		return http.StatusForbidden, errorResponse{Error: "your registration was rejected", Code: "ACCOUNT_REJECTED"}
	case errors.Is(err, domain.ErrAccountPending):
		return http.StatusForbidden, errorResponse{Error: err.Error(), Code: "ACCOUNT_PENDING"}
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrTaskNotAssignee):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}

	case errors.Is(err, domain.ErrRoleNotAllowed):
		return http.StatusBadRequest, errorResponse{Error: "role not allowed for self registration"}
	case errors.Is(err, domain.ErrOTPInvalidPurpose):
		return http.StatusBadRequest, errorResponse{Error: "unknown otp purpose"}
	case errors.Is(err, domain.ErrEmailNotVerified):
		return http.StatusBadRequest, errorResponse{Error: "email not verified", Code: "EMAIL_NOT_VERIFIED"}
	case errors.Is(err, domain.ErrNotApprovable):
		return http.StatusBadRequest, errorResponse{Error: "account is not awaiting approval"}
	case errors.Is(err, domain.ErrAlreadyClockedOut):
		return http.StatusBadRequest, errorResponse{Error: "already clocked out for today"}
	case errors.Is(err, domain.ErrInvalidAttendanceStatus):
		return http.StatusBadRequest, errorResponse{Error: "invalid attendance status"}
	case errors.Is(err, domain.ErrTaskBadTransition):
		return http.StatusBadRequest, errorResponse{Error: "invalid task status transition"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
