package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// AuthHandler exposes registration, OTP and login endpoints.
type AuthHandler struct {
	service ports.AuthService
	logger  zerolog.Logger
}

func NewAuthHandler(service ports.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

// SendOTP handles POST /api/auth/send-otp.
func (h *AuthHandler) SendOTP(c echo.Context) error {
	var req sendOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	purpose := domain.OTPPurpose(req.Purpose)
	if req.Purpose == "" {
		purpose = domain.PurposeVerification
	}

	if err := h.service.SendOTP(c.Request().Context(), req.Email, purpose); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, otpResponse{Success: true, Message: "OTP sent"})
}

// VerifyOTP handles POST /api/auth/verify-otp. Failures are reported in the
// body with a distinct code rather than through the central error handler so
// clients can tell an expired code from a mistyped one.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	purpose := domain.OTPPurpose(req.Purpose)
	if req.Purpose == "" {
		purpose = domain.PurposeVerification
	}

	if err := h.service.VerifyOTP(c.Request().Context(), req.Email, req.Code, purpose); err != nil {
		if code, known := otpFailureCode(err); known {
			return c.JSON(http.StatusBadRequest, otpResponse{
				Success: false,
				Message: err.Error(),
				Code:    code,
			})
		}
		return err
	}
	return c.JSON(http.StatusOK, otpResponse{Success: true, Message: "email verified"})
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		Role:       req.Role,
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
		Department: req.Department,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRegisterResponse(result))
}

// GoogleRegister handles POST /api/auth/google-register.
func (h *AuthHandler) GoogleRegister(c echo.Context) error {
	var req googleRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.GoogleRegister(c.Request().Context(), ports.GoogleRegisterInput{
		IDToken:    req.IDToken,
		Role:       req.Role,
		Phone:      req.Phone,
		Department: req.Department,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRegisterResponse(result))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, account, err := h.service.Login(c.Request().Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, Account: account})
}

// EmailLogin handles POST /api/auth/email-login, exchanging a login OTP for a
// session token.
func (h *AuthHandler) EmailLogin(c echo.Context) error {
	var req emailLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, account, err := h.service.EmailLogin(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		if code, known := otpFailureCode(err); known {
			return c.JSON(http.StatusBadRequest, otpResponse{
				Success: false,
				Message: err.Error(),
				Code:    code,
			})
		}
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, Account: account})
}

// GoogleLogin handles POST /api/auth/google-login.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req googleLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, account, err := h.service.GoogleLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, Account: account})
}

func toRegisterResponse(result *ports.RegisterResult) registerResponse {
	msg := "registration complete"
	if result.RequiresApproval {
		msg = "registration received; awaiting administrator approval"
	}
	return registerResponse{
		Success:          true,
		Message:          msg,
		RequiresApproval: result.RequiresApproval,
		Token:            result.Token,
		Account:          result.Account,
	}
}

// otpFailureCode maps OTP verification errors to their client-facing codes.
func otpFailureCode(err error) (string, bool) {
	switch {
	case errors.Is(err, domain.ErrOTPNotFound):
		return "NOT_FOUND", true
	case errors.Is(err, domain.ErrOTPExpired):
		return "EXPIRED", true
	case errors.Is(err, domain.ErrOTPTooManyAttempts):
		return "TOO_MANY_ATTEMPTS", true
	case errors.Is(err, domain.ErrOTPMismatch):
		return "MISMATCH", true
	}
	return "", false
}
