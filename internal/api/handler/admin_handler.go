package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// AdminHandler exposes the administrator-only account management endpoints.
type AdminHandler struct {
	service ports.AccountService
	logger  zerolog.Logger
}

func NewAdminHandler(service ports.AccountService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{service: service, logger: logger}
}

type approvalRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Reason string `json:"reason"`
}

// PendingEmployees handles GET /api/admin/pending-employees.
func (h *AdminHandler) PendingEmployees(c echo.Context) error {
	accounts, err := h.service.PendingEmployees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Employees handles GET /api/admin/employees.
func (h *AdminHandler) Employees(c echo.Context) error {
	accounts, err := h.service.Employees(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Employee handles GET /api/admin/employees/:id.
func (h *AdminHandler) Employee(c echo.Context) error {
	account, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}

// Decide handles PUT /api/admin/approve-employee/:id, applying an approval or
// rejection to a pending Employee account.
func (h *AdminHandler) Decide(c echo.Context) error {
	var req approvalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.service.Decide(c.Request().Context(), ports.ApprovalInput{
		AccountID: c.Param("id"),
		ActorID:   currentUserID(c),
		Status:    domain.AccountStatus(req.Status),
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, account)
}
