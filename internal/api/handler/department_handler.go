package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/officecorner/hr-system/internal/core/service"
)

// DepartmentHandler exposes department CRUD.
type DepartmentHandler struct {
	service *service.DepartmentService
}

func NewDepartmentHandler(svc *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: svc}
}

type departmentRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	ManagerID   string `json:"manager_id"`
}

type updateDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ManagerID   string `json:"manager_id"`
}

// Create handles POST /api/departments (admin).
func (h *DepartmentHandler) Create(c echo.Context) error {
	var req departmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	dept, err := h.service.Create(c.Request().Context(), req.Name, req.Description, req.ManagerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dept)
}

// List handles GET /api/departments.
func (h *DepartmentHandler) List(c echo.Context) error {
	depts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, depts)
}

// Get handles GET /api/departments/:id.
func (h *DepartmentHandler) Get(c echo.Context) error {
	dept, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dept)
}

// Update handles PUT /api/departments/:id (admin).
func (h *DepartmentHandler) Update(c echo.Context) error {
	var req updateDepartmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	dept, err := h.service.Update(c.Request().Context(), c.Param("id"), req.Name, req.Description, req.ManagerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dept)
}

// Delete handles DELETE /api/departments/:id (admin).
func (h *DepartmentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
