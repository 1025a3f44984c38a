package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// TaskHandler exposes task CRUD and the status workflow endpoint.
type TaskHandler struct {
	service ports.TaskService
	logger  zerolog.Logger
}

func NewTaskHandler(service ports.TaskService, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{service: service, logger: logger}
}

type createTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	AssigneeID  string `json:"assignee_id" validate:"required"`
	Department  string `json:"department"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	// DueDate is RFC 3339; omitted means no deadline.
	DueDate *time.Time `json:"due_date"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}

// Create handles POST /api/tasks (admin).
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssigneeID,
		Department:  req.Department,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		CreatedBy:   currentUserID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// List handles GET /api/tasks. Administrators see every task and may filter
// with ?assignee=; everyone else only sees their own.
func (h *TaskHandler) List(c echo.Context) error {
	assignee := c.QueryParam("assignee")
	if !isAdmin(c) {
		assignee = currentUserID(c)
	}

	tasks, err := h.service.List(c.Request().Context(), assignee)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get handles GET /api/tasks/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	task, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !isAdmin(c) && task.AssigneeID != currentUserID(c) {
		return domain.ErrTaskNotAssignee
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateStatus handles PUT /api/tasks/:id/status.
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	var req updateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.UpdateStatus(c.Request().Context(), ports.UpdateTaskStatusInput{
		TaskID:  c.Param("id"),
		Status:  domain.TaskStatus(req.Status),
		ActorID: currentUserID(c),
		Admin:   isAdmin(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/:id (admin).
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
