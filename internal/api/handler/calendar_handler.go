package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/officecorner/hr-system/internal/core/service"
)

// CalendarHandler exposes shared calendar event endpoints.
type CalendarHandler struct {
	service *service.CalendarService
}

func NewCalendarHandler(svc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: svc}
}

type eventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day"`
	Category    string    `json:"category"`
	Attendees   []string  `json:"attendees"`
}

func (r *eventRequest) toInput(createdBy string) service.CreateEventInput {
	end := r.End
	if end.IsZero() {
		end = r.Start
	}
	return service.CreateEventInput{
		Title:       r.Title,
		Description: r.Description,
		Start:       r.Start,
		End:         end,
		AllDay:      r.AllDay,
		Category:    r.Category,
		Attendees:   r.Attendees,
		CreatedBy:   createdBy,
	}
}

// Create handles POST /api/events.
func (h *CalendarHandler) Create(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.service.Create(c.Request().Context(), req.toInput(currentUserID(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// List handles GET /api/events?from=RFC3339&to=RFC3339. Both bounds are
// optional; an open side is unbounded.
func (h *CalendarHandler) List(c echo.Context) error {
	from, err := parseTimeParam(c.QueryParam("from"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "from must be RFC 3339")
	}
	to, err := parseTimeParam(c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "to must be RFC 3339")
	}

	events, err := h.service.ListRange(c.Request().Context(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /api/events/:id.
func (h *CalendarHandler) Get(c echo.Context) error {
	event, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Update handles PUT /api/events/:id.
func (h *CalendarHandler) Update(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.service.Update(c.Request().Context(), c.Param("id"), req.toInput(currentUserID(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /api/events/:id (admin).
func (h *CalendarHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func parseTimeParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
