package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// AttendanceHandler exposes clock-in/out and the admin attendance endpoints.
type AttendanceHandler struct {
	service ports.AttendanceService
	logger  zerolog.Logger
}

func NewAttendanceHandler(service ports.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{service: service, logger: logger}
}

// Record handles POST /api/attendance/record. The first call of the day
// clocks in, the second clocks out, a third fails.
func (h *AttendanceHandler) Record(c echo.Context) error {
	var req clockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	record, err := h.service.Record(c.Request().Context(), ports.ClockInput{
		EmployeeID: currentUserID(c),
		At:         time.Now(),
		Notes:      req.Notes,
		Location:   req.Location,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// Today handles GET /api/attendance/today. A day with no record yet returns
// 200 with a null body rather than 404.
func (h *AttendanceHandler) Today(c echo.Context) error {
	record, err := h.service.Today(c.Request().Context(), currentUserID(c), time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrAttendanceNotFound) {
			return c.JSON(http.StatusOK, nil)
		}
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// History handles GET /api/attendance/history?limit=N for the caller's own
// records, newest first.
func (h *AttendanceHandler) History(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	records, err := h.service.History(c.Request().Context(), currentUserID(c), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// ListByDate handles GET /api/attendance/by-date?date=YYYY-MM-DD (admin).
func (h *AttendanceHandler) ListByDate(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = domain.DateKey(time.Now())
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	records, err := h.service.ListByDate(c.Request().Context(), date)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// ManualEntry handles POST /api/attendance/manual (admin), writing a record
// for an arbitrary employee and date outside the clock state machine.
func (h *AttendanceHandler) ManualEntry(c echo.Context) error {
	var req manualEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.service.ManualEntry(c.Request().Context(), ports.ManualEntryInput{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		TimeIn:     req.TimeIn,
		TimeOut:    req.TimeOut,
		Status:     domain.AttendanceStatus(req.Status),
		Notes:      req.Notes,
		EnteredBy:  currentUserID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, record)
}

// Override handles PUT /api/attendance/:id/status (admin).
func (h *AttendanceHandler) Override(c echo.Context) error {
	var req overrideRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.service.Override(c.Request().Context(), ports.OverrideInput{
		RecordID: c.Param("id"),
		Status:   domain.AttendanceStatus(req.Status),
		ActorID:  currentUserID(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}
