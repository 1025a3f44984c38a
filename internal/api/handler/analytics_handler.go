package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/officecorner/hr-system/internal/core/ports"
)

// AnalyticsHandler exposes the dashboard aggregates.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Dashboard handles GET /api/analytics/dashboard (admin).
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	stats, err := h.service.Dashboard(c.Request().Context(), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
