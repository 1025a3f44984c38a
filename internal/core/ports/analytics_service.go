package ports

import (
	"context"
	"time"
)

// DashboardStats is the aggregate view backing the dashboard.
type DashboardStats struct {
	TotalEmployees   int64            `json:"total_employees"`
	PendingEmployees int64            `json:"pending_employees"`
	Departments      int64            `json:"departments"`
	AttendanceToday  map[string]int64 `json:"attendance_today"`
	TasksByStatus    map[string]int64 `json:"tasks_by_status"`
}

// AnalyticsService computes dashboard aggregates.
type AnalyticsService interface {
	Dashboard(ctx context.Context, at time.Time) (*DashboardStats, error)
}
