package service

import (
	"context"
	"time"

	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// AnalyticsService aggregates the dashboard counters from the repositories.
type AnalyticsService struct {
	accounts    ports.AccountRepository
	attendance  ports.AttendanceRepository
	tasks       ports.TaskRepository
	departments ports.DepartmentRepository
}

func NewAnalyticsService(
	accounts ports.AccountRepository,
	attendance ports.AttendanceRepository,
	tasks ports.TaskRepository,
	departments ports.DepartmentRepository,
) *AnalyticsService {
	return &AnalyticsService{
		accounts:    accounts,
		attendance:  attendance,
		tasks:       tasks,
		departments: departments,
	}
}

// Dashboard computes the counters for the given instant's calendar day.
func (s *AnalyticsService) Dashboard(ctx context.Context, at time.Time) (*ports.DashboardStats, error) {
	stats := &ports.DashboardStats{
		AttendanceToday: make(map[string]int64),
		TasksByStatus:   make(map[string]int64),
	}

	total, err := s.accounts.CountByRoleAndStatus(ctx, domain.RoleEmployee, "")
	if err != nil {
		return nil, err
	}
	stats.TotalEmployees = total

	pending, err := s.accounts.CountByRoleAndStatus(ctx, domain.RoleEmployee, domain.StatusPending)
	if err != nil {
		return nil, err
	}
	stats.PendingEmployees = pending

	depts, err := s.departments.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.Departments = depts

	date := domain.DateKey(at)
	for _, status := range []domain.AttendanceStatus{
		domain.AttendancePresent, domain.AttendanceLate, domain.AttendanceAbsent,
		domain.AttendanceVacation, domain.AttendanceSick, domain.AttendanceHalfDay,
	} {
		n, err := s.attendance.CountByDateAndStatus(ctx, date, status)
		if err != nil {
			return nil, err
		}
		stats.AttendanceToday[string(status)] = n
	}

	for _, status := range []domain.TaskStatus{domain.TaskPending, domain.TaskInProgress, domain.TaskCompleted} {
		n, err := s.tasks.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats.TasksByStatus[string(status)] = n
	}

	return stats, nil
}
