package ports

import (
	"context"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// AttendanceRepository defines persistence operations for attendance records.
// Dates are the canonical YYYY-MM-DD keys produced by domain.DateKey.
type AttendanceRepository interface {
	Create(ctx context.Context, record *domain.AttendanceRecord) (*domain.AttendanceRecord, error)
	Update(ctx context.Context, record *domain.AttendanceRecord) error
	// Upsert replaces the record for (EmployeeID, Date), creating it when absent.
	Upsert(ctx context.Context, record *domain.AttendanceRecord) (*domain.AttendanceRecord, error)
	FindByID(ctx context.Context, id string) (*domain.AttendanceRecord, error)
	FindByEmployeeAndDate(ctx context.Context, employeeID, date string) (*domain.AttendanceRecord, error)
	// ListByEmployee returns records newest-first, up to limit (0 = repository default).
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]*domain.AttendanceRecord, error)
	ListByDate(ctx context.Context, date string) ([]*domain.AttendanceRecord, error)
	CountByDateAndStatus(ctx context.Context, date string, status domain.AttendanceStatus) (int64, error)
}
