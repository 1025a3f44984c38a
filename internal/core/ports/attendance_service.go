package ports

import (
	"context"
	"time"

	"github.com/officecorner/hr-system/internal/core/domain"
)

// ClockInput carries a clock-in or clock-out request.
type ClockInput struct {
	EmployeeID string
	At         time.Time
	Notes      string
	Location   string
}

// ManualEntryInput carries an admin-entered attendance record for an
// arbitrary date and time pair.
type ManualEntryInput struct {
	EmployeeID string
	Date       string
	TimeIn     string
	TimeOut    string
	Status     domain.AttendanceStatus
	Notes      string
	EnteredBy  string
}

// OverrideInput carries an admin status override for an existing record.
type OverrideInput struct {
	RecordID string
	Status   domain.AttendanceStatus
	ActorID  string
}

// AttendanceService defines the attendance use cases.
type AttendanceService interface {
	// Record advances the daily state machine: none → clocked-in → clocked-out.
	// A third call on the same day fails with domain.ErrAlreadyClockedOut.
	Record(ctx context.Context, input ClockInput) (*domain.AttendanceRecord, error)
	Today(ctx context.Context, employeeID string, at time.Time) (*domain.AttendanceRecord, error)
	History(ctx context.Context, employeeID string, limit int) ([]*domain.AttendanceRecord, error)
	// ManualEntry bypasses the state machine and upserts the given record.
	ManualEntry(ctx context.Context, input ManualEntryInput) (*domain.AttendanceRecord, error)
	// Override sets the record status; Absent clears clock times and duration.
	Override(ctx context.Context, input OverrideInput) (*domain.AttendanceRecord, error)
	ListByDate(ctx context.Context, date string) ([]*domain.AttendanceRecord, error)
}
