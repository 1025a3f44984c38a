package domain

import (
	"errors"
	"time"
)

// AttendanceStatus classifies an attendance record for a day.
type AttendanceStatus string

const (
	AttendancePresent  AttendanceStatus = "Present"
	AttendanceLate     AttendanceStatus = "Late"
	AttendanceAbsent   AttendanceStatus = "Absent"
	AttendanceVacation AttendanceStatus = "Vacation"
	AttendanceSick     AttendanceStatus = "Sick"
	AttendanceHalfDay  AttendanceStatus = "Half-day"
)

// Valid reports whether the status is one of the known classifications.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent,
		AttendanceVacation, AttendanceSick, AttendanceHalfDay:
		return true
	}
	return false
}

// Clocked reports whether the status counts as a worked clock-in for the
// one-record-per-day uniqueness rule.
func (s AttendanceStatus) Clocked() bool {
	return s == AttendancePresent || s == AttendanceLate
}

var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrInvalidAttendanceStatus = errors.New("invalid attendance status")
	ErrAlreadyClockedOut       = errors.New("already clocked out for today")
)

// Workday start grace period: a clock-in is Late strictly after 09:15 local time.
const (
	lateHour   = 9
	lateMinute = 15
)

// ClassifyClockIn returns Present or Late for a clock-in at t, applying the
// hour >= 9 and minute > 15 rule in t's location.
func ClassifyClockIn(t time.Time) AttendanceStatus {
	if t.Hour() > lateHour || (t.Hour() == lateHour && t.Minute() > lateMinute) {
		return AttendanceLate
	}
	return AttendancePresent
}

// AttendanceRecord is the single per-(employee, day) attendance document.
type AttendanceRecord struct {
	ID         string           `json:"id"`
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"` // YYYY-MM-DD local date key
	TimeIn     string           `json:"time_in"`
	TimeOut    string           `json:"time_out,omitempty"`
	Status     AttendanceStatus `json:"status"`
	Duration   int              `json:"duration"` // minutes
	Notes      string           `json:"notes,omitempty"`
	Location   string           `json:"location,omitempty"`

	IsManualEntry bool   `json:"is_manual_entry"`
	EnteredBy     string `json:"entered_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Open reports whether the record has a clock-in but no clock-out yet.
func (r *AttendanceRecord) Open() bool {
	return r.TimeIn != "" && r.TimeOut == ""
}

// Complete reports whether both clock times are set.
func (r *AttendanceRecord) Complete() bool {
	return r.TimeIn != "" && r.TimeOut != ""
}

// DateKey formats t as the canonical attendance date key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ClockTimeLayout is the stored wall-clock format for time_in/time_out.
const ClockTimeLayout = "15:04:05"

// DurationMinutes computes the wall-clock difference between two stored clock
// times in minutes. Unparsable input yields 0 rather than an error: a corrupt
// timestamp must not block clock-out.
func DurationMinutes(timeIn, timeOut string) int {
	in, errIn := time.Parse(ClockTimeLayout, timeIn)
	out, errOut := time.Parse(ClockTimeLayout, timeOut)
	if errIn != nil || errOut != nil {
		return 0
	}
	mins := int(out.Sub(in).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}
