package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/api/metrics"
	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// AttendanceService implements the daily clock-in/out state machine.
type AttendanceService struct {
	repo   ports.AttendanceRepository
	logger zerolog.Logger
}

func NewAttendanceService(repo ports.AttendanceRepository, logger zerolog.Logger) *AttendanceService {
	return &AttendanceService{repo: repo, logger: logger}
}

// Record advances the state machine for (employee, today):
// no record → clock-in (Present or Late), open record → clock-out with
// duration, complete record → domain.ErrAlreadyClockedOut.
func (s *AttendanceService) Record(ctx context.Context, input ports.ClockInput) (*domain.AttendanceRecord, error) {
	date := domain.DateKey(input.At)

	record, err := s.repo.FindByEmployeeAndDate(ctx, input.EmployeeID, date)
	if err != nil && !errors.Is(err, domain.ErrAttendanceNotFound) {
		return nil, err
	}

	now := input.At
	clock := now.Format(domain.ClockTimeLayout)

	if record == nil {
		status := domain.ClassifyClockIn(now)
		record = &domain.AttendanceRecord{
			EmployeeID: input.EmployeeID,
			Date:       date,
			TimeIn:     clock,
			Status:     status,
			Notes:      input.Notes,
			Location:   input.Location,
			CreatedAt:  now.UTC(),
			UpdatedAt:  now.UTC(),
		}
		created, err := s.repo.Create(ctx, record)
		if err != nil {
			return nil, err
		}
		metrics.ClockEventsTotal.WithLabelValues("in", string(status)).Inc()
		s.logger.Info().
			Str("employee_id", input.EmployeeID).
			Str("date", date).
			Str("status", string(status)).
			Msg("clocked in")
		return created, nil
	}

	if record.Complete() {
		return nil, domain.ErrAlreadyClockedOut
	}
	if record.TimeIn == "" {
		// Admin pre-set the day (e.g. Half-day) without clock times; treat
		// this call as the clock-in.
		record.TimeIn = clock
		record.UpdatedAt = now.UTC()
		if err := s.repo.Update(ctx, record); err != nil {
			return nil, err
		}
		metrics.ClockEventsTotal.WithLabelValues("in", string(record.Status)).Inc()
		return record, nil
	}

	record.TimeOut = clock
	record.Duration = domain.DurationMinutes(record.TimeIn, record.TimeOut)
	record.UpdatedAt = now.UTC()
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	metrics.ClockEventsTotal.WithLabelValues("out", string(record.Status)).Inc()
	s.logger.Info().
		Str("employee_id", input.EmployeeID).
		Str("date", date).
		Int("duration_min", record.Duration).
		Msg("clocked out")
	return record, nil
}

// Today returns the record for the employee's current day.
func (s *AttendanceService) Today(ctx context.Context, employeeID string, at time.Time) (*domain.AttendanceRecord, error) {
	return s.repo.FindByEmployeeAndDate(ctx, employeeID, domain.DateKey(at))
}

// History returns the employee's records newest-first.
func (s *AttendanceService) History(ctx context.Context, employeeID string, limit int) ([]*domain.AttendanceRecord, error) {
	return s.repo.ListByEmployee(ctx, employeeID, limit)
}

// ListByDate returns all records for a calendar day.
func (s *AttendanceService) ListByDate(ctx context.Context, date string) ([]*domain.AttendanceRecord, error) {
	return s.repo.ListByDate(ctx, date)
}

// ManualEntry bypasses the state machine: it upserts a record for an
// arbitrary date/time pair and flags the author.
func (s *AttendanceService) ManualEntry(ctx context.Context, input ports.ManualEntryInput) (*domain.AttendanceRecord, error) {
	status := input.Status
	if status == "" {
		status = domain.AttendancePresent
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidAttendanceStatus
	}

	now := time.Now().UTC()
	record := &domain.AttendanceRecord{
		EmployeeID:    input.EmployeeID,
		Date:          input.Date,
		TimeIn:        input.TimeIn,
		TimeOut:       input.TimeOut,
		Status:        status,
		Notes:         input.Notes,
		IsManualEntry: true,
		EnteredBy:     input.EnteredBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if record.Complete() {
		record.Duration = domain.DurationMinutes(record.TimeIn, record.TimeOut)
	}

	upserted, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("employee_id", input.EmployeeID).
		Str("date", input.Date).
		Str("entered_by", input.EnteredBy).
		Msg("manual attendance entry")
	return upserted, nil
}

// Override sets the record status directly. Absent clears clock times and
// zeroes the duration.
func (s *AttendanceService) Override(ctx context.Context, input ports.OverrideInput) (*domain.AttendanceRecord, error) {
	if !input.Status.Valid() {
		return nil, domain.ErrInvalidAttendanceStatus
	}

	record, err := s.repo.FindByID(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	record.Status = input.Status
	if input.Status == domain.AttendanceAbsent {
		record.TimeIn = ""
		record.TimeOut = ""
		record.Duration = 0
	}
	record.IsManualEntry = true
	record.EnteredBy = input.ActorID
	record.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
