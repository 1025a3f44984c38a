package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

type stubAttendanceRepo struct {
	records map[string]*domain.AttendanceRecord // keyed by ID
	nextID  int
}

func newStubAttendanceRepo() *stubAttendanceRepo {
	return &stubAttendanceRepo{records: make(map[string]*domain.AttendanceRecord)}
}

func cloneRecord(r *domain.AttendanceRecord) *domain.AttendanceRecord {
	if r == nil {
		return nil
	}
	clone := *r
	return &clone
}

func (s *stubAttendanceRepo) Create(_ context.Context, record *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	s.nextID++
	copy := cloneRecord(record)
	copy.ID = fmt.Sprintf("att-%d", s.nextID)
	s.records[copy.ID] = cloneRecord(copy)
	return copy, nil
}

func (s *stubAttendanceRepo) Update(_ context.Context, record *domain.AttendanceRecord) error {
	if _, ok := s.records[record.ID]; !ok {
		return domain.ErrAttendanceNotFound
	}
	s.records[record.ID] = cloneRecord(record)
	return nil
}

func (s *stubAttendanceRepo) Upsert(ctx context.Context, record *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	for id, existing := range s.records {
		if existing.EmployeeID == record.EmployeeID && existing.Date == record.Date {
			copy := cloneRecord(record)
			copy.ID = id
			s.records[id] = cloneRecord(copy)
			return copy, nil
		}
	}
	return s.Create(ctx, record)
}

func (s *stubAttendanceRepo) FindByID(_ context.Context, id string) (*domain.AttendanceRecord, error) {
	if r, ok := s.records[id]; ok {
		return cloneRecord(r), nil
	}
	return nil, domain.ErrAttendanceNotFound
}

func (s *stubAttendanceRepo) FindByEmployeeAndDate(_ context.Context, employeeID, date string) (*domain.AttendanceRecord, error) {
	for _, r := range s.records {
		if r.EmployeeID == employeeID && r.Date == date {
			return cloneRecord(r), nil
		}
	}
	return nil, domain.ErrAttendanceNotFound
}

func (s *stubAttendanceRepo) ListByEmployee(_ context.Context, employeeID string, limit int) ([]*domain.AttendanceRecord, error) {
	var out []*domain.AttendanceRecord
	for _, r := range s.records {
		if r.EmployeeID == employeeID {
			out = append(out, cloneRecord(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubAttendanceRepo) ListByDate(_ context.Context, date string) ([]*domain.AttendanceRecord, error) {
	var out []*domain.AttendanceRecord
	for _, r := range s.records {
		if r.Date == date {
			out = append(out, cloneRecord(r))
		}
	}
	return out, nil
}

func (s *stubAttendanceRepo) CountByDateAndStatus(_ context.Context, date string, status domain.AttendanceStatus) (int64, error) {
	var n int64
	for _, r := range s.records {
		if r.Date == date && r.Status == status {
			n++
		}
	}
	return n, nil
}

func newAttendanceService() (*AttendanceService, *stubAttendanceRepo) {
	repo := newStubAttendanceRepo()
	return NewAttendanceService(repo, zerolog.Nop()), repo
}

// at builds a local timestamp on a fixed date.
func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 9, hour, minute, 0, 0, time.Local)
}

func TestAttendanceService_ClockIn_OnTime(t *testing.T) {
	svc, _ := newAttendanceService()

	record, err := svc.Record(context.Background(), ports.ClockInput{EmployeeID: "emp-1", At: at(8, 55)})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if record.Status != domain.AttendancePresent {
		t.Fatalf("expected Present, got %s", record.Status)
	}
	if record.TimeIn != "08:55:00" {
		t.Fatalf("unexpected time_in: %s", record.TimeIn)
	}
	if record.TimeOut != "" {
		t.Fatalf("time_out must be empty after clock-in")
	}
}

func TestAttendanceService_ClockIn_GraceBoundary(t *testing.T) {
	svc, _ := newAttendanceService()

	// 09:15 sharp is still on time; 09:16 is late.
	record, err := svc.Record(context.Background(), ports.ClockInput{EmployeeID: "emp-1", At: at(9, 15)})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if record.Status != domain.AttendancePresent {
		t.Fatalf("09:15 should be Present, got %s", record.Status)
	}

	late, err := svc.Record(context.Background(), ports.ClockInput{EmployeeID: "emp-2", At: at(9, 16)})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if late.Status != domain.AttendanceLate {
		t.Fatalf("09:16 should be Late, got %s", late.Status)
	}
}

func TestAttendanceService_ClockOut_ComputesDuration(t *testing.T) {
	svc, _ := newAttendanceService()

	if _, err := svc.Record(context.Background(), ports.ClockInput{EmployeeID: "emp-1", At: at(8, 0)}); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	record, err := svc.Record(context.Background(), ports.ClockInput{EmployeeID: "emp-1", At: at(17, 0)})
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}
	if record.TimeOut != "17:00:00" {
		t.Fatalf("unexpected time_out: %s", record.TimeOut)
	}
	if record.Duration != 540 {
		t.Fatalf("expected 540 minutes, got %d", record.Duration)
	}
}

func TestAttendanceService_ThirdClockFails(t *testing.T) {
	svc, _ := newAttendanceService()

	in := ports.ClockInput{EmployeeID: "emp-1", At: at(9, 0)}
	if _, err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	in.At = at(17, 30)
	if _, err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("clock out: %v", err)
	}
	in.At = at(18, 0)
	if _, err := svc.Record(context.Background(), in); !errors.Is(err, domain.ErrAlreadyClockedOut) {
		t.Fatalf("expected ErrAlreadyClockedOut, got %v", err)
	}
}

func TestAttendanceService_SeparateDaysSeparateRecords(t *testing.T) {
	svc, repo := newAttendanceService()

	day1 := time.Date(2026, time.March, 9, 9, 0, 0, 0, time.Local)
	day2 := day1.AddDate(0, 0, 1)

	if _, err := svc.Record(context.Background(), ports.ClockInput{EmployeeID: "emp-1", At: day1}); err != nil {
		t.Fatalf("day1: %v", err)
	}
	if _, err := svc.Record(context.Background(), ports.ClockInput{EmployeeID: "emp-1", At: day2}); err != nil {
		t.Fatalf("day2: %v", err)
	}
	if len(repo.records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(repo.records))
	}
}

func TestAttendanceService_ManualEntry(t *testing.T) {
	svc, _ := newAttendanceService()

	record, err := svc.ManualEntry(context.Background(), ports.ManualEntryInput{
		EmployeeID: "emp-7",
		Date:       "2026-03-02",
		TimeIn:     "09:00:00",
		TimeOut:    "13:00:00",
		Status:     domain.AttendanceHalfDay,
		EnteredBy:  "admin-1",
	})
	if err != nil {
		t.Fatalf("ManualEntry: %v", err)
	}
	if !record.IsManualEntry || record.EnteredBy != "admin-1" {
		t.Fatalf("manual entry not flagged: %+v", record)
	}
	if record.Duration != 240 {
		t.Fatalf("expected 240 minutes, got %d", record.Duration)
	}
}

func TestAttendanceService_ManualEntry_DefaultsToPresent(t *testing.T) {
	svc, _ := newAttendanceService()

	record, err := svc.ManualEntry(context.Background(), ports.ManualEntryInput{
		EmployeeID: "emp-7",
		Date:       "2026-03-03",
		TimeIn:     "09:00:00",
		EnteredBy:  "admin-1",
	})
	if err != nil {
		t.Fatalf("ManualEntry: %v", err)
	}
	if record.Status != domain.AttendancePresent {
		t.Fatalf("expected Present default, got %s", record.Status)
	}
}

func TestAttendanceService_ManualEntry_ReplacesExisting(t *testing.T) {
	svc, repo := newAttendanceService()

	input := ports.ManualEntryInput{
		EmployeeID: "emp-7",
		Date:       "2026-03-04",
		Status:     domain.AttendanceSick,
		EnteredBy:  "admin-1",
	}
	first, err := svc.ManualEntry(context.Background(), input)
	if err != nil {
		t.Fatalf("first entry: %v", err)
	}

	input.Status = domain.AttendanceVacation
	second, err := svc.ManualEntry(context.Background(), input)
	if err != nil {
		t.Fatalf("second entry: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected upsert on same (employee, date), got new record")
	}
	if len(repo.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(repo.records))
	}
}

func TestAttendanceService_ManualEntry_InvalidStatus(t *testing.T) {
	svc, _ := newAttendanceService()

	_, err := svc.ManualEntry(context.Background(), ports.ManualEntryInput{
		EmployeeID: "emp-7",
		Date:       "2026-03-05",
		Status:     "OnTheMoon",
	})
	if !errors.Is(err, domain.ErrInvalidAttendanceStatus) {
		t.Fatalf("expected ErrInvalidAttendanceStatus, got %v", err)
	}
}

func TestAttendanceService_Override_AbsentClearsTimes(t *testing.T) {
	svc, _ := newAttendanceService()

	if _, err := svc.Record(context.Background(), ports.ClockInput{EmployeeID: "emp-1", At: at(9, 0)}); err != nil {
		t.Fatalf("clock in: %v", err)
	}
	created, err := svc.Record(context.Background(), ports.ClockInput{EmployeeID: "emp-1", At: at(17, 0)})
	if err != nil {
		t.Fatalf("clock out: %v", err)
	}

	record, err := svc.Override(context.Background(), ports.OverrideInput{
		RecordID: created.ID,
		Status:   domain.AttendanceAbsent,
		ActorID:  "admin-1",
	})
	if err != nil {
		t.Fatalf("Override: %v", err)
	}
	if record.Status != domain.AttendanceAbsent {
		t.Fatalf("expected Absent, got %s", record.Status)
	}
	if record.TimeIn != "" || record.TimeOut != "" || record.Duration != 0 {
		t.Fatalf("Absent must clear clock data: %+v", record)
	}
	if !record.IsManualEntry || record.EnteredBy != "admin-1" {
		t.Fatalf("override not attributed: %+v", record)
	}
}

func TestAttendanceService_Override_UnknownRecord(t *testing.T) {
	svc, _ := newAttendanceService()

	_, err := svc.Override(context.Background(), ports.OverrideInput{
		RecordID: "missing",
		Status:   domain.AttendanceSick,
	})
	if !errors.Is(err, domain.ErrAttendanceNotFound) {
		t.Fatalf("expected ErrAttendanceNotFound, got %v", err)
	}
}
