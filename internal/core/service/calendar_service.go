package service

import (
	"context"
	"time"

	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// CalendarService implements calendar event CRUD and range queries.
type CalendarService struct {
	repo ports.CalendarRepository
}

func NewCalendarService(repo ports.CalendarRepository) *CalendarService {
	return &CalendarService{repo: repo}
}

// CreateEventInput carries all data for creating a calendar event.
type CreateEventInput struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Category    string
	Attendees   []string
	CreatedBy   string
}

func (s *CalendarService) Create(ctx context.Context, input CreateEventInput) (*domain.CalendarEvent, error) {
	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.CalendarEvent{
		Title:       input.Title,
		Description: input.Description,
		Start:       input.Start,
		End:         input.End,
		AllDay:      input.AllDay,
		Category:    input.Category,
		Attendees:   input.Attendees,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *CalendarService) Get(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CalendarService) ListRange(ctx context.Context, from, to time.Time) ([]*domain.CalendarEvent, error) {
	return s.repo.ListRange(ctx, from, to)
}

func (s *CalendarService) Update(ctx context.Context, id string, input CreateEventInput) (*domain.CalendarEvent, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Title = input.Title
	event.Description = input.Description
	event.Start = input.Start
	event.End = input.End
	event.AllDay = input.AllDay
	event.Category = input.Category
	event.Attendees = input.Attendees
	event.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *CalendarService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
