package domain

import (
	"errors"
	"time"
)

var ErrEventNotFound = errors.New("event not found")

// CalendarEvent is an entry on the shared office calendar.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	AllDay      bool      `json:"all_day"`
	Category    string    `json:"category,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
