package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle state of a stamp-rally event.
type EventStatus string

const (
	EventDraft  EventStatus = "draft"
	EventActive EventStatus = "active"
	EventEnded  EventStatus = "ended"
)

// ParseEventStatus validates a raw status string.
func ParseEventStatus(s string) (EventStatus, error) {
	switch EventStatus(s) {
	case EventDraft, EventActive, EventEnded:
		return EventStatus(s), nil
	}
	return "", ErrInvalidInput
}

// Event represents a stamp-rally event
// swagger:model Event
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	Status      EventStatus `json:"status"`
	Conditions  string      `json:"conditions"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsRunning reports whether stamps may be accepted at the given instant:
// the event must be active and now must fall within [StartDate, EndDate].
func (e *Event) IsRunning(now time.Time) bool {
	if e.Status != EventActive {
		return false
	}
	return !now.Before(e.StartDate) && !now.After(e.EndDate)
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	// CreateWithDetails inserts the event together with its stores and
	// prizes in a single transaction.
	CreateWithDetails(ctx context.Context, event *Event, stores []*Store, prizes []*Prize) error
	GetByID(ctx context.Context, id string) (*Event, error)
	// GetActive returns the most recently created active event.
	GetActive(ctx context.Context) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	UpdateStatus(ctx context.Context, id string, status EventStatus) error
}
