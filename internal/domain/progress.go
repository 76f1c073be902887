package domain

import (
	"context"
	"time"
)

const (
	// VisitCap is the maximum number of counted visits per store per
	// visitor per event.
	VisitCap = 6

	// StampCooldown is the minimum interval between two accepted stamps
	// for the same visitor, regardless of store.
	StampCooldown = 60 * time.Second
)

// Progress tracks a visitor's per-store visit counters for one event.
// swagger:model Progress
type Progress struct {
	ID           int64      `json:"id"`
	VisitorID    string     `json:"visitor_id"`
	EventID      string     `json:"event_id"`
	StoreAVisits int        `json:"store_a_visits"`
	StoreBVisits int        `json:"store_b_visits"`
	StoreCVisits int        `json:"store_c_visits"`
	StoreDVisits int        `json:"store_d_visits"`
	LastStampAt  *time.Time `json:"last_stamp_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Visits returns the counter for the given store code.
func (p Progress) Visits(code StoreCode) int {
	switch code {
	case StoreA:
		return p.StoreAVisits
	case StoreB:
		return p.StoreBVisits
	case StoreC:
		return p.StoreCVisits
	case StoreD:
		return p.StoreDVisits
	}
	return 0
}

// StampTotals aggregates stamp counts per store across all visitors of an
// event.
type StampTotals map[StoreCode]int

// ProgressRepository defines read/aggregate operations for progress rows.
// All mutation goes through StampStore.
type ProgressRepository interface {
	// GetByVisitorAndEvent returns ErrNotFound when the visitor has no
	// progress yet; callers treat that as all-zero counters.
	GetByVisitorAndEvent(ctx context.Context, visitorID, eventID string) (*Progress, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	SumVisitsByEventID(ctx context.Context, eventID string) (StampTotals, error)
}
