package domain

import (
	"context"
	"time"
)

// Achievement records that a visitor reached a line-count threshold for an
// event. At most one row exists per (visitor, event, line count); the row
// is write-once except for the redemption fields.
// swagger:model Achievement
type Achievement struct {
	ID            int64      `json:"id"`
	VisitorID     string     `json:"visitor_id"`
	EventID       string     `json:"event_id"`
	LineCount     int        `json:"line_count"`
	IsRedeemed    bool       `json:"is_redeemed"`
	RedeemedAt    *time.Time `json:"redeemed_at,omitempty"`
	RedeemedStore *StoreCode `json:"redeemed_store,omitempty"`
	AchievedAt    time.Time  `json:"achieved_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// AchievementCounts maps a line-count threshold (1..MaxPrizeLines) to the
// number of visitors that reached it.
type AchievementCounts map[int]int

// AchievementRepository defines storage operations for achievements.
// Creation happens inside StampStore so it shares the stamp transaction.
type AchievementRepository interface {
	// ListLineCounts returns the recorded thresholds for the visitor,
	// ascending. Empty slice when none.
	ListLineCounts(ctx context.Context, visitorID, eventID string) ([]int, error)
	CountByEventID(ctx context.Context, eventID string, redeemedOnly bool) (AchievementCounts, error)
	// Redeem marks the achievement redeemed at the given store.
	// Returns ErrNotFound when no such achievement exists and
	// ErrAlreadyRedeemed when the flag is already set.
	Redeem(ctx context.Context, visitorID, eventID string, lineCount int, store StoreCode, at time.Time) error
}
