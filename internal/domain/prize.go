package domain

import (
	"context"
	"time"
)

// MaxPrizeLines is the highest line-count threshold that has a configured
// prize. Achievements are only recorded for thresholds 1..MaxPrizeLines.
const MaxPrizeLines = 3

// Prize is the reward for reaching a given line-count threshold.
// swagger:model Prize
type Prize struct {
	ID          int64      `json:"id"`
	EventID     string     `json:"event_id"`
	LineCount   int        `json:"line_count"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ValidUntil  *time.Time `json:"valid_until,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PrizeRepository defines storage operations for prizes.
type PrizeRepository interface {
	Create(ctx context.Context, prize *Prize) error
	ListByEventID(ctx context.Context, eventID string) ([]*Prize, error)
	GetByEventAndLine(ctx context.Context, eventID string, lineCount int) (*Prize, error)
}
