package domain

import (
	"context"
	"time"
)

// StoreCode identifies one of the four participating stores.
type StoreCode string

const (
	StoreA StoreCode = "a"
	StoreB StoreCode = "b"
	StoreC StoreCode = "c"
	StoreD StoreCode = "d"
)

// StoreCodes lists the four valid store codes in display order.
var StoreCodes = []StoreCode{StoreA, StoreB, StoreC, StoreD}

// ParseStoreCode validates a raw store code string.
// Returns ErrInvalidInput for anything other than a, b, c, d.
func ParseStoreCode(s string) (StoreCode, error) {
	switch StoreCode(s) {
	case StoreA, StoreB, StoreC, StoreD:
		return StoreCode(s), nil
	}
	return "", ErrInvalidInput
}

// Store represents one participating store within an event.
// swagger:model Store
type Store struct {
	ID           int64     `json:"id"`
	EventID      string    `json:"event_id"`
	Code         StoreCode `json:"code"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	InstagramURL string    `json:"instagram_url,omitempty"`
	TwitterURL   string    `json:"twitter_url,omitempty"`
	TikTokURL    string    `json:"tiktok_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StoreRepository defines storage operations for event stores.
type StoreRepository interface {
	Create(ctx context.Context, store *Store) error
	ListByEventID(ctx context.Context, eventID string) ([]*Store, error)
}
