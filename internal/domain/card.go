package domain

import "context"

// CardCell is one cell of the rendered bingo card.
type CardCell struct {
	Store     string `json:"store"` // store code or "free"
	Visit     int    `json:"visit"`
	Completed bool   `json:"completed"`
}

// CardStoreInfo is the public store listing shown on the card.
type CardStoreInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	InstagramURL string `json:"instagram_url,omitempty"`
	TwitterURL   string `json:"twitter_url,omitempty"`
	TikTokURL    string `json:"tiktok_url,omitempty"`
}

// CardPrizeInfo is the public prize listing shown on the card.
type CardPrizeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ValidUntil  string `json:"valid_until,omitempty"` // YYYY-MM-DD
}

// BingoCard is everything a client needs to render a visitor's card.
// swagger:model BingoCard
type BingoCard struct {
	Event         *Event                      `json:"event"`
	Stores        map[StoreCode]CardStoreInfo `json:"stores"`
	Prizes        map[int]CardPrizeInfo       `json:"prizes"` // keyed by line count 1..MaxPrizeLines
	Progress      ProgressCounters            `json:"progress"`
	Cells         []CardCell                  `json:"cells"` // 25 entries, row-major
	LineCount     int                         `json:"line_count"`
	AchievedLines []int                       `json:"achieved_lines"` // recorded thresholds, ascending
}

// CardService assembles bingo card data for rendering.
type CardService interface {
	GetCard(ctx context.Context, eventID, visitorID string) (*BingoCard, error)
	// GetActiveEvent returns the most recently created active event, or
	// ErrNotFound when no event is running.
	GetActiveEvent(ctx context.Context) (*Event, error)
}
