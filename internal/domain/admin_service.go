package domain

import (
	"context"
	"time"
)

// StorePrizeInput carries the store fields of an event creation request.
type StorePrizeInput struct {
	Name         string
	Description  string
	InstagramURL string
	TwitterURL   string
	TikTokURL    string
}

// PrizeInput carries the prize fields of an event creation request.
type PrizeInput struct {
	Name        string
	Description string
	ValidUntil  *time.Time
}

// CreateEventInput is the validated input for EventService.Create.
type CreateEventInput struct {
	ID          string // optional; generated when empty
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Conditions  string
	Stores      map[StoreCode]StorePrizeInput // one entry per store code
	Prizes      map[int]PrizeInput            // keyed by line count 1..MaxPrizeLines
}

// EventStatistics aggregates participation figures for the admin dashboard.
// swagger:model EventStatistics
type EventStatistics struct {
	ParticipantCount int               `json:"participant_count"`
	StampCounts      StampTotals       `json:"stamp_counts"`
	Achievements     AchievementCounts `json:"achievements"`
	Redeemed         AchievementCounts `json:"redeemed"`
}

// EventDetail bundles an event with its stores and prizes.
// swagger:model EventDetail
type EventDetail struct {
	Event  *Event   `json:"event"`
	Stores []*Store `json:"stores"`
	Prizes []*Prize `json:"prizes"`
}

// QRCodeSet maps each store code to a base64 PNG data URL of its stamp QR.
type QRCodeSet map[StoreCode]string

// EventService defines admin-side event management.
type EventService interface {
	// Create persists the event (status draft) with its four stores and
	// three prizes, generates the stamp QR codes, and emails the QR sheet
	// to the configured admin address (best effort).
	Create(ctx context.Context, input CreateEventInput) (*Event, QRCodeSet, error)
	Get(ctx context.Context, eventID string) (*EventDetail, error)
	List(ctx context.Context) ([]*Event, error)
	UpdateStatus(ctx context.Context, eventID string, status EventStatus) error
	RegenerateQRCodes(ctx context.Context, eventID string) (QRCodeSet, error)
	Statistics(ctx context.Context, eventID string) (*EventStatistics, error)
	// RedeemAchievement marks a visitor's achievement redeemed at a store.
	RedeemAchievement(ctx context.Context, visitorID, eventID string, lineCount int, store StoreCode) error
}

// QRGenerator encodes a payload string into a scannable image.
type QRGenerator interface {
	// DataURL returns the payload encoded as a base64 PNG data URL.
	DataURL(payload string) (string, error)
}

// Mailer sends outbound email.
type Mailer interface {
	Send(to, subject, html, text string) error
}
