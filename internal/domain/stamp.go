package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// StampURIScheme is the custom URI scheme embedded in store QR codes.
// Full payload format: bingo://stamp/{eventId}/{storeCode}
const StampURIScheme = "bingo"

// Error codes returned inside StampResult. These are part of the client
// contract and must not change.
const (
	StampErrInvalidInput = "INVALID_INPUT"
	StampErrNotFound     = "NOT_FOUND"
	StampErrInvalidEvent = "INVALID_EVENT"
	StampErrRateLimit    = "RATE_LIMIT"
	StampErrMaxVisits    = "MAX_VISITS"
	StampErrServer       = "SERVER_ERROR"
)

// StampError is the structured failure carried inside a StampResult.
// swagger:model StampError
type StampError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProgressCounters is the progress snapshot returned to scan clients.
// Field names match the scan UI contract.
// swagger:model ProgressCounters
type ProgressCounters struct {
	StoreAVisits int `json:"storeAVisits"`
	StoreBVisits int `json:"storeBVisits"`
	StoreCVisits int `json:"storeCVisits"`
	StoreDVisits int `json:"storeDVisits"`
}

// LineAchievement describes a newly crossed line threshold, enriched with
// the configured prize. ValidUntil is a YYYY-MM-DD date string when set.
// swagger:model LineAchievement
type LineAchievement struct {
	LineCount        int    `json:"lineCount"`
	PrizeName        string `json:"prizeName"`
	PrizeDescription string `json:"prizeDescription"`
	ValidUntil       string `json:"validUntil,omitempty"`
}

// StampResult is the outcome of one stamp submission. Failures are data,
// not errors: Success is false and Error is set.
// swagger:model StampResult
type StampResult struct {
	Success            bool              `json:"success"`
	Message            string            `json:"message"`
	Progress           *ProgressCounters `json:"progress,omitempty"`
	NewLineAchievement *LineAchievement  `json:"newLineAchievement,omitempty"`
	Error              *StampError       `json:"error,omitempty"`
}

// LineCountFunc evaluates the number of completed bingo lines for a
// progress snapshot.
type LineCountFunc func(Progress) int

// StampStore applies one stamp atomically. Implementations must treat the
// cooldown check, the cap check, the counter increment and the achievement
// inserts as a single critical section per (visitor, event) so that
// concurrent duplicate submissions cannot overshoot the cap or bypass the
// cooldown.
//
// Apply returns the updated progress and the line-count thresholds whose
// achievement rows were newly created by this call, ascending. It returns
// ErrRateLimited when the cooldown has not elapsed and ErrVisitCapReached
// when the store counter is already at VisitCap.
type StampStore interface {
	Apply(ctx context.Context, visitorID, eventID string, store StoreCode, now time.Time, lineCount LineCountFunc) (*Progress, []int, error)
}

// StampService processes scan-to-stamp submissions.
type StampService interface {
	// SubmitStamp runs the full stamp transaction for the visitor. All
	// expected failures are reported inside the result; the error return
	// is reserved for missing-visitor preconditions.
	SubmitStamp(ctx context.Context, eventID, visitorID, storeCode string) *StampResult
}

// ParseStampURI parses a scanned QR payload of the form
// bingo://stamp/{eventId}/{storeCode}. The same format is accepted from
// the manual-entry fallback.
func ParseStampURI(raw string) (eventID string, store StoreCode, err error) {
	prefix := StampURIScheme + "://stamp/"
	if !strings.HasPrefix(raw, prefix) {
		return "", "", fmt.Errorf("parse stamp uri %q: %w", raw, ErrInvalidInput)
	}
	rest := strings.TrimPrefix(raw, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("parse stamp uri %q: %w", raw, ErrInvalidInput)
	}
	store, err = ParseStoreCode(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("parse stamp uri %q: %w", raw, ErrInvalidInput)
	}
	return parts[0], store, nil
}

// StampURI builds the QR payload for the given event and store.
func StampURI(eventID string, store StoreCode) string {
	return fmt.Sprintf("%s://stamp/%s/%s", StampURIScheme, eventID, store)
}
