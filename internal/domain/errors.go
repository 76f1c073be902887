package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrForbidden       = errors.New("forbidden")
	ErrEventNotRunning = errors.New("event is not currently running")
	ErrRateLimited     = errors.New("stamp cooldown has not elapsed")
	ErrVisitCapReached = errors.New("store visit cap reached")
	ErrAlreadyRedeemed = errors.New("achievement already redeemed")
)
