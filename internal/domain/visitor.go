package domain

import (
	"context"
	"time"
)

// Visitor is an anonymous participant, identified by the opaque ID minted
// by the identity middleware on first contact.
type Visitor struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VisitorRepository defines storage operations for visitors.
type VisitorRepository interface {
	// EnsureExists creates the visitor row if absent. Idempotent.
	EnsureExists(ctx context.Context, id string) error
}
