package domain

import (
	"context"
	"time"
)

// AdminUser is an operator account for the management API.
// swagger:model AdminUser
type AdminUser struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	IsActive     bool       `json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AdminRepository defines storage operations for admin users.
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

// PasswordHasher hashes and verifies admin passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues signed tokens for an authenticated admin.
type TokenIssuer interface {
	Issue(adminID, email, role string, expiry time.Duration) (string, error)
}

// TokenVerifier validates a token and returns the admin ID it carries.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthService authenticates admin users.
type AuthService interface {
	// Login verifies credentials and returns a signed token. Returns
	// ErrForbidden for unknown email, wrong password, or inactive account.
	Login(ctx context.Context, email, password string) (token string, admin *AdminUser, err error)
}
