package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stamprally/internal/domain"
)

const adminTokenExpiry = 7 * 24 * time.Hour

type authService struct {
	adminRepo domain.AdminRepository
	hasher    domain.PasswordHasher
	issuer    domain.TokenIssuer
	logger    *slog.Logger
}

// NewAuthService creates an AuthService for admin login.
func NewAuthService(adminRepo domain.AdminRepository, hasher domain.PasswordHasher, issuer domain.TokenIssuer, logger *slog.Logger) domain.AuthService {
	return &authService{
		adminRepo: adminRepo,
		hasher:    hasher,
		issuer:    issuer,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrForbidden
		}
		return "", nil, fmt.Errorf("get admin: %w", err)
	}
	if !admin.IsActive {
		return "", nil, domain.ErrForbidden
	}
	if err := s.hasher.Compare(admin.PasswordHash, password); err != nil {
		return "", nil, domain.ErrForbidden
	}

	token, err := s.issuer.Issue(fmt.Sprintf("%d", admin.ID), admin.Email, admin.Role, adminTokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	now := time.Now()
	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		// Login still succeeds; the timestamp is informational.
		s.logger.ErrorContext(ctx, "update last login", "admin_id", admin.ID, "err", err)
	}
	admin.LastLoginAt = &now

	return token, admin, nil
}
