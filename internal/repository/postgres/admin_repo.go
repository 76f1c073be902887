package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stamprally/internal/domain"
)

type adminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(db *sql.DB) domain.AdminRepository {
	return &adminRepository{
		DB: db,
	}
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	query := `
		SELECT id, email, password_hash, name, role, is_active, last_login_at, created_at, updated_at
		FROM admin_users
		WHERE email = $1
	`
	admin := &domain.AdminUser{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&admin.ID, &admin.Email, &admin.PasswordHash, &admin.Name, &admin.Role,
		&admin.IsActive, &admin.LastLoginAt, &admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE admin_users
		SET last_login_at = $2, updated_at = $2
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, query, id, at)
	return err
}
