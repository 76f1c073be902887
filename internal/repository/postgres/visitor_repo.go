package postgres

import (
	"context"
	"database/sql"

	"stamprally/internal/domain"
)

type visitorRepository struct {
	DB *sql.DB
}

func NewVisitorRepository(db *sql.DB) domain.VisitorRepository {
	return &visitorRepository{
		DB: db,
	}
}

func (r *visitorRepository) EnsureExists(ctx context.Context, id string) error {
	query := `
		INSERT INTO visitors (id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}
