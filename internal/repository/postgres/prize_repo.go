package postgres

import (
	"context"
	"database/sql"
	"errors"

	"stamprally/internal/domain"
)

type prizeRepository struct {
	DB *sql.DB
}

func NewPrizeRepository(db *sql.DB) domain.PrizeRepository {
	return &prizeRepository{
		DB: db,
	}
}

func (r *prizeRepository) Create(ctx context.Context, prize *domain.Prize) error {
	query := `
		INSERT INTO prizes (event_id, line_count, name, description, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		prize.EventID, prize.LineCount, prize.Name, prize.Description,
		prize.ValidUntil, prize.CreatedAt, prize.UpdatedAt,
	).Scan(&prize.ID)
}

func (r *prizeRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Prize, error) {
	query := `
		SELECT id, event_id, line_count, name, description, valid_until, created_at, updated_at
		FROM prizes
		WHERE event_id = $1
		ORDER BY line_count
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prizes []*domain.Prize
	for rows.Next() {
		prize := &domain.Prize{}
		if err := rows.Scan(
			&prize.ID, &prize.EventID, &prize.LineCount, &prize.Name, &prize.Description,
			&prize.ValidUntil, &prize.CreatedAt, &prize.UpdatedAt,
		); err != nil {
			return nil, err
		}
		prizes = append(prizes, prize)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if prizes == nil {
		prizes = []*domain.Prize{}
	}
	return prizes, nil
}

func (r *prizeRepository) GetByEventAndLine(ctx context.Context, eventID string, lineCount int) (*domain.Prize, error) {
	query := `
		SELECT id, event_id, line_count, name, description, valid_until, created_at, updated_at
		FROM prizes
		WHERE event_id = $1 AND line_count = $2
	`
	prize := &domain.Prize{}
	err := r.DB.QueryRowContext(ctx, query, eventID, lineCount).Scan(
		&prize.ID, &prize.EventID, &prize.LineCount, &prize.Name, &prize.Description,
		&prize.ValidUntil, &prize.CreatedAt, &prize.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return prize, nil
}
