package postgres

import (
	"context"
	"database/sql"
	"errors"

	"stamprally/internal/domain"
)

type progressRepository struct {
	DB *sql.DB
}

func NewProgressRepository(db *sql.DB) domain.ProgressRepository {
	return &progressRepository{
		DB: db,
	}
}

func (r *progressRepository) GetByVisitorAndEvent(ctx context.Context, visitorID, eventID string) (*domain.Progress, error) {
	query := `
		SELECT id, visitor_id, event_id, store_a_visits, store_b_visits, store_c_visits, store_d_visits, last_stamp_at, created_at, updated_at
		FROM user_progress
		WHERE visitor_id = $1 AND event_id = $2
	`
	progress := &domain.Progress{}
	err := r.DB.QueryRowContext(ctx, query, visitorID, eventID).Scan(
		&progress.ID, &progress.VisitorID, &progress.EventID,
		&progress.StoreAVisits, &progress.StoreBVisits, &progress.StoreCVisits, &progress.StoreDVisits,
		&progress.LastStampAt, &progress.CreatedAt, &progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return progress, nil
}

func (r *progressRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM user_progress WHERE event_id = $1`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *progressRepository) SumVisitsByEventID(ctx context.Context, eventID string) (domain.StampTotals, error) {
	query := `
		SELECT COALESCE(SUM(store_a_visits), 0), COALESCE(SUM(store_b_visits), 0), COALESCE(SUM(store_c_visits), 0), COALESCE(SUM(store_d_visits), 0)
		FROM user_progress
		WHERE event_id = $1
	`
	var a, b, c, d int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&a, &b, &c, &d); err != nil {
		return nil, err
	}
	return domain.StampTotals{
		domain.StoreA: a,
		domain.StoreB: b,
		domain.StoreC: c,
		domain.StoreD: d,
	}, nil
}
