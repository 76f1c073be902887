package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stamprally/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) CreateWithDetails(ctx context.Context, event *domain.Event, stores []*domain.Store, prizes []*domain.Prize) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	eventQuery := `
		INSERT INTO events (id, name, description, start_date, end_date, status, conditions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := tx.ExecContext(ctx, eventQuery,
		event.ID, event.Name, event.Description, event.StartDate, event.EndDate,
		event.Status, event.Conditions, event.CreatedAt, event.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	storeQuery := `
		INSERT INTO stores (event_id, store_code, name, description, instagram_url, twitter_url, tiktok_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	for _, store := range stores {
		if err := tx.QueryRowContext(ctx, storeQuery,
			store.EventID, store.Code, store.Name, store.Description,
			store.InstagramURL, store.TwitterURL, store.TikTokURL,
			store.CreatedAt, store.UpdatedAt,
		).Scan(&store.ID); err != nil {
			return fmt.Errorf("insert store %s: %w", store.Code, err)
		}
	}

	prizeQuery := `
		INSERT INTO prizes (event_id, line_count, name, description, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	for _, prize := range prizes {
		if err := tx.QueryRowContext(ctx, prizeQuery,
			prize.EventID, prize.LineCount, prize.Name, prize.Description,
			prize.ValidUntil, prize.CreatedAt, prize.UpdatedAt,
		).Scan(&prize.ID); err != nil {
			return fmt.Errorf("insert prize line %d: %w", prize.LineCount, err)
		}
	}

	return tx.Commit()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, name, description, start_date, end_date, status, conditions, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetActive(ctx context.Context) (*domain.Event, error) {
	query := `
		SELECT id, name, description, start_date, end_date, status, conditions, created_at, updated_at
		FROM events
		WHERE status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanOne(r.DB.QueryRowContext(ctx, query))
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, name, description, start_date, end_date, status, conditions, created_at, updated_at
		FROM events
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		event := &domain.Event{}
		if err := rows.Scan(
			&event.ID, &event.Name, &event.Description, &event.StartDate, &event.EndDate,
			&event.Status, &event.Conditions, &event.CreatedAt, &event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (r *eventRepository) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error {
	query := `
		UPDATE events
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.DB.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) scanOne(row *sql.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID, &event.Name, &event.Description, &event.StartDate, &event.EndDate,
		&event.Status, &event.Conditions, &event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}
