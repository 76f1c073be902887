package postgres

import (
	"context"
	"database/sql"

	"stamprally/internal/domain"
)

type storeRepository struct {
	DB *sql.DB
}

func NewStoreRepository(db *sql.DB) domain.StoreRepository {
	return &storeRepository{
		DB: db,
	}
}

func (r *storeRepository) Create(ctx context.Context, store *domain.Store) error {
	query := `
		INSERT INTO stores (event_id, store_code, name, description, instagram_url, twitter_url, tiktok_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		store.EventID, store.Code, store.Name, store.Description,
		store.InstagramURL, store.TwitterURL, store.TikTokURL,
		store.CreatedAt, store.UpdatedAt,
	).Scan(&store.ID)
}

func (r *storeRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Store, error) {
	query := `
		SELECT id, event_id, store_code, name, description, instagram_url, twitter_url, tiktok_url, created_at, updated_at
		FROM stores
		WHERE event_id = $1
		ORDER BY store_code
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []*domain.Store
	for rows.Next() {
		store := &domain.Store{}
		if err := rows.Scan(
			&store.ID, &store.EventID, &store.Code, &store.Name, &store.Description,
			&store.InstagramURL, &store.TwitterURL, &store.TikTokURL,
			&store.CreatedAt, &store.UpdatedAt,
		); err != nil {
			return nil, err
		}
		stores = append(stores, store)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if stores == nil {
		stores = []*domain.Store{}
	}
	return stores, nil
}
