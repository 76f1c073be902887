package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stamprally/internal/domain"
)

type achievementRepository struct {
	DB *sql.DB
}

func NewAchievementRepository(db *sql.DB) domain.AchievementRepository {
	return &achievementRepository{
		DB: db,
	}
}

func (r *achievementRepository) ListLineCounts(ctx context.Context, visitorID, eventID string) ([]int, error) {
	query := `
		SELECT line_count
		FROM bingo_achievements
		WHERE visitor_id = $1 AND event_id = $2
		ORDER BY line_count
	`
	rows, err := r.DB.QueryContext(ctx, query, visitorID, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lineCounts := []int{}
	for rows.Next() {
		var lc int
		if err := rows.Scan(&lc); err != nil {
			return nil, err
		}
		lineCounts = append(lineCounts, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lineCounts, nil
}

func (r *achievementRepository) CountByEventID(ctx context.Context, eventID string, redeemedOnly bool) (domain.AchievementCounts, error) {
	query := `
		SELECT line_count, COUNT(*)
		FROM bingo_achievements
		WHERE event_id = $1 AND ($2 = FALSE OR is_redeemed = TRUE)
		GROUP BY line_count
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, redeemedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := domain.AchievementCounts{}
	for rows.Next() {
		var lc, n int
		if err := rows.Scan(&lc, &n); err != nil {
			return nil, err
		}
		counts[lc] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *achievementRepository) Redeem(ctx context.Context, visitorID, eventID string, lineCount int, store domain.StoreCode, at time.Time) error {
	query := `
		SELECT is_redeemed
		FROM bingo_achievements
		WHERE visitor_id = $1 AND event_id = $2 AND line_count = $3
	`
	var redeemed bool
	err := r.DB.QueryRowContext(ctx, query, visitorID, eventID, lineCount).Scan(&redeemed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if redeemed {
		return domain.ErrAlreadyRedeemed
	}

	update := `
		UPDATE bingo_achievements
		SET is_redeemed = TRUE, redeemed_at = $4, redeemed_store = $5
		WHERE visitor_id = $1 AND event_id = $2 AND line_count = $3 AND is_redeemed = FALSE
	`
	res, err := r.DB.ExecContext(ctx, update, visitorID, eventID, lineCount, at, store)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// Lost a race with a concurrent redemption.
	if affected == 0 {
		return domain.ErrAlreadyRedeemed
	}
	return nil
}
