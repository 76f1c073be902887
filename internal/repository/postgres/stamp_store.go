package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"stamprally/internal/domain"
)

// visitColumns maps each store code to its counter column. Counter
// selection always goes through this table, never through string building
// from request input.
var visitColumns = map[domain.StoreCode]string{
	domain.StoreA: "store_a_visits",
	domain.StoreB: "store_b_visits",
	domain.StoreC: "store_c_visits",
	domain.StoreD: "store_d_visits",
}

type stampStore struct {
	DB *sql.DB
}

// NewStampStore returns the postgres implementation of domain.StampStore.
// The whole read-check-write sequence runs in one transaction holding a
// row lock on the (visitor, event) progress row, so concurrent duplicate
// submissions serialize instead of double-counting.
func NewStampStore(db *sql.DB) domain.StampStore {
	return &stampStore{
		DB: db,
	}
}

func (s *stampStore) Apply(ctx context.Context, visitorID, eventID string, store domain.StoreCode, now time.Time, lineCount domain.LineCountFunc) (*domain.Progress, []int, error) {
	column, ok := visitColumns[store]
	if !ok {
		return nil, nil, domain.ErrInvalidInput
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Create the progress row if absent so the FOR UPDATE below always
	// has a row to lock.
	insertQuery := `
		INSERT INTO user_progress (visitor_id, event_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (visitor_id, event_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, insertQuery, visitorID, eventID, now); err != nil {
		return nil, nil, fmt.Errorf("ensure progress row: %w", err)
	}

	lockQuery := `
		SELECT id, visitor_id, event_id, store_a_visits, store_b_visits, store_c_visits, store_d_visits, last_stamp_at, created_at, updated_at
		FROM user_progress
		WHERE visitor_id = $1 AND event_id = $2
		FOR UPDATE
	`
	progress := &domain.Progress{}
	if err := tx.QueryRowContext(ctx, lockQuery, visitorID, eventID).Scan(
		&progress.ID, &progress.VisitorID, &progress.EventID,
		&progress.StoreAVisits, &progress.StoreBVisits, &progress.StoreCVisits, &progress.StoreDVisits,
		&progress.LastStampAt, &progress.CreatedAt, &progress.UpdatedAt,
	); err != nil {
		return nil, nil, fmt.Errorf("lock progress row: %w", err)
	}

	// Cooldown is global per visitor: a stamp at any store resets it.
	if progress.LastStampAt != nil && now.Sub(*progress.LastStampAt) < domain.StampCooldown {
		return nil, nil, domain.ErrRateLimited
	}
	if progress.Visits(store) >= domain.VisitCap {
		return nil, nil, domain.ErrVisitCapReached
	}

	updateQuery := fmt.Sprintf(`
		UPDATE user_progress
		SET %s = %s + 1, last_stamp_at = $2, updated_at = $2
		WHERE id = $1
		RETURNING store_a_visits, store_b_visits, store_c_visits, store_d_visits
	`, column, column)
	if err := tx.QueryRowContext(ctx, updateQuery, progress.ID, now).Scan(
		&progress.StoreAVisits, &progress.StoreBVisits, &progress.StoreCVisits, &progress.StoreDVisits,
	); err != nil {
		return nil, nil, fmt.Errorf("increment %s: %w", column, err)
	}
	progress.LastStampAt = &now
	progress.UpdatedAt = now

	newLines, err := s.recordAchievements(ctx, tx, visitorID, eventID, lineCount(*progress), now)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit stamp: %w", err)
	}
	return progress, newLines, nil
}

// recordAchievements inserts a row for every prize threshold the visitor
// has newly reached (1..MaxPrizeLines) and returns the created thresholds
// ascending. The unique (visitor, event, line_count) constraint keeps
// concurrent detections idempotent.
func (s *stampStore) recordAchievements(ctx context.Context, tx *sql.Tx, visitorID, eventID string, lines int, now time.Time) ([]int, error) {
	if lines > domain.MaxPrizeLines {
		lines = domain.MaxPrizeLines
	}
	if lines < 1 {
		return nil, nil
	}

	existingQuery := `
		SELECT line_count
		FROM bingo_achievements
		WHERE visitor_id = $1 AND event_id = $2
	`
	rows, err := tx.QueryContext(ctx, existingQuery, visitorID, eventID)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	existing := map[int]bool{}
	for rows.Next() {
		var lc int
		if err := rows.Scan(&lc); err != nil {
			return nil, err
		}
		existing[lc] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	insertQuery := `
		INSERT INTO bingo_achievements (visitor_id, event_id, line_count, achieved_at, created_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (visitor_id, event_id, line_count) DO NOTHING
	`
	var created []int
	for i := 1; i <= lines; i++ {
		if existing[i] {
			continue
		}
		res, err := tx.ExecContext(ctx, insertQuery, visitorID, eventID, i, now)
		if err != nil {
			return nil, fmt.Errorf("insert achievement line %d: %w", i, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected > 0 {
			created = append(created, i)
		}
	}
	return created, nil
}
