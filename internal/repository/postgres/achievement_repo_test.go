package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"stamprally/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestAchievementRepository_ListLineCounts(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		want    []int
		wantErr bool
	}{
		{
			name: "success multiple",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT line_count`).
					WithArgs("v-1", "ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"line_count"}).AddRow(1).AddRow(2))
			},
			want: []int{1, 2},
		},
		{
			name: "success empty",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT line_count`).
					WithArgs("v-1", "ev-1").
					WillReturnRows(sqlmock.NewRows([]string{"line_count"}))
			},
			want: []int{},
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT line_count`).
					WithArgs("v-1", "ev-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAchievementRepository(db)
			got, err := repo.ListLineCounts(ctx, "v-1", "ev-1")
			if tt.wantErr {
				require.Error(t, err)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAchievementRepository_CountByEventID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT line_count, COUNT\(\*\)`).
		WithArgs("ev-1", true).
		WillReturnRows(sqlmock.NewRows([]string{"line_count", "count"}).
			AddRow(1, 10).AddRow(2, 3))

	repo := NewAchievementRepository(db)
	counts, err := repo.CountByEventID(ctx, "ev-1", true)
	require.NoError(t, err)
	require.Equal(t, domain.AchievementCounts{1: 10, 2: 3}, counts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAchievementRepository_Redeem(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT is_redeemed`).
					WithArgs("v-1", "ev-1", 1).
					WillReturnRows(sqlmock.NewRows([]string{"is_redeemed"}).AddRow(false))
				mock.ExpectExec(`UPDATE bingo_achievements`).
					WithArgs("v-1", "ev-1", 1, at, domain.StoreA).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "no achievement",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT is_redeemed`).
					WithArgs("v-1", "ev-1", 1).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "already redeemed",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT is_redeemed`).
					WithArgs("v-1", "ev-1", 1).
					WillReturnRows(sqlmock.NewRows([]string{"is_redeemed"}).AddRow(true))
			},
			wantErr: domain.ErrAlreadyRedeemed,
		},
		{
			name: "lost redemption race",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT is_redeemed`).
					WithArgs("v-1", "ev-1", 1).
					WillReturnRows(sqlmock.NewRows([]string{"is_redeemed"}).AddRow(false))
				mock.ExpectExec(`UPDATE bingo_achievements`).
					WithArgs("v-1", "ev-1", 1, at, domain.StoreA).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrAlreadyRedeemed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewAchievementRepository(db)
			err = repo.Redeem(ctx, "v-1", "ev-1", 1, domain.StoreA, at)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
