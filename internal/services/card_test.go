package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stamprally/internal/bingo"
	"stamprally/internal/domain"
)

type mockStoreRepository struct {
	storesByEvent map[string][]*domain.Store
	err           error
}

func (m *mockStoreRepository) Create(ctx context.Context, store *domain.Store) error { return nil }

func (m *mockStoreRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Store, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.storesByEvent[eventID], nil
}

type mockProgressRepository struct {
	progress map[string]*domain.Progress // visitorID:eventID
	count    int
	totals   domain.StampTotals
	err      error
}

func (m *mockProgressRepository) GetByVisitorAndEvent(ctx context.Context, visitorID, eventID string) (*domain.Progress, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.progress[visitorID+":"+eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *mockProgressRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	return m.count, m.err
}

func (m *mockProgressRepository) SumVisitsByEventID(ctx context.Context, eventID string) (domain.StampTotals, error) {
	return m.totals, m.err
}

type mockAchievementRepository struct {
	lineCounts map[string][]int // visitorID:eventID
	counts     domain.AchievementCounts
	redeemed   domain.AchievementCounts
	redeemErr  error
	err        error
}

func (m *mockAchievementRepository) ListLineCounts(ctx context.Context, visitorID, eventID string) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	lcs := m.lineCounts[visitorID+":"+eventID]
	if lcs == nil {
		lcs = []int{}
	}
	return lcs, nil
}

func (m *mockAchievementRepository) CountByEventID(ctx context.Context, eventID string, redeemedOnly bool) (domain.AchievementCounts, error) {
	if m.err != nil {
		return nil, m.err
	}
	if redeemedOnly {
		return m.redeemed, nil
	}
	return m.counts, nil
}

func (m *mockAchievementRepository) Redeem(ctx context.Context, visitorID, eventID string, lineCount int, store domain.StoreCode, at time.Time) error {
	return m.redeemErr
}

func cardFixtureEvent() *domain.Event {
	return &domain.Event{
		ID:        "evt-1",
		Name:      "Spring Rally",
		Status:    domain.EventActive,
		StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetCard_FreshVisitor(t *testing.T) {
	validUntil := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	svc := NewCardService(
		&mockEventRepository{events: map[string]*domain.Event{"evt-1": cardFixtureEvent()}},
		&mockStoreRepository{storesByEvent: map[string][]*domain.Store{
			"evt-1": {
				{EventID: "evt-1", Code: domain.StoreA, Name: "Cafe Aube"},
				{EventID: "evt-1", Code: domain.StoreB, Name: "Bakery Bloom"},
				{EventID: "evt-1", Code: domain.StoreC, Name: "Curry Corner"},
				{EventID: "evt-1", Code: domain.StoreD, Name: "Deli Dot"},
			},
		}},
		&mockPrizeRepository{prizes: map[int]*domain.Prize{
			1: {EventID: "evt-1", LineCount: 1, Name: "Free Coffee", ValidUntil: &validUntil},
		}},
		&mockProgressRepository{},
		&mockAchievementRepository{},
	)

	card, err := svc.GetCard(context.Background(), "evt-1", "visitor-1")
	require.NoError(t, err)
	require.Equal(t, "evt-1", card.Event.ID)
	require.Len(t, card.Stores, 4)
	require.Equal(t, "Cafe Aube", card.Stores[domain.StoreA].Name)
	require.Equal(t, "2025-05-31", card.Prizes[1].ValidUntil)
	require.Equal(t, domain.ProgressCounters{}, card.Progress)
	require.Equal(t, 0, card.LineCount)
	require.Empty(t, card.AchievedLines)

	require.Len(t, card.Cells, 25)
	for i, cell := range card.Cells {
		if i == bingo.FreeCellIndex {
			require.True(t, cell.Completed)
			require.Equal(t, bingo.FreeStore, cell.Store)
		} else {
			require.False(t, cell.Completed)
		}
	}
}

func TestGetCard_WithProgress(t *testing.T) {
	svc := NewCardService(
		&mockEventRepository{events: map[string]*domain.Event{"evt-1": cardFixtureEvent()}},
		&mockStoreRepository{},
		&mockPrizeRepository{},
		&mockProgressRepository{progress: map[string]*domain.Progress{
			"visitor-1:evt-1": {VisitorID: "visitor-1", EventID: "evt-1", StoreAVisits: 1, StoreBVisits: 2, StoreCVisits: 1, StoreDVisits: 1},
		}},
		&mockAchievementRepository{lineCounts: map[string][]int{"visitor-1:evt-1": {1}}},
	)

	card, err := svc.GetCard(context.Background(), "evt-1", "visitor-1")
	require.NoError(t, err)
	require.Equal(t, 1, card.LineCount)
	require.Equal(t, []int{1}, card.AchievedLines)
	require.Equal(t, domain.ProgressCounters{StoreAVisits: 1, StoreBVisits: 2, StoreCVisits: 1, StoreDVisits: 1}, card.Progress)
}

func TestGetCard_UnknownEvent(t *testing.T) {
	svc := NewCardService(
		&mockEventRepository{events: map[string]*domain.Event{}},
		&mockStoreRepository{}, &mockPrizeRepository{}, &mockProgressRepository{}, &mockAchievementRepository{},
	)

	_, err := svc.GetCard(context.Background(), "evt-missing", "visitor-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetActiveEvent(t *testing.T) {
	older := cardFixtureEvent()
	older.ID = "evt-old"
	older.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := cardFixtureEvent()
	newer.CreatedAt = time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	svc := NewCardService(
		&mockEventRepository{events: map[string]*domain.Event{"evt-old": older, "evt-1": newer}},
		&mockStoreRepository{}, &mockPrizeRepository{}, &mockProgressRepository{}, &mockAchievementRepository{},
	)

	event, err := svc.GetActiveEvent(context.Background())
	require.NoError(t, err)
	require.Equal(t, "evt-1", event.ID)
}

func TestGetActiveEvent_NoneRunning(t *testing.T) {
	ended := cardFixtureEvent()
	ended.Status = domain.EventEnded

	svc := NewCardService(
		&mockEventRepository{events: map[string]*domain.Event{"evt-1": ended}},
		&mockStoreRepository{}, &mockPrizeRepository{}, &mockProgressRepository{}, &mockAchievementRepository{},
	)

	_, err := svc.GetActiveEvent(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
