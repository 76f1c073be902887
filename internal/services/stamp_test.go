package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stamprally/internal/domain"
)

type mockEventRepository struct {
	events map[string]*domain.Event
	err    error
}

func (m *mockEventRepository) CreateWithDetails(ctx context.Context, event *domain.Event, stores []*domain.Store, prizes []*domain.Prize) error {
	return m.err
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) GetActive(ctx context.Context) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var latest *domain.Event
	for _, ev := range m.events {
		if ev.Status != domain.EventActive {
			continue
		}
		if latest == nil || ev.CreatedAt.After(latest.CreatedAt) {
			latest = ev
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return latest, nil
}

func (m *mockEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	events := []*domain.Event{}
	for _, ev := range m.events {
		events = append(events, ev)
	}
	return events, nil
}

func (m *mockEventRepository) UpdateStatus(ctx context.Context, id string, status domain.EventStatus) error {
	ev, ok := m.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	ev.Status = status
	return nil
}

type mockVisitorRepository struct {
	seen map[string]bool
	err  error
}

func (m *mockVisitorRepository) EnsureExists(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if m.seen == nil {
		m.seen = map[string]bool{}
	}
	m.seen[id] = true
	return nil
}

type mockPrizeRepository struct {
	prizes map[int]*domain.Prize // by line count
	err    error
}

func (m *mockPrizeRepository) Create(ctx context.Context, prize *domain.Prize) error { return nil }

func (m *mockPrizeRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Prize, error) {
	if m.err != nil {
		return nil, m.err
	}
	prizes := []*domain.Prize{}
	for _, p := range m.prizes {
		prizes = append(prizes, p)
	}
	return prizes, nil
}

func (m *mockPrizeRepository) GetByEventAndLine(ctx context.Context, eventID string, lineCount int) (*domain.Prize, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.prizes[lineCount]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// memStampStore mirrors the postgres stamp store semantics in memory so
// multi-stamp sequences can be exercised without a database.
type memStampStore struct {
	progress     map[string]*domain.Progress // visitorID:eventID
	achievements map[string][]int
	err          error
}

func newMemStampStore() *memStampStore {
	return &memStampStore{
		progress:     map[string]*domain.Progress{},
		achievements: map[string][]int{},
	}
}

func (m *memStampStore) Apply(ctx context.Context, visitorID, eventID string, store domain.StoreCode, now time.Time, lineCount domain.LineCountFunc) (*domain.Progress, []int, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	key := visitorID + ":" + eventID
	p, ok := m.progress[key]
	if !ok {
		p = &domain.Progress{VisitorID: visitorID, EventID: eventID, CreatedAt: now}
		m.progress[key] = p
	}
	if p.LastStampAt != nil && now.Sub(*p.LastStampAt) < domain.StampCooldown {
		return nil, nil, domain.ErrRateLimited
	}
	if p.Visits(store) >= domain.VisitCap {
		return nil, nil, domain.ErrVisitCapReached
	}
	switch store {
	case domain.StoreA:
		p.StoreAVisits++
	case domain.StoreB:
		p.StoreBVisits++
	case domain.StoreC:
		p.StoreCVisits++
	case domain.StoreD:
		p.StoreDVisits++
	}
	stamped := now
	p.LastStampAt = &stamped

	lines := lineCount(*p)
	if lines > domain.MaxPrizeLines {
		lines = domain.MaxPrizeLines
	}
	existing := map[int]bool{}
	for _, lc := range m.achievements[key] {
		existing[lc] = true
	}
	var created []int
	for i := 1; i <= lines; i++ {
		if !existing[i] {
			m.achievements[key] = append(m.achievements[key], i)
			created = append(created, i)
		}
	}
	snapshot := *p
	return &snapshot, created, nil
}

type stampFixture struct {
	svc     *stampService
	store   *memStampStore
	events  *mockEventRepository
	clock   time.Time
}

func newStampFixture(t *testing.T) *stampFixture {
	t.Helper()
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)
	events := &mockEventRepository{events: map[string]*domain.Event{
		"evt-1": {ID: "evt-1", Name: "Spring Rally", Status: domain.EventActive, StartDate: start, EndDate: end},
	}}
	prizes := &mockPrizeRepository{prizes: map[int]*domain.Prize{
		1: {EventID: "evt-1", LineCount: 1, Name: "Free Coffee", Description: "One free coffee"},
		2: {EventID: "evt-1", LineCount: 2, Name: "Dessert Set"},
		3: {EventID: "evt-1", LineCount: 3, Name: "Grand Prize"},
	}}
	store := newMemStampStore()
	svc := NewStampService(events, &mockVisitorRepository{}, prizes, store,
		slog.New(slog.DiscardHandler), nil).(*stampService)

	f := &stampFixture{svc: svc, store: store, events: events, clock: start.Add(time.Hour)}
	svc.now = func() time.Time { return f.clock }
	return f
}

// advance moves the fixture clock past the stamp cooldown.
func (f *stampFixture) advance() {
	f.clock = f.clock.Add(domain.StampCooldown + time.Second)
}

func TestSubmitStamp_FirstStamp(t *testing.T) {
	f := newStampFixture(t)

	result := f.svc.SubmitStamp(context.Background(), "evt-1", "visitor-1", "a")

	require.True(t, result.Success)
	require.Nil(t, result.Error)
	require.Equal(t, &domain.ProgressCounters{StoreAVisits: 1}, result.Progress)
	require.Nil(t, result.NewLineAchievement)
}

func TestSubmitStamp_InvalidStoreCode(t *testing.T) {
	f := newStampFixture(t)

	result := f.svc.SubmitStamp(context.Background(), "evt-1", "visitor-1", "x")

	require.False(t, result.Success)
	require.Equal(t, domain.StampErrInvalidInput, result.Error.Code)
	require.Nil(t, result.Progress)
	require.Empty(t, f.store.progress, "early failure must not mutate state")
}

func TestSubmitStamp_UnknownEvent(t *testing.T) {
	f := newStampFixture(t)

	result := f.svc.SubmitStamp(context.Background(), "evt-missing", "visitor-1", "a")

	require.False(t, result.Success)
	require.Equal(t, domain.StampErrNotFound, result.Error.Code)
}

func TestSubmitStamp_EventNotRunning(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *stampFixture)
	}{
		{name: "draft status", prepare: func(f *stampFixture) {
			f.events.events["evt-1"].Status = domain.EventDraft
		}},
		{name: "ended status", prepare: func(f *stampFixture) {
			f.events.events["evt-1"].Status = domain.EventEnded
		}},
		{name: "before start", prepare: func(f *stampFixture) {
			f.clock = f.events.events["evt-1"].StartDate.Add(-time.Hour)
		}},
		{name: "after end", prepare: func(f *stampFixture) {
			f.clock = f.events.events["evt-1"].EndDate.Add(time.Hour)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newStampFixture(t)
			tt.prepare(f)

			result := f.svc.SubmitStamp(context.Background(), "evt-1", "visitor-1", "a")

			require.False(t, result.Success)
			require.Equal(t, domain.StampErrInvalidEvent, result.Error.Code)
		})
	}
}

func TestSubmitStamp_RateLimit(t *testing.T) {
	f := newStampFixture(t)

	first := f.svc.SubmitStamp(context.Background(), "evt-1", "visitor-1", "a")
	require.True(t, first.Success)

	// Cooldown is global per visitor: a different store is still blocked.
	f.clock = f.clock.Add(30 * time.Second)
	second := f.svc.SubmitStamp(context.Background(), "evt-1", "visitor-1", "b")

	require.False(t, second.Success)
	require.Equal(t, domain.StampErrRateLimit, second.Error.Code)
	p := f.store.progress["visitor-1:evt-1"]
	require.Equal(t, 1, p.StoreAVisits)
	require.Equal(t, 0, p.StoreBVisits, "rejected stamp must not change counters")
}

func TestSubmitStamp_VisitCap(t *testing.T) {
	f := newStampFixture(t)

	for i := 0; i < domain.VisitCap; i++ {
		result := f.svc.SubmitStamp(context.Background(), "evt-1", "visitor-1", "a")
		require.True(t, result.Success, "stamp %d", i+1)
		f.advance()
	}

	seventh := f.svc.SubmitStamp(context.Background(), "evt-1", "visitor-1", "a")
	require.False(t, seventh.Success)
	require.Equal(t, domain.StampErrMaxVisits, seventh.Error.Code)
	require.Equal(t, domain.VisitCap, f.store.progress["visitor-1:evt-1"].StoreAVisits)
}

func TestSubmitStamp_FirstLineAchievement(t *testing.T) {
	f := newStampFixture(t)
	ctx := context.Background()

	// Reach {a:1, b:2, c:1, d:1}: the last stamp completes the top row.
	for _, code := range []string{"a", "b", "c", "d", "b"} {
		result := f.svc.SubmitStamp(ctx, "evt-1", "visitor-1", code)
		require.True(t, result.Success)
		f.advance()

		if code != "b" || result.Progress.StoreBVisits < 2 {
			require.Nil(t, result.NewLineAchievement)
			continue
		}
		require.NotNil(t, result.NewLineAchievement)
		require.Equal(t, 1, result.NewLineAchievement.LineCount)
		require.Equal(t, "Free Coffee", result.NewLineAchievement.PrizeName)
		require.Equal(t, "One free coffee", result.NewLineAchievement.PrizeDescription)
	}

	require.Equal(t, []int{1}, f.store.achievements["visitor-1:evt-1"], "achievement persisted exactly once")

	// A further stamp that keeps the line count at 1 yields no new achievement.
	result := f.svc.SubmitStamp(ctx, "evt-1", "visitor-1", "a")
	require.True(t, result.Success)
	require.Nil(t, result.NewLineAchievement)
	require.Equal(t, []int{1}, f.store.achievements["visitor-1:evt-1"])
}

func TestSubmitStamp_MultipleThresholdsReportsLowest(t *testing.T) {
	f := newStampFixture(t)
	ctx := context.Background()

	// Pre-load counters just below a multi-line completion, without any
	// recorded achievements, then let one stamp cross several thresholds.
	f.store.progress["visitor-1:evt-1"] = &domain.Progress{
		VisitorID:    "visitor-1",
		EventID:      "evt-1",
		StoreAVisits: 6,
		StoreBVisits: 6,
		StoreCVisits: 6,
		StoreDVisits: 5,
	}

	result := f.svc.SubmitStamp(ctx, "evt-1", "visitor-1", "d")
	require.True(t, result.Success)
	require.NotNil(t, result.NewLineAchievement)
	require.Equal(t, 1, result.NewLineAchievement.LineCount, "only the lowest crossed threshold is reported")
	require.Equal(t, []int{1, 2, 3}, f.store.achievements["visitor-1:evt-1"], "all crossed thresholds are persisted")
}

func TestSubmitStamp_StoreFailure(t *testing.T) {
	f := newStampFixture(t)
	f.store.err = context.DeadlineExceeded

	result := f.svc.SubmitStamp(context.Background(), "evt-1", "visitor-1", "a")

	require.False(t, result.Success)
	require.Equal(t, domain.StampErrServer, result.Error.Code)
}

func TestSubmitStamp_SeparateStoresSeparateCounters(t *testing.T) {
	f := newStampFixture(t)
	ctx := context.Background()

	require.True(t, f.svc.SubmitStamp(ctx, "evt-1", "visitor-1", "a").Success)
	f.advance()
	result := f.svc.SubmitStamp(ctx, "evt-1", "visitor-1", "b")

	require.True(t, result.Success)
	require.Equal(t, &domain.ProgressCounters{StoreAVisits: 1, StoreBVisits: 1}, result.Progress)
}
