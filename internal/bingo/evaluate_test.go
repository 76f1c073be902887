package bingo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"stamprally/internal/domain"
)

func progress(a, b, c, d int) domain.Progress {
	return domain.Progress{
		StoreAVisits: a,
		StoreBVisits: b,
		StoreCVisits: c,
		StoreDVisits: d,
	}
}

func TestLineCount_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		p    domain.Progress
		want int
	}{
		{name: "all zero", p: progress(0, 0, 0, 0), want: 0},
		{name: "all at cap", p: progress(6, 6, 6, 6), want: 12},
		{name: "first row complete", p: progress(1, 2, 1, 1), want: 1},
		{name: "single store a saturated", p: progress(6, 0, 0, 0), want: 0},
		{name: "single store b saturated", p: progress(0, 6, 0, 0), want: 0},
		{name: "single store c saturated", p: progress(0, 0, 6, 0), want: 0},
		{name: "single store d saturated", p: progress(0, 0, 0, 6), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, LineCount(tt.p))
		})
	}
}

func TestCellStates_AllZero(t *testing.T) {
	states := CellStates(progress(0, 0, 0, 0))
	for i, state := range states {
		if i == FreeCellIndex {
			require.True(t, state, "free cell must always be complete")
		} else {
			require.False(t, state, "cell %d should be incomplete", i)
		}
	}
}

func TestCellStates_AllMax(t *testing.T) {
	states := CellStates(progress(6, 6, 6, 6))
	for i, state := range states {
		require.True(t, state, "cell %d should be complete", i)
	}
}

func TestCellStates_SingleVisit(t *testing.T) {
	states := CellStates(progress(1, 0, 0, 0))
	for i, cell := range Layout {
		want := i == FreeCellIndex || (cell.Store == "a" && cell.Visit <= 1)
		require.Equal(t, want, states[i], "cell %d", i)
	}
}

func TestLineCount_Monotonic(t *testing.T) {
	// Increasing any counter must never decrease the line count.
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		p := progress(rng.Intn(7), rng.Intn(7), rng.Intn(7), rng.Intn(7))
		base := LineCount(p)

		bumped := p
		switch rng.Intn(4) {
		case 0:
			bumped.StoreAVisits++
		case 1:
			bumped.StoreBVisits++
		case 2:
			bumped.StoreCVisits++
		case 3:
			bumped.StoreDVisits++
		}
		require.GreaterOrEqual(t, LineCount(bumped), base,
			"line count decreased going from %+v to %+v", p, bumped)
	}
}

func TestLineCount_Deterministic(t *testing.T) {
	p := progress(2, 3, 2, 2)
	require.Equal(t, LineCount(p), LineCount(p))
	require.Equal(t, CellStates(p), CellStates(p))
}
