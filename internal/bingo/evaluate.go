package bingo

import "stamprally/internal/domain"

// CellStates returns the completion state of every cell for the given
// progress: the free cell is always complete, every other cell is complete
// once its store's counter reaches the required visit count. Pure.
func CellStates(p domain.Progress) [25]bool {
	var states [25]bool
	for i, cell := range Layout {
		code, ok := cell.StoreCode()
		if !ok {
			states[i] = true
			continue
		}
		states[i] = p.Visits(code) >= cell.Visit
	}
	return states
}

// LineCount returns the number of fully completed lines (0..12) for the
// given progress. Monotonic in every store counter.
func LineCount(p domain.Progress) int {
	states := CellStates(p)
	count := 0
	for _, line := range Lines {
		complete := true
		for _, idx := range line {
			if !states[idx] {
				complete = false
				break
			}
		}
		if complete {
			count++
		}
	}
	return count
}
