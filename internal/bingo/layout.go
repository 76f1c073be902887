// Package bingo holds the fixed 5x5 card layout and the pure evaluation
// functions over a visitor's progress counters.
package bingo

import "stamprally/internal/domain"

// FreeStore marks the always-completed center cell.
const FreeStore = "free"

// Cell is one position of the card: which store it belongs to and how many
// visits complete it. The free cell has Visit 0.
type Cell struct {
	Store string
	Visit int
}

// FreeCellIndex is the position of the free cell in the row-major layout.
const FreeCellIndex = 12

// Layout is the fixed 25-cell card, row-major, index 0-24. Each store
// appears in exactly six cells with required visits 1..6; clients address
// cells by index, so the ordering must never change.
var Layout = [25]Cell{
	// Row 0
	{Store: "a", Visit: 1},
	{Store: "c", Visit: 1},
	{Store: "b", Visit: 1},
	{Store: "d", Visit: 1},
	{Store: "b", Visit: 2},
	// Row 1
	{Store: "b", Visit: 3},
	{Store: "d", Visit: 2},
	{Store: "c", Visit: 2},
	{Store: "a", Visit: 2},
	{Store: "a", Visit: 3},
	// Row 2
	{Store: "c", Visit: 3},
	{Store: "a", Visit: 4},
	{Store: FreeStore, Visit: 0},
	{Store: "b", Visit: 4},
	{Store: "d", Visit: 3},
	// Row 3
	{Store: "d", Visit: 4},
	{Store: "b", Visit: 5},
	{Store: "a", Visit: 5},
	{Store: "c", Visit: 4},
	{Store: "d", Visit: 5},
	// Row 4
	{Store: "a", Visit: 6},
	{Store: "c", Visit: 5},
	{Store: "d", Visit: 6},
	{Store: "c", Visit: 6},
	{Store: "b", Visit: 6},
}

// Lines are the 12 winning paths over Layout indices: five rows, five
// columns, two diagonals.
var Lines = [12][5]int{
	// Rows
	{0, 1, 2, 3, 4},
	{5, 6, 7, 8, 9},
	{10, 11, 12, 13, 14},
	{15, 16, 17, 18, 19},
	{20, 21, 22, 23, 24},
	// Columns
	{0, 5, 10, 15, 20},
	{1, 6, 11, 16, 21},
	{2, 7, 12, 17, 22},
	{3, 8, 13, 18, 23},
	{4, 9, 14, 19, 24},
	// Diagonals
	{0, 6, 12, 18, 24},
	{4, 8, 12, 16, 20},
}

// StoreCode returns the cell's store as a domain code. ok is false for the
// free cell.
func (c Cell) StoreCode() (domain.StoreCode, bool) {
	if c.Store == FreeStore {
		return "", false
	}
	return domain.StoreCode(c.Store), true
}
