// Package reconciler turns the semi-structured daily spreadsheet into typed
// DailyRecord values. The sheet has one column per day and a fixed row
// layout; row 0 is headers, row 1 carries a DD/MM/YYYY label for every
// populated column.
package reconciler

import (
	"strings"
	"time"
)

// Structural constants of the source sheet, not discovered at runtime.
const (
	dateRow = 1
)

// DateLayout is the day/month/year format used by the sheet's label row.
const DateLayout = "02/01/2006"

// Grid is the sheet as returned by the spreadsheet API: text cells, empty
// string for blanks, rows possibly ragged.
type Grid [][]string

// Cell returns the trimmed cell at (row, col), or "" when the position is
// outside the grid. Ragged rows are common in exported sheets and are not
// an error.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	if col < 0 || col >= len(g[row]) {
		return ""
	}
	return strings.TrimSpace(g[row][col])
}

// DateRow returns the date-label row, or nil for a grid too short to have
// one.
func (g Grid) DateRow() []string {
	if len(g) <= dateRow {
		return nil
	}
	return g[dateRow]
}

// ParseDate parses a sheet date label. The second return is false for empty
// or malformed labels; those columns hold headers or notes, not data.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
