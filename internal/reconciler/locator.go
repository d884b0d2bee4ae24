package reconciler

import (
	"strings"
	"time"
)

// ColumnNotFound is the sentinel returned when no column matches a lookup.
const ColumnNotFound = -1

// FindColumn returns the index of the column whose label equals target, or
// ColumnNotFound. Labels that do not parse are skipped, not an error.
func FindColumn(dateRow []string, target time.Time) int {
	ty, tm, td := target.Date()
	for i, cell := range dateRow {
		d, ok := ParseDate(cell)
		if !ok {
			continue
		}
		y, m, dd := d.Date()
		if y == ty && m == tm && dd == td {
			return i
		}
	}
	return ColumnNotFound
}

// LastNonEmptyColumn scans right-to-left and returns the first column with a
// non-empty label, parseable or not. Callers must re-validate the label
// before extracting from the column.
func LastNonEmptyColumn(dateRow []string) int {
	for i := len(dateRow) - 1; i >= 0; i-- {
		if strings.TrimSpace(dateRow[i]) != "" {
			return i
		}
	}
	return ColumnNotFound
}

// LastColumnOnOrBefore returns the rightmost column whose parsed date is on
// or before target. Labels are assumed monotonically non-decreasing left to
// right, so the scan stops at the first date past the target.
func LastColumnOnOrBefore(dateRow []string, target time.Time) int {
	last := ColumnNotFound
	for i, cell := range dateRow {
		d, ok := ParseDate(cell)
		if !ok {
			continue
		}
		if afterDay(d, target) {
			break
		}
		last = i
	}
	return last
}

// afterDay reports whether a falls on a later calendar day than b,
// ignoring wall-clock time.
func afterDay(a, b time.Time) bool {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return ad.After(bd)
}
