package reconciler

import (
	"revops/internal/models"
)

// BuildRecord extracts one DailyRecord from a column. The second return is
// false when the column's date label is blank or unparseable: such a column
// is not a record, not a zeroed one.
func BuildRecord(g Grid, col int) (models.DailyRecord, bool) {
	label := g.Cell(dateRow, col)
	if label == "" {
		return models.DailyRecord{}, false
	}
	date, ok := ParseDate(label)
	if !ok {
		return models.DailyRecord{}, false
	}

	rec := models.NewDailyRecord(date.Format("2006-01-02"))
	for _, f := range Schema {
		raw := g.Cell(f.Row, col)
		switch f.Kind {
		case KindCurrency:
			f.set(&rec, ParseCurrencyCell(raw), 0)
		case KindDecimal:
			f.set(&rec, 0, ParseDecimalCell(raw))
		default:
			f.set(&rec, ParseIntCell(raw), 0)
		}
	}
	return rec, true
}

// FirstDateColumn returns the leftmost column whose label parses as a date,
// or ColumnNotFound when the sheet has no data columns at all.
func FirstDateColumn(dateRow []string) int {
	for i, cell := range dateRow {
		if _, ok := ParseDate(cell); ok {
			return i
		}
	}
	return ColumnNotFound
}

// BuildSeries extracts records for the inclusive column range [first, last]
// in column order. Columns that yield no record are skipped; duplicate date
// labels are not deduplicated and the output is never re-sorted.
func BuildSeries(g Grid, first, last int) []models.DailyRecord {
	var days []models.DailyRecord
	for col := first; col <= last; col++ {
		if rec, ok := BuildRecord(g, col); ok {
			days = append(days, rec)
		}
	}
	return days
}
