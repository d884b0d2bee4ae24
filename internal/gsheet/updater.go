package gsheet

import (
	"context"
	"fmt"
	"strings"
	"time"

	sheets "google.golang.org/api/sheets/v4"

	"revops/internal/models"
	"revops/internal/reconciler"
)

// One-based sheet rows written back by the automatic extraction. The
// spreadsheet's manual rows (reservations, per-setter calls) are never
// touched.
const (
	writeRowDateLabel      = 2
	writeRowTotalScheduled = 3
	writeRowTotalAttended  = 4
	writeRowDaniela        = 11
	writeRowTeresa         = 13
	writeRowMatias         = 15
	writeRowRobot          = 17
	writeRowLeads          = 21
)

// UpdateDay writes one day's automatic metrics into the sheet, finding the
// date's column or appending a new one after the last label. This is a
// best-effort secondary operation; callers log failures and move on.
func (c *Client) UpdateDay(ctx context.Context, date time.Time, metrics map[models.Setter]*models.SetterMetrics, leads int) error {
	label := date.Format(reconciler.DateLayout)

	labelRange := fmt.Sprintf("'%s'!%d:%d", c.worksheet, writeRowDateLabel, writeRowDateLabel)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, labelRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to read date labels: %w", err)
	}

	var labels []string
	if len(resp.Values) > 0 {
		labels = make([]string, len(resp.Values[0]))
		for i, v := range resp.Values[0] {
			if v != nil {
				labels[i] = strings.TrimSpace(fmt.Sprint(v))
			}
		}
	}

	col := -1
	for i, l := range labels {
		if l == label {
			col = i
			break
		}
	}
	appending := col < 0
	if appending {
		col = len(labels)
	}

	totalScheduled, totalAttended := 0, 0
	for _, m := range metrics {
		totalScheduled += m.Scheduled
		totalAttended += m.Attended
	}

	scheduled := func(s models.Setter) int {
		if m, ok := metrics[s]; ok {
			return m.Scheduled
		}
		return 0
	}

	data := []*sheets.ValueRange{
		cell(c.a1Range(col, writeRowTotalScheduled), totalScheduled),
		cell(c.a1Range(col, writeRowTotalAttended), totalAttended),
		cell(c.a1Range(col, writeRowDaniela), scheduled(models.SetterDaniela)),
		cell(c.a1Range(col, writeRowTeresa), scheduled(models.SetterTeresa)),
		cell(c.a1Range(col, writeRowMatias), scheduled(models.SetterMatias)),
		cell(c.a1Range(col, writeRowRobot), scheduled(models.SetterRobot)),
		cell(c.a1Range(col, writeRowLeads), leads),
	}
	if appending {
		data = append([]*sheets.ValueRange{{
			Range:  c.a1Range(col, writeRowDateLabel),
			Values: [][]interface{}{{label}},
		}}, data...)
	}

	req := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}
	if _, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to update sheet: %w", err)
	}

	c.logger.Info("sheet updated", "date", label, "column", col, "appended", appending)
	return nil
}

func cell(a1 string, v int) *sheets.ValueRange {
	return &sheets.ValueRange{
		Range:  a1,
		Values: [][]interface{}{{v}},
	}
}
