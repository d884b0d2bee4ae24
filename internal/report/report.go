// Package report consolidates the independent pipeline outputs — calendar
// classification, CRM lead count, spreadsheet series — into the JSON
// artifacts the dashboard reads.
package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"revops/internal/models"
)

const latestFile = "latest.json"

// Consolidator merges pipeline outputs and writes the output artifacts.
type Consolidator struct {
	logger    *slog.Logger
	outputDir string
	now       func() time.Time
}

// New creates a Consolidator writing under outputDir.
func New(logger *slog.Logger, outputDir string) *Consolidator {
	return &Consolidator{
		logger:    logger,
		outputDir: outputDir,
		now:       time.Now,
	}
}

// DailyFromLive builds an ad-hoc DailyRecord for a same-day run from the
// calendar classifier's per-setter metrics and the external lead count.
// Merge is field-wise: sheet-only fields stay zero, nothing is dropped.
// The calendar has no call data, so per-setter calls stay zero too.
func (c *Consolidator) DailyFromLive(date time.Time, metrics map[models.Setter]*models.SetterMetrics, leads int) models.DailyRecord {
	rec := models.NewDailyRecord(date.Format("2006-01-02"))
	rec.LeadsCreated = leads

	for _, s := range models.AllSetters() {
		m, ok := metrics[s]
		if !ok {
			continue
		}
		rec.Setters[s] = models.SetterDay{
			Scheduled: m.Scheduled,
			Attended:  m.Attended,
		}
		rec.Totals.MeetingsScheduled += m.Scheduled
		rec.Totals.MeetingsAttended += m.Attended
	}

	return rec
}

// Consolidate wraps a chronological day series into the output artifact.
func (c *Consolidator) Consolidate(days []models.DailyRecord) models.Report {
	rep := models.Report{
		GeneratedAt: c.now().Format("2006-01-02 15:04:05"),
		DayCount:    len(days),
		Days:        days,
	}
	if len(days) > 0 {
		rep.LastDataDate = days[len(days)-1].Date
	}
	return rep
}

// WriteLatest serializes the report to <outputDir>/latest.json.
func (c *Consolidator) WriteLatest(rep models.Report) (string, error) {
	path := filepath.Join(c.outputDir, latestFile)
	if err := c.writeJSON(path, rep); err != nil {
		return "", err
	}
	c.logger.Info("report written", "path", path,
		"days", rep.DayCount, "last_data_date", rep.LastDataDate)
	return path, nil
}

// WriteDaily serializes one ad-hoc record to
// <outputDir>/extracted_YYYYMMDD.json.
func (c *Consolidator) WriteDaily(rec models.DailyRecord) (string, error) {
	date, err := time.Parse("2006-01-02", rec.Date)
	if err != nil {
		return "", fmt.Errorf("record has invalid date %q: %w", rec.Date, err)
	}
	path := filepath.Join(c.outputDir, fmt.Sprintf("extracted_%s.json", date.Format("20060102")))
	if err := c.writeJSON(path, rec); err != nil {
		return "", err
	}
	c.logger.Info("daily extraction written", "path", path, "date", rec.Date)
	return path, nil
}

func (c *Consolidator) writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(c.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
