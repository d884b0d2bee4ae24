package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"revops/internal/classifier"
	"revops/internal/config"
	"revops/internal/feed"
	"revops/internal/gsheet"
	"revops/internal/hubspot"
	"revops/internal/reconciler"
	"revops/internal/report"
	"revops/internal/scheduler"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "revops",
		Usage: "Extract daily sales-operations metrics from Calendar, HubSpot and the daily report sheet.",
		Commands: []*cli.Command{
			extractCommand(),
			sheetCommand(),
			verifyCommand(),
			scheduleCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "Run the daily extraction: classify calendar events, count new leads, write the day's JSON.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Target date as DD/MM/YYYY. Defaults to today minus DAYS_BACK."},
			&cli.BoolFlag{Name: "update-sheet", Usage: "Write the day's automatic cells back to the sheet (best effort)."},
			&cli.BoolFlag{Name: "dry-run", Usage: "Log what would be written without writing anything."},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			date, err := targetDate(c, cfg)
			if err != nil {
				return err
			}
			return runExtract(c.Context, logger, cfg, date, c.Bool("update-sheet"), c.Bool("dry-run"))
		},
	}
}

func sheetCommand() *cli.Command {
	return &cli.Command{
		Name:  "sheet",
		Usage: "Read the full sheet and rebuild the consolidated daily series up to the target date.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Usage: "Upper bound as DD/MM/YYYY. Defaults to today minus DAYS_BACK."},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			date, err := targetDate(c, cfg)
			if err != nil {
				return err
			}
			return runSheet(c.Context, logger, cfg, date)
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Check configuration and connectivity before running any extraction.",
		Action: func(c *cli.Context) error {
			return runVerify(c.Context, newLogger())
		},
	}
}

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "Run the daily extraction unattended at SCHEDULE_TIME local time.",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "update-sheet", Usage: "Also write each day's cells back to the sheet."},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			updateSheet := c.Bool("update-sheet")
			run := func() {
				date := time.Now().In(cfg.Timezone).AddDate(0, 0, -cfg.DaysBack)
				if err := runExtract(context.Background(), logger, cfg, date, updateSheet, false); err != nil {
					logger.Error("Scheduled extraction failed", "error", err)
				}
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return scheduler.New(logger, cfg.Timezone, cfg.ScheduleTime, run).Start(ctx)
		},
	}
}

// runExtract is the daily pipeline: the calendar and CRM sources run
// independently, and a CRM failure degrades to a zero lead count instead of
// aborting the run.
func runExtract(ctx context.Context, logger *slog.Logger, cfg *config.Config, date time.Time, updateSheet, dryRun bool) error {
	log := logger.With("run_id", uuid.NewString()[:8], "date", date.Format("2006-01-02"))
	log.Info("Starting daily extraction")

	feedClient := feed.NewClient(log, cfg.FeedURL, cfg.Timezone)
	events, err := feedClient.Fetch()
	if err != nil {
		return fmt.Errorf("calendar extraction failed: %w", err)
	}

	cls := classifier.New(log, classifier.Config{
		Location:     cfg.Timezone,
		TeresaColor:  cfg.TeresaColor,
		DanielaColor: cfg.DanielaColor,
		BlueColor:    cfg.BlueColor,
		NoShowColors: cfg.NoShowColors,
		RobotPrefix:  cfg.RobotPrefix,
	})
	metrics := cls.ExtractDay(events, date.In(cfg.Timezone))

	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, cfg.Timezone)
	hs := hubspot.NewClient(log, "", cfg.HubSpotAPIKey)
	leads, err := hs.ContactsCreated(ctx, startOfDay, startOfDay.Add(24*time.Hour))
	if err != nil {
		// Partial success: the calendar metrics are still worth reporting.
		log.Warn("Lead count unavailable, continuing with zero", "error", err)
		leads = 0
	}

	cons := report.New(log, cfg.OutputDir)
	rec := cons.DailyFromLive(date, metrics, leads)

	if dryRun {
		log.Info("Dry run, nothing written",
			"leads", rec.LeadsCreated,
			"meetings_scheduled", rec.Totals.MeetingsScheduled,
			"meetings_attended", rec.Totals.MeetingsAttended)
		return nil
	}

	path, err := cons.WriteDaily(rec)
	if err != nil {
		return err
	}
	log.Info("Extraction complete", "output", path)

	if updateSheet {
		gs, err := gsheet.NewClient(ctx, log, cfg.CredentialsPath, cfg.SheetID, cfg.Worksheet)
		if err != nil {
			log.Warn("Sheet update skipped", "error", err)
			return nil
		}
		if err := gs.UpdateDay(ctx, date, metrics, leads); err != nil {
			log.Warn("Sheet update failed", "error", err)
		}
	}

	return nil
}

// runSheet rebuilds the whole historical series from the spreadsheet. An
// unreadable sheet or a sheet with no valid date column is structural and
// fails the run.
func runSheet(ctx context.Context, logger *slog.Logger, cfg *config.Config, date time.Time) error {
	gs, err := gsheet.NewClient(ctx, logger, cfg.CredentialsPath, cfg.SheetID, cfg.Worksheet)
	if err != nil {
		return err
	}

	grid, err := gs.ReadAll(ctx)
	if err != nil {
		return err
	}

	dateRow := grid.DateRow()
	if dateRow == nil {
		return fmt.Errorf("sheet has no date-label row")
	}

	last := reconciler.LastColumnOnOrBefore(dateRow, date)
	if last == reconciler.ColumnNotFound {
		return fmt.Errorf("no data column on or before %s", date.Format(reconciler.DateLayout))
	}
	first := reconciler.FirstDateColumn(dateRow)

	days := reconciler.BuildSeries(grid, first, last)
	if len(days) == 0 {
		return fmt.Errorf("no extractable data columns up to %s", date.Format(reconciler.DateLayout))
	}

	cons := report.New(logger, cfg.OutputDir)
	path, err := cons.WriteLatest(cons.Consolidate(days))
	if err != nil {
		return err
	}

	logger.Info("Series rebuilt", "output", path,
		"days", len(days), "from", days[0].Date, "to", days[len(days)-1].Date)
	return nil
}

// runVerify mirrors the pre-flight checklist: every check runs, every
// result is reported, and any failure makes the command exit non-zero.
func runVerify(ctx context.Context, logger *slog.Logger) error {
	failed := 0
	check := func(name string, err error) {
		if err != nil {
			failed++
			logger.Error("check failed", "check", name, "error", err)
			return
		}
		logger.Info("check ok", "check", name)
	}

	cfg, err := config.Load()
	check("configuration", err)
	if err != nil {
		return fmt.Errorf("configuration is incomplete, remaining checks skipped")
	}

	_, err = os.Stat(cfg.CredentialsPath)
	check("credentials file", err)

	check("calendar feed", feed.NewClient(logger, cfg.FeedURL, cfg.Timezone).Ping())
	check("hubspot api", hubspot.NewClient(logger, "", cfg.HubSpotAPIKey).Ping(ctx))

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	logger.Info("All checks passed")
	return nil
}

func targetDate(c *cli.Context, cfg *config.Config) (time.Time, error) {
	if v := c.String("date"); v != "" {
		t, err := time.ParseInLocation(reconciler.DateLayout, v, cfg.Timezone)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q, expected DD/MM/YYYY: %w", v, err)
		}
		return t, nil
	}
	return time.Now().In(cfg.Timezone).AddDate(0, 0, -cfg.DaysBack), nil
}

func newLogger() *slog.Logger {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}
