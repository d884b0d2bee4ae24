// Package scheduler runs the daily extraction unattended, replacing the CI
// cron the pipeline originally lived under.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"revops/internal/config"
)

// Scheduler triggers a job once a day at a fixed local time.
type Scheduler struct {
	logger *slog.Logger
	cron   *cron.Cron
	at     string
	run    func()
}

// New creates a scheduler firing at the HH:MM clock time in loc.
func New(logger *slog.Logger, loc *time.Location, at string, run func()) *Scheduler {
	return &Scheduler{
		logger: logger,
		cron:   cron.New(cron.WithLocation(loc)),
		at:     at,
		run:    run,
	}
}

// Start registers the daily job and blocks until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	hour, minute, err := config.ParseClock(s.at)
	if err != nil {
		return fmt.Errorf("invalid schedule time: %w", err)
	}

	spec := fmt.Sprintf("%d %d * * *", minute, hour)
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return fmt.Errorf("failed to register daily job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "at", s.at)

	<-ctx.Done()
	s.Stop()
	return nil
}

// Stop halts the cron loop, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
}
