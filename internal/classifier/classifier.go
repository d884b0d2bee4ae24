// Package classifier assigns raw calendar events to setters and attendance
// outcomes. Setter assignment and attendance are orthogonal axes over the
// same color value: a rule decides who booked the meeting, the no-show set
// decides whether it happened.
package classifier

import (
	"log/slog"
	"strings"
	"time"

	"revops/internal/models"
)

// Config is the classification surface: color codes, title patterns and the
// local timezone. It is passed in at construction; the classifier reads no
// ambient state.
type Config struct {
	Location     *time.Location
	TeresaColor  string
	DanielaColor string
	BlueColor    string
	NoShowColors []string
	RobotPrefix  string
}

// rule is one predicate→setter entry. Rules are evaluated in order,
// first match wins.
type rule struct {
	name    string
	matches func(title, color string) bool
	setter  models.Setter
}

// Classifier classifies events for a single configured calendar.
type Classifier struct {
	logger *slog.Logger
	loc    *time.Location
	rules  []rule
	noShow map[string]struct{}
}

// New builds the ordered rule chain from the configuration.
func New(logger *slog.Logger, cfg Config) *Classifier {
	noShow := make(map[string]struct{}, len(cfg.NoShowColors))
	for _, c := range cfg.NoShowColors {
		noShow[c] = struct{}{}
	}

	rules := []rule{
		{
			name:    "black→Teresa",
			matches: func(_, color string) bool { return color == cfg.TeresaColor },
			setter:  models.SetterTeresa,
		},
		{
			name:    "green→Daniela",
			matches: func(_, color string) bool { return color == cfg.DanielaColor },
			setter:  models.SetterDaniela,
		},
		{
			// Robot bookings carry a fixed title prefix; the prefix match is
			// case-sensitive because the booking bot always writes it the
			// same way.
			name: "blue+robot-prefix→Robot",
			matches: func(title, color string) bool {
				return color == cfg.BlueColor && strings.HasPrefix(title, cfg.RobotPrefix)
			},
			setter: models.SetterRobot,
		},
		{
			name: "blue+reunion→Matias",
			matches: func(title, color string) bool {
				return color == cfg.BlueColor &&
					strings.Contains(strings.ToLower(strings.TrimSpace(title)), "reunion")
			},
			setter: models.SetterMatias,
		},
		{
			// Ambiguous blue events default to Matias.
			name:    "blue→Matias",
			matches: func(_, color string) bool { return color == cfg.BlueColor },
			setter:  models.SetterMatias,
		},
	}

	return &Classifier{
		logger: logger,
		loc:    cfg.Location,
		rules:  rules,
		noShow: noShow,
	}
}

// ClassifySetter runs the rule chain. The second return is false when no
// rule matches; such events are unresolved and must be excluded from all
// metrics rather than merged into a default bucket.
func (c *Classifier) ClassifySetter(title, color string) (models.Setter, bool) {
	for _, r := range c.rules {
		if r.matches(title, color) {
			return r.setter, true
		}
	}
	return "", false
}

// Attended reports whether an event's current color marks it as held. A
// no-show color is applied after the fact when a meeting is moved or
// cancelled, regardless of which setter the original color pointed at.
func (c *Classifier) Attended(color string) bool {
	_, noShow := c.noShow[color]
	return !noShow
}

// ExtractDay classifies all events whose localized start falls on the given
// civil date and aggregates per-setter counts. Malformed events are skipped
// with a diagnostic; they never abort the batch.
func (c *Classifier) ExtractDay(events []models.RawEvent, day time.Time) map[models.Setter]*models.SetterMetrics {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, c.loc)
	endOfDay := startOfDay.Add(24 * time.Hour)

	metrics := make(map[models.Setter]*models.SetterMetrics, len(models.AllSetters()))
	for _, s := range models.AllSetters() {
		metrics[s] = &models.SetterMetrics{}
	}

	c.logger.Info("classifying events", "date", startOfDay.Format("2006-01-02"), "total", len(events))

	for _, ev := range events {
		if ev.Start.IsZero() {
			c.logger.Debug("skipping event without start time", "title", ev.Title)
			continue
		}

		start := ev.Start.In(c.loc)
		if start.Before(startOfDay) || !start.Before(endOfDay) {
			continue
		}

		setter, ok := c.ClassifySetter(ev.Title, ev.Color)
		if !ok {
			c.logger.Warn("event without identified setter, dropping",
				"title", ev.Title, "color", ev.Color)
			continue
		}

		attended := c.Attended(ev.Color)
		m := metrics[setter]
		m.Scheduled++
		if attended {
			m.Attended++
		}
		m.Events = append(m.Events, models.ClassifiedEvent{
			Title:    ev.Title,
			Time:     start.Format("15:04"),
			Color:    ev.Color,
			Attended: attended,
		})
	}

	for _, s := range models.AllSetters() {
		m := metrics[s]
		if m.Scheduled == 0 {
			continue
		}
		c.logger.Info("setter summary", "setter", s,
			"scheduled", m.Scheduled, "attended", m.Attended,
			"show_up_rate", m.ShowUpRate())
	}

	return metrics
}
