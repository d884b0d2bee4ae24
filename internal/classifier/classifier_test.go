package classifier

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revops/internal/models"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	loc, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)
	return Config{
		Location:     loc,
		TeresaColor:  "8",
		DanielaColor: "2",
		BlueColor:    "9",
		NoShowColors: []string{"6", "11"},
		RobotPrefix:  "Asesoría Inmobiliaria",
	}
}

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), testConfig(t))
}

func TestClassifySetter(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name   string
		title  string
		color  string
		setter models.Setter
		ok     bool
	}{
		{"black is Teresa regardless of title", "Reunion con cliente", "8", models.SetterTeresa, true},
		{"black with robot title is still Teresa", "Asesoría Inmobiliaria Bot", "8", models.SetterTeresa, true},
		{"green is Daniela", "Visita terreno", "2", models.SetterDaniela, true},
		{"blue with robot prefix is Robot", "Asesoría Inmobiliaria - Juan", "9", models.SetterRobot, true},
		{"robot prefix is case-sensitive", "asesoría inmobiliaria - Juan", "9", models.SetterMatias, true},
		{"blue with reunion is Matias", "Reunion venta", "9", models.SetterMatias, true},
		{"reunion match is case-insensitive", "  REUNION seguimiento ", "9", models.SetterMatias, true},
		{"ambiguous blue defaults to Matias", "Visita", "9", models.SetterMatias, true},
		{"unknown color is unresolved", "Reunion venta", "5", "", false},
		{"no-show color without setter rule is unresolved", "Visita", "6", "", false},
		{"empty color is unresolved", "Reunion venta", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setter, ok := c.ClassifySetter(tt.title, tt.color)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.setter, setter)
		})
	}
}

func TestAttendedIsOrthogonalToSetter(t *testing.T) {
	c := newTestClassifier(t)

	assert.False(t, c.Attended("6"))
	assert.False(t, c.Attended("11"))
	assert.True(t, c.Attended("8"))
	assert.True(t, c.Attended("2"))
	assert.True(t, c.Attended("9"))
	assert.True(t, c.Attended(""))
}

func TestExtractDay(t *testing.T) {
	c := newTestClassifier(t)
	loc := testConfig(t).Location
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, loc)

	events := []models.RawEvent{
		{Title: "Reunion venta", Color: "9", Start: time.Date(2026, 1, 15, 9, 0, 0, 0, loc)},
		{Title: "Asesoría Inmobiliaria Bot", Color: "9", Start: time.Date(2026, 1, 15, 10, 0, 0, 0, loc)},
		// Recolored to a no-show color: current color wins, no setter rule
		// matches, the event is dropped from all metrics.
		{Title: "Visita", Color: "6", Start: time.Date(2026, 1, 15, 11, 0, 0, 0, loc)},
	}

	metrics := c.ExtractDay(events, day)

	matias := metrics[models.SetterMatias]
	require.NotNil(t, matias)
	assert.Equal(t, 1, matias.Scheduled)
	assert.Equal(t, 1, matias.Attended)
	require.Len(t, matias.Events, 1)
	assert.Equal(t, "09:00", matias.Events[0].Time)

	robot := metrics[models.SetterRobot]
	assert.Equal(t, 1, robot.Scheduled)
	assert.Equal(t, 1, robot.Attended)

	total := 0
	for _, m := range metrics {
		total += m.Scheduled
	}
	assert.Equal(t, 2, total, "recolored event must not count for anyone")
}

func TestExtractDayNoShowCountsScheduledOnly(t *testing.T) {
	c := newTestClassifier(t)
	loc := testConfig(t).Location
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, loc)

	events := []models.RawEvent{
		{Title: "Reunion a", Color: "9", Start: time.Date(2026, 1, 15, 9, 0, 0, 0, loc)},
		{Title: "Reunion b", Color: "9", Start: time.Date(2026, 1, 15, 10, 0, 0, 0, loc)},
		{Title: "Visita", Color: "8", Start: time.Date(2026, 1, 15, 12, 0, 0, 0, loc)},
	}

	metrics := c.ExtractDay(events, day)
	for setter, m := range metrics {
		assert.LessOrEqual(t, m.Attended, m.Scheduled, "setter %s", setter)
	}
}

func TestExtractDayWindow(t *testing.T) {
	c := newTestClassifier(t)
	loc := testConfig(t).Location
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, loc)

	events := []models.RawEvent{
		// Local midnight is inside the window, all-day events land here.
		{Title: "Reunion madrugada", Color: "9", Start: time.Date(2026, 1, 15, 0, 0, 0, 0, loc), AllDay: true},
		// Day before and day after are outside.
		{Title: "Reunion ayer", Color: "9", Start: time.Date(2026, 1, 14, 23, 59, 0, 0, loc)},
		{Title: "Reunion mañana", Color: "9", Start: time.Date(2026, 1, 16, 0, 0, 0, 0, loc)},
		// Explicit offset: 13:00 UTC is 10:00 in Santiago (UTC-3).
		{Title: "Reunion remota", Color: "9", Start: time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC)},
		// Missing start time is skipped, never aborts the batch.
		{Title: "Reunion rota", Color: "9"},
	}

	metrics := c.ExtractDay(events, day)
	matias := metrics[models.SetterMatias]
	assert.Equal(t, 2, matias.Scheduled)
	require.Len(t, matias.Events, 2)
	assert.Equal(t, "00:00", matias.Events[0].Time)
	assert.Equal(t, "10:00", matias.Events[1].Time)
}
