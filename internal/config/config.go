package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults match the production "ACT comercial" setup.
const (
	defaultWorksheet       = "ACT comercial"
	defaultCredentialsPath = "config/google_credentials.json"
	defaultTimezone        = "America/Santiago"
	defaultOutputDir       = "data"
	defaultScheduleTime    = "08:00"
	defaultRobotPrefix     = "Asesoría Inmobiliaria"
)

// placeholders are credential values that mean "not configured yet".
var placeholders = []string{
	"TU_API_KEY_AQUI",
	"YOUR_API_KEY_HERE",
	"REPLACE_ME",
	"XXX",
	"tu_api_key_aqui",
}

// Config is the immutable configuration for one run. It is loaded once in
// main and passed into constructors; nothing reads the environment after
// Load returns.
type Config struct {
	FeedURL          string
	HubSpotAPIKey    string
	HubSpotAccountID string

	SheetID         string
	Worksheet       string
	CredentialsPath string

	Timezone  *time.Location
	DaysBack  int
	OutputDir string

	// Classification surface.
	TeresaColor  string
	DanielaColor string
	BlueColor    string
	NoShowColors []string
	RobotPrefix  string

	ScheduleTime string // HH:MM, local to Timezone
}

// Load reads configuration from the environment. Structural problems
// (missing required values, placeholder credentials, bad timezone) are
// returned as errors before any network call can happen.
func Load() (*Config, error) {
	cfg := &Config{
		FeedURL:          os.Getenv("ICAL_FEED_URL"),
		HubSpotAPIKey:    os.Getenv("HUBSPOT_API_KEY"),
		HubSpotAccountID: os.Getenv("HUBSPOT_ACCOUNT_ID"),
		SheetID:          os.Getenv("SHEET_ID"),
		Worksheet:        envOr("WORKSHEET_NAME", defaultWorksheet),
		CredentialsPath:  envOr("GOOGLE_CREDENTIALS_PATH", defaultCredentialsPath),
		OutputDir:        envOr("OUTPUT_DIR", defaultOutputDir),
		TeresaColor:      envOr("COLOR_TERESA", "8"),
		DanielaColor:     envOr("COLOR_DANIELA", "2"),
		BlueColor:        envOr("COLOR_BLUE", "9"),
		RobotPrefix:      envOr("ROBOT_TITLE_PREFIX", defaultRobotPrefix),
		ScheduleTime:     envOr("SCHEDULE_TIME", defaultScheduleTime),
	}

	if err := ValidateURL(cfg.FeedURL, "ICAL_FEED_URL"); err != nil {
		return nil, err
	}
	if err := ValidateAPIKey(cfg.HubSpotAPIKey, "HUBSPOT_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.SheetID == "" {
		return nil, fmt.Errorf("SHEET_ID is required")
	}

	tzName := envOr("TIMEZONE", defaultTimezone)
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", tzName, err)
	}
	cfg.Timezone = tz

	cfg.DaysBack = 1
	if v := os.Getenv("DAYS_BACK"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("DAYS_BACK must be a non-negative integer, got %q", v)
		}
		cfg.DaysBack = n
	}

	noShow := envOr("NO_SHOW_COLORS", "6,11")
	for _, c := range strings.Split(noShow, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cfg.NoShowColors = append(cfg.NoShowColors, c)
		}
	}

	if _, _, err := ParseClock(cfg.ScheduleTime); err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_TIME: %w", err)
	}

	return cfg, nil
}

// ValidateAPIKey rejects empty keys and known placeholder values so a
// half-configured deployment fails before it ever talks to the network.
func ValidateAPIKey(key, name string) error {
	if key == "" {
		return fmt.Errorf("%s is empty", name)
	}
	for _, p := range placeholders {
		if key == p {
			return fmt.Errorf("%s is still set to the placeholder %q", name, p)
		}
	}
	return nil
}

// ValidateURL checks that a URL is present and uses an http(s) scheme.
func ValidateURL(u, name string) error {
	if u == "" {
		return fmt.Errorf("%s is empty", name)
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("%s must start with http:// or https://, got %q", name, u)
	}
	return nil
}

// ParseClock splits an HH:MM string into hour and minute.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected HH:MM, got %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("bad hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("bad minute in %q", s)
	}
	return hour, minute, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
