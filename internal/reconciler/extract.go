package reconciler

import (
	"math"
	"strconv"
	"strings"
)

// ParseIntCell parses a plain integer cell. Blank or unparseable text is 0,
// never an error: a missing metric is a zero metric.
func ParseIntCell(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseCurrencyCell parses a CLP amount such as "$1.234.567". Dots are
// thousands marks in this locale, so all punctuation is stripped before the
// integer parse.
func ParseCurrencyCell(s string) int {
	s = strings.NewReplacer("$", "", ".", "", ",", "", " ", "").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// ParseDecimalCell parses a comma-decimal cell such as "12,5". Dots are
// thousands marks and are dropped; the comma becomes the decimal point. The
// result is rounded to 3 decimal places.
func ParseDecimalCell(s string) float64 {
	s = strings.NewReplacer("$", "", ".", "", ",", ".", " ", "").Replace(s)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return round3(f)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
