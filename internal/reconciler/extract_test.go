package reconciler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntCell(t *testing.T) {
	assert.Equal(t, 42, ParseIntCell("42"))
	assert.Equal(t, 42, ParseIntCell("  42 "))
	assert.Equal(t, 0, ParseIntCell(""))
	assert.Equal(t, 0, ParseIntCell("   "))
	assert.Equal(t, 0, ParseIntCell("n/a"))
	assert.Equal(t, -3, ParseIntCell("-3"))
}

func TestParseCurrencyCell(t *testing.T) {
	assert.Equal(t, 1234567, ParseCurrencyCell("$1.234.567"))
	assert.Equal(t, 1234567, ParseCurrencyCell("$1,234,567"))
	assert.Equal(t, 1234567, ParseCurrencyCell("1.234.567"))
	assert.Equal(t, 500, ParseCurrencyCell(" $500 "))
	assert.Equal(t, 0, ParseCurrencyCell(""))
	assert.Equal(t, 0, ParseCurrencyCell("$"))
	assert.Equal(t, 0, ParseCurrencyCell("pendiente"))
}

func TestParseDecimalCell(t *testing.T) {
	assert.InDelta(t, 12.5, ParseDecimalCell("12,5"), 1e-9)
	assert.InDelta(t, 1234.5, ParseDecimalCell("$1.234,5"), 1e-9)
	assert.InDelta(t, 0, ParseDecimalCell(""), 1e-9)
	assert.InDelta(t, 0, ParseDecimalCell("no hay"), 1e-9)
	// Rounded to 3 decimal places.
	assert.InDelta(t, 0.333, ParseDecimalCell("0,33333"), 1e-9)
	// Dots are thousands marks in this locale, never decimal points.
	assert.InDelta(t, 15, ParseDecimalCell("1.5"), 1e-9)
}
