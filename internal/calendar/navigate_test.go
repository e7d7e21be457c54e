package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftKeyYearRollover(t *testing.T) {
	next, err := ShiftKey("2024-12", +1)
	require.NoError(t, err)
	assert.Equal(t, "2025-01", next)

	prev, err := ShiftKey("2024-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2023-12", prev)
}

func TestShiftWithinYear(t *testing.T) {
	ym := YearMonth{Year: 2024, Month: 5} // June
	assert.Equal(t, YearMonth{Year: 2024, Month: 6}, Shift(ym, +1))
	assert.Equal(t, YearMonth{Year: 2024, Month: 4}, Shift(ym, -1))
}

func TestShiftRoundTrip(t *testing.T) {
	ym := YearMonth{Year: 2024, Month: 0}
	for i := 0; i < 24; i++ {
		ym = Shift(ym, +1)
	}
	assert.Equal(t, YearMonth{Year: 2026, Month: 0}, ym)
	for i := 0; i < 24; i++ {
		ym = Shift(ym, -1)
	}
	assert.Equal(t, YearMonth{Year: 2024, Month: 0}, ym)
}

func TestParseYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2024-06")
	require.NoError(t, err)
	assert.Equal(t, 2024, ym.Year)
	assert.Equal(t, 5, ym.Month)
	assert.Equal(t, "2024-06", ym.String())

	_, err = ParseYearMonth("junio 2024")
	assert.Error(t, err)
	_, err = ParseYearMonth("2024-13")
	assert.Error(t, err)
}

func TestToday(t *testing.T) {
	year, month, day := Today()
	now := time.Now()

	// Tolerate a midnight boundary between the two reads.
	matchesNow := year == now.Year() && month == int(now.Month())-1 && day == now.Day()
	prev := now.AddDate(0, 0, -1)
	matchesPrev := year == prev.Year() && month == int(prev.Month())-1 && day == prev.Day()
	assert.True(t, matchesNow || matchesPrev)

	assert.GreaterOrEqual(t, month, 0)
	assert.LessOrEqual(t, month, 11)
}
