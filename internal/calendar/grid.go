package calendar

import (
	"time"

	"github.com/miguelgargurevich/dashboardia/internal/model"
)

// BuildGrid produces the Monday-first month layout for the given year and
// zero-based month (0 = January). Any integer year and month in 0..11 is
// valid input; there are no error cases.
func BuildGrid(year, month int) model.CalendarGrid {
	// Day 0 of the next month is the last day of this one, which handles
	// leap years for free.
	daysInMonth := time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()

	// Native weekday of day 1 (0=Sunday..6=Saturday) remapped to a
	// Monday-first offset.
	native := int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
	offset := native - 1
	if native == 0 {
		offset = 6
	}

	days := make([]int, daysInMonth)
	for i := range days {
		days[i] = i + 1
	}

	return model.CalendarGrid{
		Year:          year,
		Month:         month,
		DaysInMonth:   daysInMonth,
		LeadingBlanks: offset,
		Days:          days,
	}
}
