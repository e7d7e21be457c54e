package calendar

import (
	"fmt"
	"time"

	"github.com/miguelgargurevich/dashboardia/internal/model"
)

// ClassifyUrgency computes the display-priority state of one event relative
// to now. It never mutates the underlying record; the result feeds the
// upcoming-events feed and cell highlighting only.
func ClassifyUrgency(ev model.EventRecord, now time.Time) model.Urgency {
	start := ev.Start.In(now.Location())

	var u model.Urgency
	u.IsToday = sameDay(start, now)
	dayDiff := calendarDays(now, start)
	u.IsSoon = dayDiff >= 0 && dayDiff <= 2
	u.IsWeekend = start.Weekday() == time.Saturday || start.Weekday() == time.Sunday
	u.Highlight = u.IsToday || u.IsSoon || u.IsWeekend
	u.TimeUntil = timeUntil(start, now)
	return u
}

// timeUntil renders a human "time until" string. Precedence is strictly
// day-check, then hour-check, then default; units are never combined.
func timeUntil(start, now time.Time) string {
	if start.Before(now) {
		return "in progress"
	}

	diff := start.Sub(now)
	if days := int(diff.Hours() / 24); days >= 1 {
		if days == 1 {
			return "in 1 day"
		}
		return fmt.Sprintf("in %d days", days)
	}
	if hours := int(diff.Hours()); hours >= 1 {
		if hours == 1 {
			return "in 1 hour"
		}
		return fmt.Sprintf("in %d hours", hours)
	}
	return "very soon"
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// calendarDays returns the signed number of calendar-day boundaries between
// from and to (0 when both fall on the same day).
func calendarDays(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
