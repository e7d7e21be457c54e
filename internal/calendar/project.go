package calendar

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/miguelgargurevich/dashboardia/internal/model"
)

// defaultMaxProjected caps recurrence projection so a bad rule can never
// flood the feed or the ICS export.
const defaultMaxProjected = 24

// PatternRule builds the recurrence rule for an inferred pattern label,
// anchored at dtstart. The generic "Recurring" label carries no cadence and
// projects nothing; ok is false for it and for unknown labels.
func PatternRule(pattern string, dtstart time.Time) (*rrule.RRule, bool) {
	opt := rrule.ROption{Dtstart: dtstart}

	switch pattern {
	case PatternDaily:
		opt.Freq = rrule.DAILY
	case PatternWeekly:
		opt.Freq = rrule.WEEKLY
	case PatternMonthly:
		opt.Freq = rrule.MONTHLY
	case PatternQuarterly:
		opt.Freq = rrule.MONTHLY
		opt.Interval = 3
	case PatternYearly:
		opt.Freq = rrule.YEARLY
	case PatternMonday:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{rrule.MO}
	case Pattern15th:
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{15}
	default:
		return nil, false
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, false
	}
	return r, true
}

// PatternRuleValue returns the RFC 5545 RRULE value for a pattern label,
// suitable for an ICS export.
func PatternRuleValue(pattern string) (string, bool) {
	switch pattern {
	case PatternDaily:
		return "FREQ=DAILY", true
	case PatternWeekly:
		return "FREQ=WEEKLY", true
	case PatternMonthly:
		return "FREQ=MONTHLY", true
	case PatternQuarterly:
		return "FREQ=MONTHLY;INTERVAL=3", true
	case PatternYearly:
		return "FREQ=YEARLY", true
	case PatternMonday:
		return "FREQ=WEEKLY;BYDAY=MO", true
	case Pattern15th:
		return "FREQ=MONTHLY;BYMONTHDAY=15", true
	default:
		return "", false
	}
}

// NextOccurrence projects the first occurrence of a recurring event at or
// after the given instant. ok is false when the event is not recurring, its
// pattern carries no cadence, or the rule yields nothing.
func NextOccurrence(ev model.ClassifiedEvent, after time.Time) (time.Time, bool) {
	if !ev.IsRecurring || ev.Start.IsZero() {
		return time.Time{}, false
	}
	r, ok := PatternRule(ev.RecurrencePattern, ev.Start)
	if !ok {
		return time.Time{}, false
	}
	next := r.After(after, true)
	if next.IsZero() {
		return time.Time{}, false
	}
	return next, true
}

// ProjectOccurrences expands up to count occurrences of a recurring event
// within [from, to]. Count is capped at defaultMaxProjected.
func ProjectOccurrences(ev model.ClassifiedEvent, from, to time.Time, count int) []time.Time {
	if count <= 0 || count > defaultMaxProjected {
		count = defaultMaxProjected
	}
	if !ev.IsRecurring || ev.Start.IsZero() {
		return nil
	}
	r, ok := PatternRule(ev.RecurrencePattern, ev.Start)
	if !ok {
		return nil
	}
	occ := r.Between(from, to, true)
	if len(occ) > count {
		occ = occ[:count]
	}
	return occ
}
