package calendar

import (
	"sort"
	"time"

	"github.com/miguelgargurevich/dashboardia/internal/model"
)

// Upcoming builds the ranked upcoming-events feed: events at or after
// today's date, annotated with urgency, highlighted entries first, then by
// start time, capped at limit (limit <= 0 means no cap).
//
// A recurring event whose anchor start has already passed is projected to
// its next occurrence so the feed keeps showing it with a meaningful
// time-until; the source record is never mutated.
func Upcoming(events []model.ClassifiedEvent, now time.Time, limit int) []model.UpcomingEvent {
	out := make([]model.UpcomingEvent, 0, len(events))

	for _, ev := range events {
		if ev.Start.IsZero() {
			continue
		}

		if ev.IsRecurring && calendarDays(now, ev.Start.In(now.Location())) < 0 {
			if next, ok := NextOccurrence(ev, now); ok {
				ev.Start = next
			}
		}

		// Keep today and later only.
		if calendarDays(now, ev.Start.In(now.Location())) < 0 {
			continue
		}

		out = append(out, model.UpcomingEvent{
			Event:   ev,
			Urgency: ClassifyUrgency(ev.EventRecord, now),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Urgency.Highlight != out[j].Urgency.Highlight {
			return out[i].Urgency.Highlight
		}
		return out[i].Event.Start.Before(out[j].Event.Start)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
