package calendar

import (
	"time"

	appLog "github.com/miguelgargurevich/dashboardia/internal/log"
	"github.com/miguelgargurevich/dashboardia/internal/model"
)

// DateKey is the bucket key layout, an ISO calendar date.
const DateKey = "2006-01-02"

// Aggregate merges notes, one-off events and (when showRecurring is true)
// recurring events into a mapping from calendar day to a content bucket.
//
// Bucket keys: a note's stored date is used verbatim (day granularity, no
// timezone shift); an event's key is the calendar date of its start in loc
// (nil means time.Local). Within a bucket, order is first-seen: notes in
// source order, then one-off events, then recurring events. Recurring events
// are a strict addition and never displace a one-off event on the same day.
//
// Records whose date cannot be parsed are dropped from aggregation. The
// function is pure: the same inputs always yield identical buckets.
func Aggregate(
	notes []model.NoteRecord,
	oneOff []model.ClassifiedEvent,
	recurring []model.ClassifiedEvent,
	showRecurring bool,
	loc *time.Location,
) map[string]model.DayBucket {
	if loc == nil {
		loc = time.Local
	}

	buckets := make(map[string]*model.DayBucket)

	at := func(key string) *model.DayBucket {
		b, ok := buckets[key]
		if !ok {
			b = &model.DayBucket{Date: key}
			buckets[key] = b
		}
		return b
	}

	for _, n := range notes {
		if _, err := time.Parse(DateKey, n.Date); err != nil {
			appLog.Debug("aggregate: dropping note with unparseable date", "id", n.ID, "date", n.Date)
			continue
		}
		b := at(n.Date)
		b.Notes = append(b.Notes, n)
	}

	addEvent := func(ev model.ClassifiedEvent) {
		if ev.Start.IsZero() {
			appLog.Debug("aggregate: dropping event with no start", "id", ev.ID)
			return
		}
		key := ev.Start.In(loc).Format(DateKey)
		b := at(key)
		b.Events = append(b.Events, ev)
	}

	for _, ev := range oneOff {
		addEvent(ev)
	}
	if showRecurring {
		for _, ev := range recurring {
			addEvent(ev)
		}
	}

	out := make(map[string]model.DayBucket, len(buckets))
	for key, b := range buckets {
		b.NotesCount = len(b.Notes)
		b.EventsCount = len(b.Events)
		b.HasContent = b.NotesCount > 0 || b.EventsCount > 0
		out[key] = *b
	}
	return out
}

// BucketFor looks up one day. A day with no bucket yields an empty, valid
// bucket rather than a failure.
func BucketFor(buckets map[string]model.DayBucket, date string) model.DayBucket {
	if b, ok := buckets[date]; ok {
		return b
	}
	return model.DayBucket{Date: date}
}
