package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelgargurevich/dashboardia/internal/model"
)

func TestUpcomingFiltersAndRanks(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC) // Monday

	events := []model.ClassifiedEvent{
		mkEvent("past", "Cierre anterior", now.AddDate(0, 0, -5), false),
		mkEvent("far", "Planificación", now.AddDate(0, 0, 10), false), // Thursday, no highlight
		mkEvent("tomorrow", "Demo", now.AddDate(0, 0, 1), false),
		mkEvent("today", "Entrevista", now.Add(2*time.Hour), false),
	}

	feed := Upcoming(events, now, 0)

	require.Len(t, feed, 3) // past one-off excluded
	// Highlighted entries first, then by start time.
	assert.Equal(t, "today", feed[0].Event.ID)
	assert.Equal(t, "tomorrow", feed[1].Event.ID)
	assert.Equal(t, "far", feed[2].Event.ID)

	assert.True(t, feed[0].Urgency.IsToday)
	assert.Equal(t, "in 2 hours", feed[0].Urgency.TimeUntil)
}

func TestUpcomingLimit(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	var events []model.ClassifiedEvent
	for i := 0; i < 8; i++ {
		events = append(events, mkEvent("e", "Sesión", now.AddDate(0, 0, i+3), false))
	}

	feed := Upcoming(events, now, 5)
	assert.Len(t, feed, 5)
}

func TestUpcomingProjectsPastRecurring(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	weekly := mkEvent("w", "Reunión semanal", time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC), true)
	weekly.RecurrencePattern = PatternWeekly

	feed := Upcoming([]model.ClassifiedEvent{weekly}, now, 0)

	require.Len(t, feed, 1)
	// Anchored Monday 2024-05-06 09:00, the next weekly occurrence at or
	// after now is Monday 2024-06-10 09:00 (today's 09:00 already passed).
	assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), feed[0].Event.Start)
	assert.NotEqual(t, "in progress", feed[0].Urgency.TimeUntil)
}

func TestUpcomingPastGenericRecurringExcluded(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	// Generic "Recurring" carries no cadence, so a past anchor cannot be
	// projected and the event drops out of the feed.
	generic := mkEvent("g", "Mantenimiento general", now.AddDate(0, 0, -10), true)
	generic.RecurrencePattern = PatternGeneric

	feed := Upcoming([]model.ClassifiedEvent{generic}, now, 0)
	assert.Empty(t, feed)
}

func TestUpcomingNeverMutatesInput(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	anchor := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

	weekly := mkEvent("w", "Reunión semanal", anchor, true)
	weekly.RecurrencePattern = PatternWeekly
	events := []model.ClassifiedEvent{weekly}

	_ = Upcoming(events, now, 0)
	assert.Equal(t, anchor, events[0].Start)
}
