package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/miguelgargurevich/dashboardia/internal/model"
)

// Monday, so +3 days stays clear of a weekend.
var urgencyNow = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

func urgencyEvent(start time.Time) model.EventRecord {
	return model.EventRecord{ID: "e", Title: "Demo", Start: start}
}

func TestClassifyUrgencyStartingNow(t *testing.T) {
	u := ClassifyUrgency(urgencyEvent(urgencyNow), urgencyNow)

	assert.True(t, u.IsToday)
	assert.True(t, u.IsSoon)
	assert.True(t, u.Highlight)
	assert.Equal(t, "very soon", u.TimeUntil)
}

func TestClassifyUrgencyThreeDaysOut(t *testing.T) {
	u := ClassifyUrgency(urgencyEvent(urgencyNow.AddDate(0, 0, 3)), urgencyNow)

	assert.False(t, u.IsToday)
	assert.False(t, u.IsSoon) // day diff 3 is outside [0, 2]
	assert.False(t, u.IsWeekend)
	assert.False(t, u.Highlight)
	assert.Equal(t, "in 3 days", u.TimeUntil)
}

func TestClassifyUrgencyPastEvent(t *testing.T) {
	u := ClassifyUrgency(urgencyEvent(urgencyNow.Add(-2*time.Hour)), urgencyNow)

	assert.True(t, u.IsToday)
	assert.Equal(t, "in progress", u.TimeUntil)
}

func TestClassifyUrgencyHours(t *testing.T) {
	// 90 minutes out: hour precision, never combined with minutes.
	u := ClassifyUrgency(urgencyEvent(urgencyNow.Add(90*time.Minute)), urgencyNow)
	assert.Equal(t, "in 1 hour", u.TimeUntil)
	assert.True(t, u.IsToday)
	assert.True(t, u.IsSoon)

	u = ClassifyUrgency(urgencyEvent(urgencyNow.Add(5*time.Hour)), urgencyNow)
	assert.Equal(t, "in 5 hours", u.TimeUntil)
}

func TestClassifyUrgencyDayPrecedesHours(t *testing.T) {
	// 26h out is "in 1 day", not "in 26 hours".
	u := ClassifyUrgency(urgencyEvent(urgencyNow.Add(26*time.Hour)), urgencyNow)
	assert.Equal(t, "in 1 day", u.TimeUntil)
	assert.True(t, u.IsSoon)
}

func TestClassifyUrgencyWeekend(t *testing.T) {
	// Saturday 2024-06-08: weekend alone is enough to highlight.
	saturday := time.Date(2024, 6, 8, 9, 0, 0, 0, time.UTC)
	u := ClassifyUrgency(urgencyEvent(saturday), urgencyNow)

	assert.True(t, u.IsWeekend)
	assert.False(t, u.IsToday)
	assert.False(t, u.IsSoon)
	assert.True(t, u.Highlight)
	assert.Equal(t, "in 4 days", u.TimeUntil)
}

func TestClassifyUrgencySoonWindow(t *testing.T) {
	tests := []struct {
		days int
		want bool
	}{
		{-1, false},
		{0, true},
		{1, true},
		{2, true},
		{3, false},
	}
	for _, tt := range tests {
		u := ClassifyUrgency(urgencyEvent(urgencyNow.AddDate(0, 0, tt.days)), urgencyNow)
		assert.Equal(t, tt.want, u.IsSoon, "offset %d days", tt.days)
	}
}
