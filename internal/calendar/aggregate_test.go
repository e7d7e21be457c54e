package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miguelgargurevich/dashboardia/internal/model"
)

func mkEvent(id, title string, start time.Time, recurring bool) model.ClassifiedEvent {
	return model.ClassifiedEvent{
		EventRecord: model.EventRecord{ID: id, Title: title, Start: start},
		IsRecurring: recurring,
	}
}

func TestAggregateBucketsByDay(t *testing.T) {
	notes := []model.NoteRecord{
		{ID: "n1", Date: "2024-06-07", Title: "Incidente red"},
		{ID: "n2", Date: "2024-06-10", Title: "Acta reunión"},
	}
	oneOff := []model.ClassifiedEvent{
		mkEvent("e1", "Demo cliente", time.Date(2024, 6, 7, 9, 0, 0, 0, time.UTC), false),
	}
	recurring := []model.ClassifiedEvent{
		mkEvent("e2", "Mantenimiento mensual", time.Date(2024, 6, 7, 15, 0, 0, 0, time.UTC), true),
	}

	buckets := Aggregate(notes, oneOff, recurring, true, time.UTC)

	require.Len(t, buckets, 2)

	b := BucketFor(buckets, "2024-06-07")
	assert.Equal(t, 1, b.NotesCount)
	assert.Equal(t, 2, b.EventsCount)
	assert.True(t, b.HasContent)

	// Order within a bucket: notes first, then one-off, then recurring.
	assert.Equal(t, "n1", b.Notes[0].ID)
	assert.Equal(t, "e1", b.Events[0].ID)
	assert.Equal(t, "e2", b.Events[1].ID)

	b = BucketFor(buckets, "2024-06-10")
	assert.Equal(t, 1, b.NotesCount)
	assert.Equal(t, 0, b.EventsCount)
	assert.True(t, b.HasContent)
}

func TestAggregateCountConservation(t *testing.T) {
	notes := []model.NoteRecord{
		{ID: "n1", Date: "2024-06-01"},
		{ID: "n2", Date: "2024-06-01"},
		{ID: "n3", Date: "2024-06-15"},
	}
	oneOff := []model.ClassifiedEvent{
		mkEvent("e1", "a", time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), false),
		mkEvent("e2", "b", time.Date(2024, 6, 20, 8, 0, 0, 0, time.UTC), false),
	}
	recurring := []model.ClassifiedEvent{
		mkEvent("e3", "c", time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC), true),
	}

	buckets := Aggregate(notes, oneOff, recurring, true, time.UTC)

	gotNotes, gotEvents := 0, 0
	for _, b := range buckets {
		gotNotes += b.NotesCount
		gotEvents += b.EventsCount
	}
	assert.Equal(t, len(notes), gotNotes)
	assert.Equal(t, len(oneOff)+len(recurring), gotEvents)
}

func TestAggregateRecurringToggle(t *testing.T) {
	notes := []model.NoteRecord{{ID: "n1", Date: "2024-06-15"}}
	oneOff := []model.ClassifiedEvent{
		mkEvent("e1", "a", time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC), false),
	}
	recurring := []model.ClassifiedEvent{
		mkEvent("e2", "b", time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC), true),
	}

	with := Aggregate(notes, oneOff, recurring, true, time.UTC)
	without := Aggregate(notes, oneOff, recurring, false, time.UTC)

	assert.Equal(t, 2, BucketFor(with, "2024-06-15").EventsCount)
	assert.Equal(t, 1, BucketFor(without, "2024-06-15").EventsCount)

	// Toggling recurring off never touches notes.
	assert.Equal(t, 1, BucketFor(with, "2024-06-15").NotesCount)
	assert.Equal(t, 1, BucketFor(without, "2024-06-15").NotesCount)
}

func TestAggregateDropsUnparseableDates(t *testing.T) {
	notes := []model.NoteRecord{
		{ID: "bad", Date: "07/06/2024"},
		{ID: "good", Date: "2024-06-07"},
	}
	oneOff := []model.ClassifiedEvent{
		mkEvent("zero", "no start", time.Time{}, false),
	}

	buckets := Aggregate(notes, oneOff, nil, true, time.UTC)

	require.Len(t, buckets, 1)
	b := BucketFor(buckets, "2024-06-07")
	assert.Equal(t, 1, b.NotesCount)
	assert.Equal(t, 0, b.EventsCount)
}

func TestAggregateIsIdempotent(t *testing.T) {
	notes := []model.NoteRecord{{ID: "n1", Date: "2024-06-07"}}
	oneOff := []model.ClassifiedEvent{
		mkEvent("e1", "a", time.Date(2024, 6, 7, 8, 0, 0, 0, time.UTC), false),
	}

	first := Aggregate(notes, oneOff, nil, true, time.UTC)
	second := Aggregate(notes, oneOff, nil, true, time.UTC)
	assert.Equal(t, first, second)
}

func TestBucketForMissingDayIsEmptyAndValid(t *testing.T) {
	buckets := Aggregate(nil, nil, nil, true, time.UTC)

	b := BucketFor(buckets, "2024-06-30")
	assert.Equal(t, "2024-06-30", b.Date)
	assert.False(t, b.HasContent)
	assert.Zero(t, b.NotesCount)
	assert.Zero(t, b.EventsCount)
	assert.Empty(t, b.Notes)
	assert.Empty(t, b.Events)
}
