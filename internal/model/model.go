// Package model holds the record types exchanged with the backend API and
// the derived views produced by the calendar engine.
package model

import "time"

// NoteType is the closed set of note categories used by the dashboard.
type NoteType string

const (
	NoteIncident    NoteType = "incidente"
	NoteMaintenance NoteType = "mantenimiento"
	NoteMeeting     NoteType = "reunion"
	NoteTraining    NoteType = "capacitacion"
	NoteOther       NoteType = "otro"
)

// EventRecord is a calendar event as returned by the backend API for one
// month. Records are immutable once fetched; a re-fetch replaces the whole
// set for that month.
type EventRecord struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Start       time.Time  `json:"startDate"`
	End         *time.Time `json:"endDate,omitempty"`
	Location    string     `json:"location,omitempty"`

	// Free-text operational fields carried through untouched.
	Validator        string `json:"validador,omitempty"`
	Mode             string `json:"modo,omitempty"`
	ExternalCode     string `json:"codigoDana,omitempty"`
	NotificationName string `json:"nombreNotificacion,omitempty"`
	SendDay          string `json:"diaEnvio,omitempty"`

	RelatedResources []string `json:"relatedResources,omitempty"`

	// Recurring, when non-nil, is authoritative and disables the keyword
	// heuristic (even when false).
	Recurring         *bool  `json:"isRecurring,omitempty"`
	RecurrencePattern string `json:"recurrencePattern,omitempty"`
	EventType         string `json:"eventType,omitempty"`
}

// NoteRecord is a dated note. Date is day-granular ("YYYY-MM-DD"), not a
// timestamp; it is used verbatim as the bucket key.
type NoteRecord struct {
	ID               string   `json:"id"`
	Date             string   `json:"date"`
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	Type             NoteType `json:"tipo"`
	Tags             []string `json:"tags,omitempty"`
	RelatedResources []string `json:"relatedResources,omitempty"`
}

// ClassifiedEvent is an EventRecord plus derived recurrence metadata.
// Derivation is pure and repeatable; nothing here is persisted.
type ClassifiedEvent struct {
	EventRecord
	IsRecurring       bool   `json:"isRecurring"`
	RecurrencePattern string `json:"recurrencePattern,omitempty"`
}

// Urgency is the derived display-priority state for one event.
type Urgency struct {
	IsToday   bool   `json:"isToday"`
	IsSoon    bool   `json:"isSoon"`
	IsWeekend bool   `json:"isWeekend"`
	Highlight bool   `json:"highlight"`
	TimeUntil string `json:"timeUntil"`
}

// UpcomingEvent is one entry of the ranked upcoming-events feed.
type UpcomingEvent struct {
	Event   ClassifiedEvent `json:"event"`
	Urgency Urgency         `json:"urgency"`
}

// DayBucket aggregates the notes and classified events of one calendar day.
// A day with no content is never materialized; lookups for a missing day
// return a valid zero bucket instead.
type DayBucket struct {
	Date        string            `json:"date"`
	Notes       []NoteRecord      `json:"notes"`
	Events      []ClassifiedEvent `json:"events"`
	NotesCount  int               `json:"notesCount"`
	EventsCount int               `json:"eventsCount"`
	HasContent  bool              `json:"hasContent"`
}

// CalendarGrid describes the Monday-first month layout for one month:
// LeadingBlanks empty cells followed by Days day numbers, in a 7-column
// arrangement.
type CalendarGrid struct {
	Year          int   `json:"year"`
	Month         int   `json:"month"` // zero-based, 0 = January
	DaysInMonth   int   `json:"daysInMonth"`
	LeadingBlanks int   `json:"leadingBlanks"` // Monday-first weekday of day 1, 0..6
	Days          []int `json:"days"`
}
