// Package calendar implements the day-aggregation and event-classification
// engine behind the dashboard's calendar views: month grid layout, one-off
// vs. recurring classification, day bucketing, urgency state and the
// upcoming-events feed. Everything here is a pure function over explicit
// inputs; the hosting layer re-calls on every relevant input change.
package calendar

import (
	"strings"

	"github.com/miguelgargurevich/dashboardia/internal/model"
)

// Recurrence pattern labels produced by inference.
const (
	PatternDaily     = "Daily"
	PatternWeekly    = "Weekly"
	PatternMonthly   = "Monthly"
	PatternQuarterly = "Quarterly"
	PatternYearly    = "Yearly"
	PatternMonday    = "Every Monday"
	Pattern15th      = "Every 15th of the month"
	PatternGeneric   = "Recurring"
)

// Classifier decides whether an event is recurring and infers its
// recurrence label. The keyword set comes from configuration so it can be
// tuned without code changes.
type Classifier struct {
	keywords []string
}

// NewClassifier builds a Classifier over the given keyword set. Keywords
// are matched case-insensitively as substrings of title+description.
func NewClassifier(keywords []string) *Classifier {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return &Classifier{keywords: lowered}
}

// Classify derives recurrence metadata for one event.
//
// An explicit Recurring flag on the record (even false) is authoritative and
// disables the keyword heuristic entirely. Otherwise the lower-cased title
// and description are scanned for any periodicity keyword. Classification is
// deterministic for a given record.
func (c *Classifier) Classify(ev model.EventRecord) model.ClassifiedEvent {
	out := model.ClassifiedEvent{EventRecord: ev}

	if ev.Recurring != nil {
		out.IsRecurring = *ev.Recurring
	} else {
		text := strings.ToLower(ev.Title + " " + ev.Description)
		if strings.TrimSpace(text) != "" {
			for _, kw := range c.keywords {
				if strings.Contains(text, kw) {
					out.IsRecurring = true
					break
				}
			}
		}
	}

	if !out.IsRecurring {
		return out
	}

	// An explicit pattern on the record wins over title inference.
	if ev.RecurrencePattern != "" {
		out.RecurrencePattern = ev.RecurrencePattern
		return out
	}
	out.RecurrencePattern = inferPattern(ev.Title)
	return out
}

// ClassifyAll classifies each event in source order.
func (c *Classifier) ClassifyAll(events []model.EventRecord) []model.ClassifiedEvent {
	out := make([]model.ClassifiedEvent, 0, len(events))
	for _, ev := range events {
		out = append(out, c.Classify(ev))
	}
	return out
}

// Split partitions classified events into one-off and recurring, preserving
// source order within each partition.
func Split(events []model.ClassifiedEvent) (oneOff, recurring []model.ClassifiedEvent) {
	for _, ev := range events {
		if ev.IsRecurring {
			recurring = append(recurring, ev)
		} else {
			oneOff = append(oneOff, ev)
		}
	}
	return oneOff, recurring
}

// inferPattern inspects the title for specific cues in fixed priority order.
// First matching rule wins; there is no fallthrough accumulation.
func inferPattern(title string) string {
	t := strings.ToLower(title)

	switch {
	case containsAny(t, "diario", "diaria", "daily", "backup", "respaldo"):
		return PatternDaily
	case containsAny(t, "semanal", "weekly"):
		return PatternWeekly
	case containsAny(t, "mensual", "monthly", "reporte"):
		return PatternMonthly
	case containsAny(t, "trimestral", "quarterly"):
		return PatternQuarterly
	case containsAny(t, "anual", "yearly", "annual"):
		return PatternYearly
	case containsAny(t, "cada lunes", "every monday"):
		return PatternMonday
	case containsAny(t, "cada 15", "every 15th"):
		return Pattern15th
	default:
		return PatternGeneric
	}
}

func containsAny(s string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
