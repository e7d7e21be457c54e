package web

import (
	"errors"
	"net/http"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/miguelgargurevich/dashboardia/internal/backend"
	"github.com/miguelgargurevich/dashboardia/internal/calendar"
	appLog "github.com/miguelgargurevich/dashboardia/internal/log"
)

// handleCalendarICS exports one month's classified events as an iCalendar
// feed so external calendar apps can subscribe to the team schedule.
//
// GET /api/calendar.ics?month=YYYY-MM
func (s *Server) handleCalendarICS(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	monthKey := r.URL.Query().Get("month")
	if monthKey == "" {
		monthKey = calendar.CurrentYearMonth().String()
	}
	if _, err := calendar.ParseYearMonth(monthKey); err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, want YYYY-MM")
		return
	}

	snap, err := s.loadMonth(r.Context(), monthKey, s.token(r))
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		appLog.Error("ics export: month load failed, exporting empty calendar", err, "month", monthKey)
	}

	classified := s.classifier.ClassifyAll(snap.Events)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//dashboardia//calendar//ES")

	now := time.Now()
	for _, ev := range classified {
		if ev.Start.IsZero() {
			continue
		}

		ve := cal.AddEvent(ev.ID + "@dashboardia")
		ve.SetDtStampTime(now)
		ve.SetStartAt(ev.Start)
		if ev.End != nil && !ev.End.IsZero() {
			ve.SetEndAt(*ev.End)
		} else {
			ve.SetEndAt(ev.Start.Add(time.Hour))
		}
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.Location != "" {
			ve.SetLocation(ev.Location)
		}

		if ev.IsRecurring {
			if rule, ok := calendar.PatternRuleValue(ev.RecurrencePattern); ok {
				ve.SetProperty(ics.ComponentPropertyRrule, rule)
			}
		}
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="dashboardia-`+monthKey+`.ics"`)
	if _, err := w.Write([]byte(cal.Serialize())); err != nil {
		appLog.Error("ics export: failed to write response", err, "month", monthKey)
	}
}
