// Package store owns the in-memory "currently displayed month" records and
// enforces last-request-wins semantics: month navigation can fire a new load
// before a previous one resolves, and the stale result must be discarded
// rather than overwrite fresher state.
package store

import (
	"context"
	"sync"
	"time"

	appLog "github.com/miguelgargurevich/dashboardia/internal/log"
	"github.com/miguelgargurevich/dashboardia/internal/model"
)

// Loader fetches one month's records. A failed load should resolve to empty
// sets; the store never retries.
type Loader func(ctx context.Context, yearMonth string) ([]model.EventRecord, []model.NoteRecord, error)

// Snapshot is a consistent view of the stored month.
type Snapshot struct {
	YearMonth string
	Events    []model.EventRecord
	Notes     []model.NoteRecord
	LoadedAt  time.Time
}

// MonthState holds the records of the month the UI is currently looking at.
// Each load is tagged with a monotonically increasing ticket; a completing
// load applies only while its ticket is still the latest one issued.
type MonthState struct {
	mu          sync.Mutex
	seq         uint64
	current     string
	loadedMonth string
	events      []model.EventRecord
	notes       []model.NoteRecord
	loadedAt    time.Time
}

// NewMonthState returns an empty MonthState.
func NewMonthState() *MonthState {
	return &MonthState{}
}

// Begin marks yearMonth as the desired month and issues a ticket for the
// load about to start. Any load holding an older ticket becomes stale.
func (s *MonthState) Begin(yearMonth string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.current = yearMonth
	return s.seq
}

// Complete applies a finished load if its ticket is still current. It
// reports whether the result was applied; stale results are dropped.
func (s *MonthState) Complete(ticket uint64, yearMonth string, events []model.EventRecord, notes []model.NoteRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.seq {
		appLog.Debug("store: discarding superseded month load", "month", yearMonth, "ticket", ticket, "current", s.seq)
		return false
	}

	s.loadedMonth = yearMonth
	s.events = events
	s.notes = notes
	s.loadedAt = time.Now()
	return true
}

// Load runs one tagged load cycle: Begin, fetch, Complete. Loader errors
// degrade to empty record sets for the month (the caller has already logged
// or translated authorization failures).
func (s *MonthState) Load(ctx context.Context, yearMonth string, load Loader) (Snapshot, error) {
	ticket := s.Begin(yearMonth)

	events, notes, err := load(ctx, yearMonth)
	if err != nil {
		events, notes = nil, nil
	}

	s.Complete(ticket, yearMonth, events, notes)

	snap := Snapshot{
		YearMonth: yearMonth,
		Events:    events,
		Notes:     notes,
		LoadedAt:  time.Now(),
	}
	return snap, err
}

// Current returns the desired month key, which may be ahead of the stored
// records while a load is in flight.
func (s *MonthState) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Snapshot returns the stored month view. ok is false before any load has
// completed.
func (s *MonthState) Snapshot() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadedAt.IsZero() {
		return Snapshot{}, false
	}
	return Snapshot{
		YearMonth: s.loadedMonth,
		Events:    s.events,
		Notes:     s.notes,
		LoadedAt:  s.loadedAt,
	}, true
}
