// Package web exposes the dashboard HTTP API: calendar aggregation, the
// upcoming-events feed, an ICS export and thin pass-through handlers toward
// the external backend.
package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/miguelgargurevich/dashboardia/internal/backend"
	"github.com/miguelgargurevich/dashboardia/internal/calendar"
	"github.com/miguelgargurevich/dashboardia/internal/config"
	appLog "github.com/miguelgargurevich/dashboardia/internal/log"
	"github.com/miguelgargurevich/dashboardia/internal/model"
	"github.com/miguelgargurevich/dashboardia/internal/store"
)

// Server provides the HTTP API consumed by the dashboard UI.
type Server struct {
	cfg        *config.Config
	client     *backend.Client
	months     *store.MonthState
	classifier *calendar.Classifier
	loc        *time.Location
	mux        *http.ServeMux

	// In-memory cache for /api/calendar responses. Dashboard data is
	// team-scoped, not per-user, so the cache keys on month+flags only.
	calMu    sync.RWMutex
	calCache map[string]*calendarCacheEntry
}

type calendarCacheEntry struct {
	resp      calendarResponse
	updatedAt time.Time
}

// NewServer constructs a Server over the given collaborators.
func NewServer(cfg *config.Config, client *backend.Client, months *store.MonthState, loc *time.Location) *Server {
	if loc == nil {
		loc = time.Local
	}
	s := &Server{
		cfg:        cfg,
		client:     client,
		months:     months,
		classifier: calendar.NewClassifier(cfg.RecurrenceKeywords),
		loc:        loc,
		mux:        http.NewServeMux(),
		calCache:   make(map[string]*calendarCacheEntry),
	}
	s.registerRoutes()
	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		h = s.basicAuthMiddleware(h)
	}
	return s.requestLogMiddleware(h)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/api/calendar", s.handleCalendar)
	s.mux.HandleFunc("/api/upcoming", s.handleUpcoming)
	s.mux.HandleFunc("/api/calendar.ics", s.handleCalendarICS)

	// Thin proxies to the backend.
	s.mux.HandleFunc("/api/notes", s.handleNotes)
	s.mux.HandleFunc("/api/notes/", s.handleNoteByID)
	s.mux.HandleFunc("/api/resources", s.handleResources)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// calendarResponse is the JSON shape for /api/calendar.
type calendarResponse struct {
	Month         string                     `json:"month"`
	PrevMonth     string                     `json:"prevMonth"`
	NextMonth     string                     `json:"nextMonth"`
	Grid          model.CalendarGrid         `json:"grid"`
	Buckets       map[string]model.DayBucket `json:"buckets"`
	NotesTotal    int                        `json:"notesTotal"`
	EventsTotal   int                        `json:"eventsTotal"`
	ShowRecurring bool                       `json:"showRecurring"`
}

// handleCalendar aggregates one month.
//
// GET /api/calendar?month=YYYY-MM&recurring=1
//   - month:     month key, default the current month
//   - recurring: include recurring events in buckets, default true
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	monthKey := q.Get("month")
	if monthKey == "" {
		monthKey = calendar.CurrentYearMonth().String()
	}
	ym, err := calendar.ParseYearMonth(monthKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, want YYYY-MM")
		return
	}
	showRecurring := parseBoolDefault(q.Get("recurring"), true)

	cacheKey := monthKey + "|" + strconv.FormatBool(showRecurring)
	if resp, ok := s.cachedCalendar(cacheKey); ok {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	snap, err := s.loadMonth(r.Context(), monthKey, s.token(r))
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		// Degrade to an empty month rather than failing the view.
		appLog.Error("calendar: month load failed, serving empty month", err, "month", monthKey)
	}

	resp := s.buildCalendarResponse(ym, snap, showRecurring)
	s.storeCalendar(cacheKey, resp)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) buildCalendarResponse(ym calendar.YearMonth, snap store.Snapshot, showRecurring bool) calendarResponse {
	classified := s.classifier.ClassifyAll(snap.Events)
	oneOff, recurring := calendar.Split(classified)
	buckets := calendar.Aggregate(snap.Notes, oneOff, recurring, showRecurring, s.loc)

	notesTotal, eventsTotal := 0, 0
	for _, b := range buckets {
		notesTotal += b.NotesCount
		eventsTotal += b.EventsCount
	}

	return calendarResponse{
		Month:         ym.String(),
		PrevMonth:     calendar.Shift(ym, -1).String(),
		NextMonth:     calendar.Shift(ym, +1).String(),
		Grid:          calendar.BuildGrid(ym.Year, ym.Month),
		Buckets:       buckets,
		NotesTotal:    notesTotal,
		EventsTotal:   eventsTotal,
		ShowRecurring: showRecurring,
	}
}

// upcomingResponse is the JSON shape for /api/upcoming.
type upcomingResponse struct {
	Events []model.UpcomingEvent `json:"events"`
	Limit  int                   `json:"limit"`
}

// handleUpcoming serves the ranked upcoming-events feed from the currently
// stored month, loading the current month first if nothing is stored yet.
//
// GET /api/upcoming?limit=10
func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := parseIntDefault(r.URL.Query().Get("limit"), s.cfg.UpcomingLimit)
	if limit <= 0 {
		limit = s.cfg.UpcomingLimit
	}

	snap, ok := s.months.Snapshot()
	if !ok {
		var err error
		snap, err = s.loadMonth(r.Context(), calendar.CurrentYearMonth().String(), s.token(r))
		if err != nil {
			if errors.Is(err, backend.ErrUnauthorized) {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			appLog.Error("upcoming: month load failed, serving empty feed", err)
		}
	}

	classified := s.classifier.ClassifyAll(snap.Events)
	feed := calendar.Upcoming(classified, time.Now().In(s.loc), limit)

	writeJSON(w, http.StatusOK, upcomingResponse{Events: feed, Limit: limit})
}

// loadMonth runs a tagged month load through the store so concurrent month
// navigation keeps last-request-wins semantics.
func (s *Server) loadMonth(ctx context.Context, monthKey, token string) (store.Snapshot, error) {
	return s.months.Load(ctx, monthKey, func(ctx context.Context, ym string) ([]model.EventRecord, []model.NoteRecord, error) {
		return s.client.Month(ctx, ym, token)
	})
}

// token extracts the caller's bearer token, falling back to the configured
// service credential.
func (s *Server) token(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return s.cfg.Backend.Token
}

func (s *Server) cachedCalendar(key string) (calendarResponse, bool) {
	s.calMu.RLock()
	defer s.calMu.RUnlock()
	e, ok := s.calCache[key]
	if !ok || time.Since(e.updatedAt) >= s.cfg.CacheTTL() {
		return calendarResponse{}, false
	}
	return e.resp, true
}

func (s *Server) storeCalendar(key string, resp calendarResponse) {
	s.calMu.Lock()
	defer s.calMu.Unlock()
	s.calCache[key] = &calendarCacheEntry{resp: resp, updatedAt: time.Now()}
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	ba := s.cfg.BasicAuth
	return ba != nil && ba.Username != "" && ba.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="DashboardIA", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogMiddleware tags every request with a correlation id and logs
// method, path and duration.
func (s *Server) requestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		started := time.Now()
		next.ServeHTTP(w, r)

		appLog.Debug("http request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseBoolDefault(s string, def bool) bool {
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
