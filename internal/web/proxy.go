package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/miguelgargurevich/dashboardia/internal/backend"
	appLog "github.com/miguelgargurevich/dashboardia/internal/log"
)

// maxProxyBody caps request bodies relayed to the backend.
const maxProxyBody = 1 << 20

// The handlers below are deliberately thin: the request is forwarded to the
// backend verbatim and the backend's response is relayed back. No dashboard
// logic lives here.

// handleNotes proxies GET (list) and POST (create) on /api/notes.
func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodPost:
		s.forward(w, r, r.URL.Path)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleNoteByID proxies PUT/DELETE on /api/notes/{id} and POST on
// /api/notes/generate (the AI-assisted note generator lives behind the
// backend; this side only relays).
func (s *Server) handleNoteByID(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/notes/generate" {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.forward(w, r, r.URL.Path)
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodDelete:
		s.forward(w, r, r.URL.Path)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleResources proxies GET /api/resources.
func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.forward(w, r, r.URL.Path)
}

func (s *Server) forward(w http.ResponseWriter, r *http.Request, path string) {
	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxProxyBody))
		if err != nil {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
	}

	res, err := s.client.Forward(r.Context(), r.Method, path, r.URL.Query(), s.token(r), body)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		appLog.Error("proxy: backend call failed", err, "method", r.Method, "path", path)
		writeError(w, http.StatusBadGateway, "backend unavailable")
		return
	}

	ct := res.ContentType
	if ct == "" {
		ct = "application/json; charset=utf-8"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(res.Status)
	if _, err := w.Write(res.Body); err != nil {
		appLog.Error("proxy: failed to relay response", err, "path", path)
	}
}
