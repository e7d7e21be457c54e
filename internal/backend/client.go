// Package backend is the HTTP client for the external dashboard backend
// that stores notes, events and resources. The engine treats it as a
// collaborator: month-scoped retrieval plus thin pass-through operations.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/miguelgargurevich/dashboardia/internal/config"
	appLog "github.com/miguelgargurevich/dashboardia/internal/log"
	"github.com/miguelgargurevich/dashboardia/internal/model"
)

// ErrUnauthorized is returned on a 401 from the backend. The web layer
// translates it into a 401 toward the UI, which clears its credential and
// redirects to sign-in.
var ErrUnauthorized = errors.New("backend: unauthorized")

// Client talks to the backend API. Requests share a bounded http.Client and
// a token-bucket rate limiter so a busy UI cannot stampede the backend.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// New builds a Client from configuration.
func New(cfg config.BackendConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rl := cfg.RateLimit
	if rl <= 0 {
		rl = 10
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 20
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rl), burst),
	}
}

// Events retrieves the event records for one month ("YYYY-MM").
func (c *Client) Events(ctx context.Context, yearMonth, token string) ([]model.EventRecord, error) {
	var out []model.EventRecord
	q := url.Values{"month": {yearMonth}}
	if err := c.getJSON(ctx, "/api/events", q, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Notes retrieves note records. An empty yearMonth returns the full set.
func (c *Client) Notes(ctx context.Context, yearMonth, token string) ([]model.NoteRecord, error) {
	var out []model.NoteRecord
	q := url.Values{}
	if yearMonth != "" {
		q.Set("month", yearMonth)
	}
	if err := c.getJSON(ctx, "/api/notes", q, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Month retrieves events and notes for one month. Failures other than
// authorization degrade to empty sets with logging, matching the "no content
// for this period" recovery policy.
func (c *Client) Month(ctx context.Context, yearMonth, token string) ([]model.EventRecord, []model.NoteRecord, error) {
	events, err := c.Events(ctx, yearMonth, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, nil, err
		}
		appLog.Error("backend: events fetch failed, using empty set", err, "month", yearMonth)
		events = nil
	}

	notes, err := c.Notes(ctx, yearMonth, token)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil, nil, err
		}
		appLog.Error("backend: notes fetch failed, using empty set", err, "month", yearMonth)
		notes = nil
	}

	return events, notes, nil
}

// ForwardResult is the relayed outcome of a pass-through call.
type ForwardResult struct {
	Status      int
	ContentType string
	Body        []byte
}

// Forward relays a request body to the backend verbatim and returns the
// backend's response for the caller to relay back. Used by the thin proxy
// handlers (note create/update/delete, resources, AI note generation).
func (c *Client) Forward(ctx context.Context, method, path string, query url.Values, token string, body []byte) (ForwardResult, error) {
	var rd io.Reader
	if len(body) > 0 {
		rd = bytes.NewReader(body)
	}
	resp, err := c.do(ctx, method, path, query, token, rd)
	if err != nil {
		return ForwardResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ForwardResult{}, ErrUnauthorized
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return ForwardResult{}, err
	}
	return ForwardResult{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        b,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, token string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		return fmt.Errorf("backend: %s returned %s", path, resp.Status)
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body io.Reader) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.http.Do(req)
}
