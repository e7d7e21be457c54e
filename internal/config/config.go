package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// BackendConfig describes the external backend API that stores notes,
// events and resources.
type BackendConfig struct {
	// BaseURL is the backend API root (e.g. "https://api.example.com").
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Token is an optional service credential used when a request carries
	// no Authorization header (background refresh, smoke tests).
	Token string `yaml:"token,omitempty" json:"token,omitempty"`

	// TimeoutSeconds bounds each backend request. Zero means the default.
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeout_seconds"`

	// RateLimit is the sustained requests-per-second budget toward the
	// backend; Burst is the token bucket size. Zero means defaults.
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit"`
	Burst     int     `yaml:"burst" json:"burst"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the local API.
type BasicAuthConfig struct {
	Username string `yaml:"username" json:"username"`
	Password string `yaml:"password" json:"password"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the dashboard API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone used to resolve event calendar days
	// (e.g. "America/Lima").
	Timezone string `yaml:"timezone" json:"timezone"`

	// RefreshCron is a cron-style schedule (e.g. "*/15 * * * *") used to
	// re-load the currently displayed month in the background.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	// RecurrenceKeywords is the keyword set used by the recurrence
	// heuristic. It is data, not code, so the list can be tuned per
	// deployment without a rebuild.
	RecurrenceKeywords []string `yaml:"recurrence_keywords" json:"recurrence_keywords"`

	// UpcomingLimit caps the upcoming-events feed.
	UpcomingLimit int `yaml:"upcoming_limit" json:"upcoming_limit"`

	// CacheTTLSeconds is the TTL of the in-memory /api/calendar response
	// cache.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds" json:"cache_ttl_seconds"`

	Backend BackendConfig `yaml:"backend" json:"backend"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all
	// endpoints except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// DefaultRecurrenceKeywords is the observed production keyword set: Spanish
// terms first (the backend data is mostly Spanish), English equivalents after.
func DefaultRecurrenceKeywords() []string {
	return []string{
		"semanal", "mensual", "diario", "diaria", "trimestral", "anual",
		"cada", "rutinario", "rutina", "mantenimiento", "backup",
		"respaldo", "revision", "revisión", "reporte", "recurrente",
		"programado", "ciclico", "cíclico", "fijo", "continuo", "periodico",
		"periódico",
		"weekly", "monthly", "daily", "quarterly", "yearly", "annual",
		"every", "routine", "maintenance", "review", "report", "recurring",
		"scheduled", "cyclical", "fixed", "continuous", "periodic",
	}
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:             "127.0.0.1:8080",
		Timezone:           "America/Lima",
		RefreshCron:        "*/15 * * * *",
		RecurrenceKeywords: DefaultRecurrenceKeywords(),
		UpcomingLimit:      10,
		CacheTTLSeconds:    30,
		Backend: BackendConfig{
			BaseURL:        "http://127.0.0.1:3001",
			TimeoutSeconds: 15,
			RateLimit:      10,
			Burst:          20,
		},
		BasicAuth: nil,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = "127.0.0.1:8080"
	}
	if c.Timezone == "" {
		c.Timezone = "America/Lima"
	}
	if c.RefreshCron == "" {
		c.RefreshCron = "*/15 * * * *"
	}
	if len(c.RecurrenceKeywords) == 0 {
		c.RecurrenceKeywords = DefaultRecurrenceKeywords()
	}
	if c.UpcomingLimit <= 0 {
		c.UpcomingLimit = 10
	}
	if c.CacheTTLSeconds <= 0 {
		c.CacheTTLSeconds = 30
	}
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = "http://127.0.0.1:3001"
	}
	if c.Backend.TimeoutSeconds <= 0 {
		c.Backend.TimeoutSeconds = 15
	}
	if c.Backend.RateLimit <= 0 {
		c.Backend.RateLimit = 10
	}
	if c.Backend.Burst <= 0 {
		c.Backend.Burst = 20
	}
}

// BackendTimeout returns the backend request timeout as a duration.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// CacheTTL returns the calendar response cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, a default config is written there
//     (parent directory created, 0600 perms) and returned.
//   - If the file exists, it is read, unmarshaled and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Return cfg with the error so the caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically
// (temp file + rename) with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".dashboardia-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Save is a convenience method delegating to the package-level Save.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
