package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/miguelgargurevich/dashboardia/internal/backend"
	"github.com/miguelgargurevich/dashboardia/internal/calendar"
	"github.com/miguelgargurevich/dashboardia/internal/config"
	appLog "github.com/miguelgargurevich/dashboardia/internal/log"
	"github.com/miguelgargurevich/dashboardia/internal/model"
	"github.com/miguelgargurevich/dashboardia/internal/store"
	"github.com/miguelgargurevich/dashboardia/internal/web"
)

type flagConfig struct {
	configPath string
	listen     string
	debug      bool
}

func main() {
	appLog.Info("dashboardia starting", "version", "0.1.0")

	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI --listen overrides the config file if provided.
	if flags.listen != "" {
		conf.Listen = flags.listen
	}

	appLog.Info("effective config",
		"listen", conf.Listen,
		"timezone", conf.Timezone,
		"refresh", conf.RefreshCron,
		"backend", conf.Backend.BaseURL,
		"upcoming_limit", conf.UpcomingLimit,
		"keyword_count", len(conf.RecurrenceKeywords),
	)

	loc := resolveLocationOrLocal(conf.Timezone)

	client := backend.New(conf.Backend)
	months := store.NewMonthState()
	server := web.NewServer(conf, client, months, loc)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	// Background refresh keeps the currently displayed month warm. Stale
	// completions are discarded by the store, so a refresh racing a user
	// navigation can never clobber fresher state.
	sched := cron.New()
	if _, err := sched.AddFunc(conf.RefreshCron, func() {
		refreshMonth(ctx, conf, client, months)
	}); err != nil {
		appLog.Error("invalid refresh schedule", err, "refresh", conf.RefreshCron)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	httpServer := &http.Server{
		Addr:              conf.Listen,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+conf.Listen)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			appLog.Error("HTTP server shutdown failed", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("HTTP server failed", err)
			os.Exit(1)
		}
	}

	appLog.Info("dashboardia exiting")
}

// refreshMonth re-loads the month the UI is currently looking at (or the
// real current month before any request has arrived) using the configured
// service credential.
func refreshMonth(ctx context.Context, conf *config.Config, client *backend.Client, months *store.MonthState) {
	monthKey := months.Current()
	if monthKey == "" {
		monthKey = calendar.CurrentYearMonth().String()
	}

	_, err := months.Load(ctx, monthKey, func(ctx context.Context, ym string) ([]model.EventRecord, []model.NoteRecord, error) {
		return client.Month(ctx, ym, conf.Backend.Token)
	})
	if err != nil {
		appLog.Error("background refresh failed", err, "month", monthKey)
		return
	}
	appLog.Debug("background refresh completed", "month", monthKey)
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/dashboardia/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}

func resolveLocationOrLocal(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to local", err, "name", name)
		return time.Local
	}
	return loc
}
