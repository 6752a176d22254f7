// Package app assembles the application: configuration, the database,
// upstream API clients, the task manager and the notifier, guarded by a
// single-instance file lock.
package app

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/lpolish/hackeroso/internal/config"
	"github.com/lpolish/hackeroso/internal/db"
	"github.com/lpolish/hackeroso/internal/feed"
	"github.com/lpolish/hackeroso/internal/hn"
	"github.com/lpolish/hackeroso/internal/notify"
	"github.com/lpolish/hackeroso/internal/reader"
	"github.com/lpolish/hackeroso/internal/search"
	"github.com/lpolish/hackeroso/internal/support"
	"github.com/lpolish/hackeroso/internal/task"
	"github.com/lpolish/hackeroso/internal/trending"
)

// App holds the application state and dependencies.
type App struct {
	Config   config.Config
	DB       *db.DB
	Tasks    *task.Manager
	Notifier *notify.Notifier

	HN       *hn.Client
	Search   *search.Client
	Trending *trending.Client
	Feeds    *feed.Service
	Reader   *reader.Reader
	Support  *support.Service

	lockFile *flock.Flock
}

// New creates an application instance from the given configuration.
func New(cfg config.Config) (*App, error) {
	if cfg.DataDir == "" {
		cfg.DataDir = db.DefaultDataDir()
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "hackeroso.db")
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		Notifier: notify.NewNotifier(),
	}

	// Single instance only: concurrent timer writes would race.
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	manager, err := task.NewManager(database, task.WithNotifier(app.Notifier))
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	app.Tasks = manager

	httpClient := &http.Client{Timeout: cfg.FetchTimeout()}
	app.HN = hn.NewClient(httpClient)
	app.Search = search.NewClient(httpClient)
	app.Trending = trending.NewClient(httpClient)
	app.Feeds = feed.NewService(app.HN, app.Trending, cfg.FeedLimit, cfg.FetchTimeout())
	app.Reader = reader.New(httpClient, cfg.FetchTimeout())
	app.Support = support.New(httpClient, support.Config{
		HCaptchaSecret: cfg.HCaptchaSecret,
		ResendAPIKey:   cfg.ResendAPIKey,
		FromAddress:    cfg.SupportFrom,
		SupportInbox:   cfg.SupportTo,
	})

	return app, nil
}

// StartBackground begins the periodic feed refresh.
func (a *App) StartBackground() {
	if err := a.Feeds.Start(a.Config.RefreshSpec); err != nil {
		slog.Warn("feed refresh not scheduled", "error", err)
	}
}

// acquireLock acquires an exclusive file lock to prevent multiple instances.
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.Config.DataDir, "hackeroso.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another instance of hackeroso is already running")
	}
	return nil
}

func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources.
func (a *App) Close() error {
	var errs []error

	if a.Feeds != nil {
		a.Feeds.Stop()
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
