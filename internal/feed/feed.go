// Package feed caches the upstream story listings and refreshes them on a
// cron schedule. The cache is display state only: refreshing never touches
// task or saved-item state.
package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/lpolish/hackeroso/internal/hn"
	"github.com/lpolish/hackeroso/internal/model"
	"github.com/lpolish/hackeroso/internal/trending"
)

// Service fetches and caches the HN feeds and the GitHub trending listing.
type Service struct {
	hn    *hn.Client
	gh    *trending.Client
	limit int

	cron    *cron.Cron
	timeout time.Duration

	mu        sync.RWMutex
	stories   map[model.Feed][]model.Story
	repos     []model.Repo
	fetchedAt map[model.Feed]time.Time

	// OnRefresh, when set, is called after each background refresh so the
	// UI can repaint. Called outside the cache lock.
	OnRefresh func()
}

// NewService creates a feed service. Limit caps stories per feed.
func NewService(hnClient *hn.Client, ghClient *trending.Client, limit int, timeout time.Duration) *Service {
	return &Service{
		hn:        hnClient,
		gh:        ghClient,
		limit:     limit,
		timeout:   timeout,
		stories:   make(map[model.Feed][]model.Story),
		fetchedAt: make(map[model.Feed]time.Time),
	}
}

// Start schedules periodic refreshes using the given cron expression.
func (s *Service) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, s.backgroundRefresh); err != nil {
		return err
	}
	c.Start()
	s.cron = c
	slog.Info("feed refresh scheduled", "cron", spec)
	return nil
}

// Stop halts the refresh schedule.
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Service) backgroundRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	var refreshed bool
	for feed := range s.snapshotFeeds() {
		if _, err := s.Refresh(ctx, feed); err != nil {
			slog.Warn("feed refresh failed", "feed", feed, "error", err)
			continue
		}
		refreshed = true
	}
	if _, err := s.RefreshTrending(ctx); err != nil {
		slog.Warn("trending refresh failed", "error", err)
	} else {
		refreshed = true
	}

	if refreshed && s.OnRefresh != nil {
		s.OnRefresh()
	}
}

// snapshotFeeds returns the feeds that have been viewed at least once;
// only those are kept warm by the background refresh.
func (s *Service) snapshotFeeds() map[model.Feed]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[model.Feed]struct{}, len(s.stories))
	for f := range s.stories {
		out[f] = struct{}{}
	}
	return out
}

// Stories returns the cached listing for a feed, fetching it on first use.
func (s *Service) Stories(ctx context.Context, feed model.Feed) ([]model.Story, error) {
	s.mu.RLock()
	cached, ok := s.stories[feed]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}
	return s.Refresh(ctx, feed)
}

// Refresh refetches one feed and updates the cache.
func (s *Service) Refresh(ctx context.Context, feed model.Feed) ([]model.Story, error) {
	stories, err := s.hn.Stories(ctx, feed, s.limit)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.stories[feed] = stories
	s.fetchedAt[feed] = time.Now()
	s.mu.Unlock()
	return stories, nil
}

// Trending returns the cached trending repositories, fetching on first use.
func (s *Service) Trending(ctx context.Context) ([]model.Repo, error) {
	s.mu.RLock()
	cached := s.repos
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return s.RefreshTrending(ctx)
}

// RefreshTrending refetches the trending listing and updates the cache.
func (s *Service) RefreshTrending(ctx context.Context) ([]model.Repo, error) {
	repos, err := s.gh.Trending(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.repos = repos
	s.mu.Unlock()
	return repos, nil
}

// FetchedAt reports when a feed was last refreshed.
func (s *Service) FetchedAt(feed model.Feed) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.fetchedAt[feed]
	return t, ok
}
