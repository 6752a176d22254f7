package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lpolish/hackeroso/internal/hn"
	"github.com/lpolish/hackeroso/internal/model"
	"github.com/lpolish/hackeroso/internal/trending"
)

func newHNServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v0/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode([]int{1, 2})
	})
	mux.HandleFunc("/v0/item/1.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": 1, "title": "First", "url": "https://example.com/1",
			"by": "alice", "score": 10, "descendants": 3, "type": "story",
		})
	})
	mux.HandleFunc("/v0/item/2.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id": 2, "title": "Second", "url": "https://example.com/2",
			"by": "bob", "score": 20, "descendants": 1, "type": "story",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newGHServer(t *testing.T, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"id": 99, "full_name": "alice/proj", "html_url": "https://github.com/alice/proj",
					"stargazers_count": 500, "owner": map[string]any{"login": "alice"}},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newService(t *testing.T, hnHits, ghHits *atomic.Int64) *Service {
	t.Helper()
	hnClient := hn.NewClientWithBaseURL(nil, newHNServer(t, hnHits).URL)
	ghClient := trending.NewClientWithBaseURL(nil, newGHServer(t, ghHits).URL)
	return NewService(hnClient, ghClient, 30, 5*time.Second)
}

func TestStoriesFetchesOnceThenServesCache(t *testing.T) {
	var hnHits, ghHits atomic.Int64
	svc := newService(t, &hnHits, &ghHits)

	stories, err := svc.Stories(context.Background(), model.FeedTop)
	if err != nil {
		t.Fatalf("Stories: %v", err)
	}
	if len(stories) != 2 || stories[0].Title != "First" {
		t.Fatalf("unexpected stories: %+v", stories)
	}

	if _, err := svc.Stories(context.Background(), model.FeedTop); err != nil {
		t.Fatalf("cached Stories: %v", err)
	}
	if got := hnHits.Load(); got != 1 {
		t.Fatalf("listing fetched %d times, want 1", got)
	}
}

func TestRefreshBypassesCache(t *testing.T) {
	var hnHits, ghHits atomic.Int64
	svc := newService(t, &hnHits, &ghHits)

	if _, err := svc.Stories(context.Background(), model.FeedTop); err != nil {
		t.Fatalf("Stories: %v", err)
	}
	if _, err := svc.Refresh(context.Background(), model.FeedTop); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if got := hnHits.Load(); got != 2 {
		t.Fatalf("listing fetched %d times, want 2", got)
	}
	if _, ok := svc.FetchedAt(model.FeedTop); !ok {
		t.Fatal("FetchedAt not recorded after refresh")
	}
}

func TestTrendingCaches(t *testing.T) {
	var hnHits, ghHits atomic.Int64
	svc := newService(t, &hnHits, &ghHits)

	repos, err := svc.Trending(context.Background())
	if err != nil {
		t.Fatalf("Trending: %v", err)
	}
	if len(repos) != 1 || repos[0].FullName != "alice/proj" {
		t.Fatalf("unexpected repos: %+v", repos)
	}

	if _, err := svc.Trending(context.Background()); err != nil {
		t.Fatalf("cached Trending: %v", err)
	}
	if got := ghHits.Load(); got != 1 {
		t.Fatalf("trending fetched %d times, want 1", got)
	}
}

func TestBackgroundRefreshOnlyWarmsViewedFeeds(t *testing.T) {
	var hnHits, ghHits atomic.Int64
	svc := newService(t, &hnHits, &ghHits)

	if _, err := svc.Stories(context.Background(), model.FeedTop); err != nil {
		t.Fatalf("Stories: %v", err)
	}

	var notified atomic.Bool
	svc.OnRefresh = func() { notified.Store(true) }
	svc.backgroundRefresh()

	if got := hnHits.Load(); got != 2 {
		t.Fatalf("listing fetched %d times, want 2 (initial + background)", got)
	}
	if !notified.Load() {
		t.Fatal("OnRefresh not called")
	}
}
