package trending

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestTrendingQueriesLastSevenDays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "Hackeroso/1.0" {
			t.Errorf("user agent = %q", ua)
		}
		q := r.URL.Query().Get("q")
		if !strings.Contains(q, "created:>2025-05-25") {
			t.Errorf("query window wrong: %q", q)
		}
		if !strings.Contains(q, "sort:stars-desc") {
			t.Errorf("query missing star sort: %q", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [
			{"id": 9001, "name": "zed", "full_name": "zed-industries/zed",
			 "html_url": "https://github.com/zed-industries/zed",
			 "description": "an editor", "stargazers_count": 4200,
			 "forks_count": 120, "language": "Rust",
			 "created_at": "2025-05-27T10:00:00Z",
			 "owner": {"login": "zed-industries"}}
		]}`))
	}))
	t.Cleanup(server.Close)

	client := NewClientWithBaseURL(server.Client(), server.URL)
	client.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	repos, err := client.Trending(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repos) != 1 {
		t.Fatalf("expected 1 repo, got %d", len(repos))
	}

	r := repos[0]
	if r.ID != "9001" || r.FullName != "zed-industries/zed" || r.Stars != 4200 || r.Owner != "zed-industries" {
		t.Errorf("repo not normalized: %+v", r)
	}

	s := r.Story()
	if s.Kind != "repo" || s.Score != 4200 || s.Title != "zed-industries/zed" {
		t.Errorf("story conversion wrong: %+v", s)
	}
}

func TestTrendingUpstreamStatusMirrored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden) // rate limited
	}))
	t.Cleanup(server.Close)

	client := NewClientWithBaseURL(server.Client(), server.URL)
	_, err := client.Trending(context.Background())
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("expected 403 in error, got %v", err)
	}
}
