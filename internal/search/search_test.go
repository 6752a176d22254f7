package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func setupTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithBaseURL(server.Client(), server.URL)
}

func TestSearchNormalizesHits(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "go generics" {
			t.Errorf("query = %q", got)
		}
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("page = %q, want 2", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"hits": [
				{"objectID": "321", "title": "Go 1.18 released", "url": "https://go.dev",
				 "author": "rsc", "points": 900, "num_comments": 400, "created_at_i": 1647360000},
				{"objectID": "322", "title": "Ask HN: generics?", "story_text": "so...",
				 "author": "gopher", "points": 3, "num_comments": 1, "created_at_i": 1647360100}
			],
			"page": 2, "nbPages": 7, "nbHits": 131
		}`))
	})

	res, err := client.Search(context.Background(), "go generics", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Stories) != 2 {
		t.Fatalf("expected 2 stories, got %d", len(res.Stories))
	}
	if res.Stories[0].ID != "321" || res.Stories[0].Score != 900 || res.Stories[0].Comments != 400 {
		t.Errorf("hit not normalized: %+v", res.Stories[0])
	}
	if res.Stories[1].Kind != "ask" {
		t.Errorf("text post kind = %q, want ask", res.Stories[1].Kind)
	}
	if res.Page != 2 || res.Pages != 7 || res.Total != 131 {
		t.Errorf("pagination wrong: %+v", res)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	client := NewClient(nil)
	if _, err := client.Search(context.Background(), "", 0); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if _, err := client.Search(context.Background(), "x", 0); err == nil {
		t.Fatal("expected error for upstream 502")
	}
}
