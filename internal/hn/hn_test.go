package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lpolish/hackeroso/internal/model"
)

func setupTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithBaseURL(server.Client(), server.URL)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestStoriesNormalizesItems(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v0/topstories.json":
			writeJSON(w, []int{1, 2, 3})
		case r.URL.Path == "/v0/item/1.json":
			writeJSON(w, map[string]interface{}{
				"id": 1, "title": "A story", "url": "https://example.com",
				"score": 42, "descendants": 7, "by": "pg", "time": 1700000000,
				"type": "story",
			})
		case r.URL.Path == "/v0/item/2.json":
			// Deleted items are skipped.
			writeJSON(w, map[string]interface{}{"id": 2, "deleted": true})
		case r.URL.Path == "/v0/item/3.json":
			// Self post: no url, kind becomes ask.
			writeJSON(w, map[string]interface{}{
				"id": 3, "title": "Ask HN: testing?", "score": 5,
				"by": "dang", "time": 1700000100, "type": "story",
			})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	})

	stories, err := client.Stories(context.Background(), model.FeedTop, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("expected 2 stories, got %d", len(stories))
	}

	s := stories[0]
	if s.ID != "1" || s.Score != 42 || s.Comments != 7 || s.Author != "pg" {
		t.Errorf("story not normalized: %+v", s)
	}
	if stories[1].Kind != "ask" {
		t.Errorf("self post kind = %q, want ask", stories[1].Kind)
	}
}

func TestStoryIDsRespectsLimit(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []int{1, 2, 3, 4, 5})
	})

	ids, err := client.StoryIDs(context.Background(), model.FeedNew, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("ids = %v, want [1 2]", ids)
	}
}

func TestStoriesUpstreamError(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Stories(context.Background(), model.FeedTop, 5)
	if err == nil {
		t.Fatal("expected error for upstream 500")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error should carry upstream status: %v", err)
	}
}

func TestCommentsPrunesDeletedSubtrees(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v0/item/1.json":
			writeJSON(w, map[string]interface{}{
				"id": 1, "title": "root", "type": "story", "kids": []int{10, 11},
			})
		case "/v0/item/10.json":
			writeJSON(w, map[string]interface{}{
				"id": 10, "by": "a", "text": "top comment", "time": 1700000000,
				"type": "comment", "kids": []int{20},
			})
		case "/v0/item/11.json":
			writeJSON(w, map[string]interface{}{"id": 11, "deleted": true, "kids": []int{21}})
		case "/v0/item/20.json":
			writeJSON(w, map[string]interface{}{
				"id": 20, "by": "b", "text": "reply", "time": 170000050, "type": "comment",
			})
		default:
			t.Errorf("unexpected fetch of %s", r.URL.Path)
			w.Write([]byte("null"))
		}
	})

	comments, err := client.Comments(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("expected 1 top-level comment, got %d", len(comments))
	}
	if comments[0].ID != "10" || len(comments[0].Children) != 1 {
		t.Errorf("comment tree wrong: %+v", comments[0])
	}
	if comments[0].Children[0].Depth != 1 {
		t.Errorf("child depth = %d, want 1", comments[0].Children[0].Depth)
	}
}

func TestCommentsDepthLimit(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v0/item/1.json":
			writeJSON(w, map[string]interface{}{"id": 1, "type": "story", "kids": []int{2}})
		case "/v0/item/2.json":
			writeJSON(w, map[string]interface{}{"id": 2, "type": "comment", "by": "a", "kids": []int{3}})
		default:
			t.Errorf("fetched beyond depth limit: %s", r.URL.Path)
			w.Write([]byte("null"))
		}
	})

	comments, err := client.Comments(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 1 || comments[0].Children != nil {
		t.Error("depth limit not honored")
	}
}

func TestUserNotFound(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "null")
	})

	if _, err := client.User(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for null user")
	}
}

func TestUserAndSubmissions(t *testing.T) {
	client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v0/user/pg.json":
			writeJSON(w, map[string]interface{}{
				"id": "pg", "karma": 155111, "about": "Bug fixer.",
				"created": 1160418092, "submitted": []int{1, 2},
			})
		case "/v0/item/1.json":
			writeJSON(w, map[string]interface{}{
				"id": 1, "title": "Y Combinator", "by": "pg", "type": "story", "time": 1160418111,
			})
		case "/v0/item/2.json":
			writeJSON(w, map[string]interface{}{
				"id": 2, "text": "a comment", "by": "pg", "type": "comment", "time": 1160418200,
			})
		}
	})

	u, err := client.User(context.Background(), "pg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Karma != 155111 {
		t.Errorf("karma = %d", u.Karma)
	}

	subs, err := client.Submissions(context.Background(), u, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}
	if subs[1].Kind != "comment" {
		t.Errorf("second submission kind = %q, want comment", subs[1].Kind)
	}
}
