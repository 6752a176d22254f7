package reader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Why Geese Honk</title></head>
<body>
<article>
<h1>Why Geese Honk</h1>
<p>Geese honk to keep formation during long migratory flights. The trailing
birds signal the leaders to hold their pace, and the flock rotates the lead
position as the front bird tires.</p>
<p>Researchers tracking tagged flocks found that honking frequency rises
sharply in headwinds, which supports the coordination hypothesis over the
older territorial one.</p>
</article>
</body>
</html>`

func TestFetchExtractsArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	r := New(nil, 5*time.Second)
	article, err := r.Fetch(context.Background(), srv.URL+"/post")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if article.Title != "Why Geese Honk" {
		t.Errorf("Title = %q, want %q", article.Title, "Why Geese Honk")
	}
	if !strings.Contains(article.Text, "migratory flights") {
		t.Errorf("Text missing body content: %q", article.Text)
	}
	if article.URL != srv.URL+"/post" {
		t.Errorf("URL = %q", article.URL)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	r := New(nil, 5*time.Second)
	if _, err := r.Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestTitleOfFallsBackToHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := New(nil, 5*time.Second)
	got := r.TitleOf(context.Background(), srv.URL+"/page")
	want := strings.TrimPrefix(srv.URL, "http://")
	if got != want {
		t.Errorf("TitleOf = %q, want host %q", got, want)
	}
}
