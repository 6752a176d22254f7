// Package reader fetches a story's linked page and extracts the readable
// article text for in-app viewing.
package reader

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// Article is the extracted readable view of a page.
type Article struct {
	Title    string
	Byline   string
	SiteName string
	Text     string
	Excerpt  string
	URL      string
}

// Reader extracts articles from web pages.
type Reader struct {
	client  *http.Client
	timeout time.Duration
}

// New creates a reader. A nil client uses http.DefaultClient.
func New(client *http.Client, timeout time.Duration) *Reader {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Reader{client: client, timeout: timeout}
}

// Fetch downloads the page and runs readability extraction on it.
func (r *Reader) Fetch(ctx context.Context, pageURL string) (Article, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("parsing url: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return Article{}, err
	}
	req.Header.Set("User-Agent", "Hackeroso/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Article{}, fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	parsed.Fragment = ""
	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return Article{}, fmt.Errorf("extracting article: %w", err)
	}

	return Article{
		Title:    strings.TrimSpace(article.Title),
		Byline:   strings.TrimSpace(article.Byline),
		SiteName: strings.TrimSpace(article.SiteName),
		Text:     strings.TrimSpace(article.TextContent),
		Excerpt:  strings.TrimSpace(article.Excerpt),
		URL:      pageURL,
	}, nil
}

// TitleOf fetches a page and returns its extracted title, falling back to
// the URL host when extraction comes up empty.
func (r *Reader) TitleOf(ctx context.Context, pageURL string) string {
	article, err := r.Fetch(ctx, pageURL)
	if err != nil || article.Title == "" {
		if parsed, perr := url.Parse(pageURL); perr == nil && parsed.Host != "" {
			return parsed.Host
		}
		return pageURL
	}
	return article.Title
}
