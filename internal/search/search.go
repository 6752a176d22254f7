// Package search is the Algolia HN search API adapter.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lpolish/hackeroso/internal/model"
)

const BaseURL = "https://hn.algolia.com"

// hit is the raw Algolia result shape.
type hit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Author      string `json:"author"`
	Points      int    `json:"points"`
	NumComments int    `json:"num_comments"`
	CreatedAtI  int64  `json:"created_at_i"`
	StoryText   string `json:"story_text"`
}

type response struct {
	Hits    []hit `json:"hits"`
	Page    int   `json:"page"`
	NbPages int   `json:"nbPages"`
	NbHits  int   `json:"nbHits"`
}

// Result is one page of search results in canonical form.
type Result struct {
	Stories []model.Story
	Page    int
	Pages   int
	Total   int
}

// Client queries the Algolia HN search API.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a search client with the given HTTP client.
func NewClient(client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{client: client, baseURL: BaseURL}
}

// NewClientWithBaseURL creates a client with a custom base URL (for testing).
func NewClientWithBaseURL(client *http.Client, baseURL string) *Client {
	c := NewClient(client)
	c.baseURL = baseURL
	return c
}

// Search runs a query against the relevance-ranked index. Page is
// zero-based, matching the upstream API.
func (c *Client) Search(ctx context.Context, query string, page int) (Result, error) {
	if query == "" {
		return Result{}, fmt.Errorf("query is required")
	}

	u := fmt.Sprintf("%s/api/v1/search?query=%s&page=%d",
		c.baseURL, url.QueryEscape(query), page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Result{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("searching %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("search %q returned status %d", query, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, fmt.Errorf("decoding search response: %w", err)
	}

	stories := make([]model.Story, 0, len(body.Hits))
	for _, h := range body.Hits {
		kind := "story"
		if h.URL == "" && h.StoryText != "" {
			kind = "ask"
		}
		stories = append(stories, model.Story{
			ID:       h.ObjectID,
			Title:    h.Title,
			URL:      h.URL,
			Author:   h.Author,
			Score:    h.Points,
			Comments: h.NumComments,
			Time:     time.Unix(h.CreatedAtI, 0),
			Kind:     kind,
		})
	}

	return Result{
		Stories: stories,
		Page:    body.Page,
		Pages:   body.NbPages,
		Total:   body.NbHits,
	}, nil
}
