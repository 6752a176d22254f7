// Package trending is the GitHub search API adapter for the trending
// repositories listing: repos created in the last seven days, most
// starred first.
package trending

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lpolish/hackeroso/internal/model"
)

const BaseURL = "https://api.github.com"

const trendingWindow = 7 * 24 * time.Hour

type searchResponse struct {
	Items []struct {
		ID              int64  `json:"id"`
		Name            string `json:"name"`
		FullName        string `json:"full_name"`
		HTMLURL         string `json:"html_url"`
		Description     string `json:"description"`
		StargazersCount int    `json:"stargazers_count"`
		ForksCount      int    `json:"forks_count"`
		Language        string `json:"language"`
		CreatedAt       string `json:"created_at"`
		Owner           struct {
			Login string `json:"login"`
		} `json:"owner"`
	} `json:"items"`
}

// Client fetches trending repositories.
type Client struct {
	client  *http.Client
	baseURL string
	now     func() time.Time
}

// NewClient creates a trending client with the given HTTP client.
func NewClient(client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{client: client, baseURL: BaseURL, now: time.Now}
}

// NewClientWithBaseURL creates a client with a custom base URL (for testing).
func NewClientWithBaseURL(client *http.Client, baseURL string) *Client {
	c := NewClient(client)
	c.baseURL = baseURL
	return c
}

// Trending returns repositories created within the last seven days,
// sorted by stars descending.
func (c *Client) Trending(ctx context.Context) ([]model.Repo, error) {
	since := c.now().Add(-trendingWindow).Format("2006-01-02")
	query := fmt.Sprintf("created:>%s sort:stars-desc", since)
	u := fmt.Sprintf("%s/search/repositories?q=%s&sort=stars&order=desc",
		c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "Hackeroso/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching trending repositories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github search returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding github response: %w", err)
	}

	repos := make([]model.Repo, 0, len(body.Items))
	for _, item := range body.Items {
		created, _ := time.Parse(time.RFC3339, item.CreatedAt)
		repos = append(repos, model.Repo{
			ID:          strconv.FormatInt(item.ID, 10),
			Name:        item.Name,
			FullName:    item.FullName,
			HTMLURL:     item.HTMLURL,
			Description: item.Description,
			Stars:       item.StargazersCount,
			Forks:       item.ForksCount,
			Language:    item.Language,
			Owner:       item.Owner.Login,
			CreatedAt:   created,
		})
	}
	return repos, nil
}
