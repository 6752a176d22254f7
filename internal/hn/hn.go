// Package hn is the Hacker News Firebase API adapter. Upstream items are
// reshaped into the canonical model.Story record at this boundary so the
// rest of the app never sees Firebase field names.
package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/lpolish/hackeroso/internal/model"
)

const BaseURL = "https://hacker-news.firebaseio.com"

// item is the raw Firebase item shape.
type item struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Type        string `json:"type"`
	Kids        []int  `json:"kids"`
	Deleted     bool   `json:"deleted"`
	Dead        bool   `json:"dead"`
}

// user is the raw Firebase user shape.
type user struct {
	ID        string `json:"id"`
	Karma     int    `json:"karma"`
	About     string `json:"about"`
	Created   int64  `json:"created"`
	Submitted []int  `json:"submitted"`
}

// Client fetches stories, comments and users from the HN API.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates an HN API client with the given HTTP client.
func NewClient(client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{
		client:  client,
		baseURL: BaseURL,
	}
}

// NewClientWithBaseURL creates a client with a custom base URL (for testing).
func NewClientWithBaseURL(client *http.Client, baseURL string) *Client {
	c := NewClient(client)
	c.baseURL = baseURL
	return c
}

// StoryIDs fetches story IDs for a feed, returning up to limit IDs.
func (c *Client) StoryIDs(ctx context.Context, feed model.Feed, limit int) ([]int, error) {
	url := fmt.Sprintf("%s/v0/%sstories.json", c.baseURL, feed)

	var ids []int
	if err := c.getJSON(ctx, url, &ids); err != nil {
		return nil, fmt.Errorf("fetching %s stories: %w", feed, err)
	}

	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids, nil
}

// Stories fetches a feed and returns its items as canonical stories,
// skipping deleted and dead entries.
func (c *Client) Stories(ctx context.Context, feed model.Feed, limit int) ([]model.Story, error) {
	ids, err := c.StoryIDs(ctx, feed, limit)
	if err != nil {
		return nil, err
	}

	stories := make([]model.Story, 0, len(ids))
	for _, id := range ids {
		it, err := c.getItem(ctx, id)
		if err != nil {
			return nil, err
		}
		if it == nil || it.Deleted || it.Dead {
			continue
		}
		stories = append(stories, storyFromItem(it))
	}
	return stories, nil
}

// Story fetches a single item as a canonical story.
func (c *Client) Story(ctx context.Context, id int) (model.Story, error) {
	it, err := c.getItem(ctx, id)
	if err != nil {
		return model.Story{}, err
	}
	if it == nil {
		return model.Story{}, fmt.Errorf("item %d not found", id)
	}
	return storyFromItem(it), nil
}

// Comments fetches the comment tree below an item, depth-first, down to
// maxDepth levels. Deleted and dead comments are pruned along with their
// subtrees.
func (c *Client) Comments(ctx context.Context, id, maxDepth int) ([]model.Comment, error) {
	root, err := c.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("item %d not found", id)
	}
	return c.commentTree(ctx, root.Kids, 0, maxDepth)
}

func (c *Client) commentTree(ctx context.Context, ids []int, depth, maxDepth int) ([]model.Comment, error) {
	if depth >= maxDepth {
		return nil, nil
	}

	var out []model.Comment
	for _, id := range ids {
		it, err := c.getItem(ctx, id)
		if err != nil {
			return nil, err
		}
		if it == nil || it.Deleted || it.Dead {
			continue
		}
		children, err := c.commentTree(ctx, it.Kids, depth+1, maxDepth)
		if err != nil {
			return nil, err
		}
		out = append(out, model.Comment{
			ID:       strconv.Itoa(it.ID),
			Author:   it.By,
			Text:     it.Text,
			Time:     time.Unix(it.Time, 0),
			Depth:    depth,
			Children: children,
		})
	}
	return out, nil
}

// User fetches a user profile.
func (c *Client) User(ctx context.Context, handle string) (model.User, error) {
	url := fmt.Sprintf("%s/v0/user/%s.json", c.baseURL, handle)

	var u *user
	if err := c.getJSON(ctx, url, &u); err != nil {
		return model.User{}, fmt.Errorf("fetching user %s: %w", handle, err)
	}
	if u == nil {
		return model.User{}, fmt.Errorf("user %s not found", handle)
	}

	return model.User{
		ID:        u.ID,
		Karma:     u.Karma,
		About:     u.About,
		CreatedAt: time.Unix(u.Created, 0),
		Submitted: u.Submitted,
	}, nil
}

// Submissions fetches up to limit of a user's submitted items as canonical
// stories (comments included, marked by kind).
func (c *Client) Submissions(ctx context.Context, u model.User, limit int) ([]model.Story, error) {
	ids := u.Submitted
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	out := make([]model.Story, 0, len(ids))
	for _, id := range ids {
		it, err := c.getItem(ctx, id)
		if err != nil {
			return nil, err
		}
		if it == nil || it.Deleted || it.Dead {
			continue
		}
		out = append(out, storyFromItem(it))
	}
	return out, nil
}

func (c *Client) getItem(ctx context.Context, id int) (*item, error) {
	url := fmt.Sprintf("%s/v0/item/%d.json", c.baseURL, id)

	// The API returns the literal null for unknown ids.
	var it *item
	if err := c.getJSON(ctx, url, &it); err != nil {
		return nil, fmt.Errorf("fetching item %d: %w", id, err)
	}
	return it, nil
}

func (c *Client) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

func storyFromItem(it *item) model.Story {
	kind := it.Type
	switch {
	case it.Type == "story" && it.URL == "":
		kind = "ask"
	case it.Type == "job":
		kind = "job"
	}
	return model.Story{
		ID:       strconv.Itoa(it.ID),
		Title:    it.Title,
		URL:      it.URL,
		Author:   it.By,
		Score:    it.Score,
		Comments: it.Descendants,
		Time:     time.Unix(it.Time, 0),
		Kind:     kind,
	}
}
