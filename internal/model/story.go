package model

import (
	"fmt"
	"net/url"
	"time"
)

// Feed identifies one of the Hacker News story listings.
type Feed string

const (
	FeedTop  Feed = "top"
	FeedNew  Feed = "new"
	FeedBest Feed = "best"
	FeedAsk  Feed = "ask"
	FeedShow Feed = "show"
	FeedJob  Feed = "job"
)

// Feeds in display order.
var Feeds = []Feed{FeedTop, FeedNew, FeedBest, FeedAsk, FeedShow, FeedJob}

// Story is the canonical normalized record for an external content item.
// Every adapter (HN Firebase, Algolia search, GitHub trending) produces
// this shape; views and the task manager never see upstream field names.
type Story struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	URL      string    `json:"url,omitempty"`
	Author   string    `json:"author"`
	Score    int       `json:"score"`
	Comments int       `json:"comments"`
	Time     time.Time `json:"time"`
	Kind     string    `json:"kind"` // story, ask, job, comment, repo
}

// ItemURL returns the canonical HN discussion URL for the story.
func (s *Story) ItemURL() string {
	return fmt.Sprintf("https://news.ycombinator.com/item?id=%s", s.ID)
}

// Domain returns the hostname of the story URL, or empty for self posts.
func (s *Story) Domain() string {
	if s.URL == "" {
		return ""
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Comment is one node of an item's comment tree.
type Comment struct {
	ID       string    `json:"id"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	Time     time.Time `json:"time"`
	Depth    int       `json:"depth"`
	Children []Comment `json:"children,omitempty"`
}

// User is a Hacker News user profile.
type User struct {
	ID        string    `json:"id"`
	Karma     int       `json:"karma"`
	About     string    `json:"about,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Submitted []int     `json:"submitted,omitempty"`
}
