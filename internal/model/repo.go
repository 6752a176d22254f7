package model

import (
	"time"
)

// Repo is a GitHub repository from the trending listing.
type Repo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description,omitempty"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Language    string    `json:"language,omitempty"`
	Owner       string    `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
}

// Story converts the repo into the canonical story record so trending
// items flow through the same save/task paths as HN stories.
func (r *Repo) Story() Story {
	return Story{
		ID:       "gh-" + r.ID,
		Title:    r.FullName,
		URL:      r.HTMLURL,
		Author:   r.Owner,
		Score:    r.Stars,
		Comments: r.Forks,
		Time:     r.CreatedAt,
		Kind:     "repo",
	}
}
