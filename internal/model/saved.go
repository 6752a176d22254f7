package model

import (
	"time"
)

// SavedItem is a bookmarked external item, optionally filed into a list.
// A nil ListID means the item is unsorted.
type SavedItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	ListID    *string   `json:"listId"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Points    int       `json:"points,omitempty"`
	Comments  int       `json:"comments,omitempty"`
}

// List is a named, colored grouping of saved items
type List struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListColors are the colors cycled through when creating lists.
var ListColors = []string{
	"#ef4444", // red
	"#f97316", // orange
	"#f59e0b", // amber
	"#84cc16", // lime
	"#10b981", // emerald
	"#06b6d4", // cyan
	"#3b82f6", // blue
	"#8b5cf6", // violet
	"#d946ef", // fuchsia
	"#ec4899", // pink
}
