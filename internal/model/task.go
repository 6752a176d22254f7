package model

import (
	"time"
)

// Status represents the current state of a task
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
)

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Source tags where a task came from
type Source string

const (
	SourceCustom     Source = "custom"
	SourceHackerNews Source = "hackernews"
	SourceGitHub     Source = "github"
	SourceSaved      Source = "saved"
)

// Task is a locally tracked unit of work with a timer, optionally linked
// to an external story or repository URL.
type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Priority         Priority   `json:"priority"`
	Status           Status     `json:"status"`
	ExpectedDuration int        `json:"expectedDuration"` // Minutes
	Source           Source     `json:"source"`
	ProjectID        string     `json:"projectId"`
	CreatedAt        time.Time  `json:"createdAt"`
	StartedAt        *time.Time `json:"startedAt,omitempty"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	URL              string     `json:"url,omitempty"`
	IsPaused         bool       `json:"isPaused,omitempty"`
	AccumulatedTime  int64      `json:"accumulatedTime"` // Milliseconds
	LastPausedAt     *time.Time `json:"lastPausedAt,omitempty"`
	Notifications    bool       `json:"notificationsEnabled"`
}

// IsRunningActive reports whether the task's timer is live: running and
// not paused.
func (t *Task) IsRunningActive() bool {
	return t.Status == StatusRunning && !t.IsPaused
}

// ExpectedMillis returns the expected duration in milliseconds.
func (t *Task) ExpectedMillis() int64 {
	return int64(t.ExpectedDuration) * 60 * 1000
}

// Elapsed returns total running time in milliseconds as of now: the frozen
// accumulated time, plus the live interval when running and unpaused.
func (t *Task) Elapsed(now time.Time) int64 {
	if t.IsRunningActive() && t.StartedAt != nil {
		return t.AccumulatedTime + now.Sub(*t.StartedAt).Milliseconds()
	}
	return t.AccumulatedTime
}

// Overdue reports whether the task has run past its expected duration.
func (t *Task) Overdue(now time.Time) bool {
	if t.Status == StatusCompleted || t.ExpectedDuration <= 0 {
		return false
	}
	return t.Elapsed(now) >= t.ExpectedMillis()
}

// PriorityWeight returns a numeric weight for sorting by priority
func (t *Task) PriorityWeight() int {
	switch t.Priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 2
	}
}
