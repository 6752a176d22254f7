package db

import (
	"database/sql"
	"time"

	"github.com/lpolish/hackeroso/internal/model"
)

// ReplaceTasks rewrites the tasks table to mirror the in-memory collection.
// The task manager owns the canonical ordering, so rows are stored with an
// explicit position and read back in the same order.
func (db *DB) ReplaceTasks(tasks []model.Task) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
			return err
		}
		stmt, err := tx.Prepare(`
			INSERT INTO tasks (id, title, priority, status, expected_duration,
			                   source, project_id, created_at, started_at,
			                   completed_at, url, is_paused, accumulated_time,
			                   last_paused_at, notifications, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, t := range tasks {
			paused := 0
			if t.IsPaused {
				paused = 1
			}
			notif := 0
			if t.Notifications {
				notif = 1
			}
			_, err := stmt.Exec(
				t.ID, t.Title, t.Priority, t.Status, t.ExpectedDuration,
				t.Source, t.ProjectID, formatTime(t.CreatedAt),
				formatTimePtr(t.StartedAt), formatTimePtr(t.CompletedAt),
				nullString(t.URL), paused, t.AccumulatedTime,
				formatTimePtr(t.LastPausedAt), notif, i,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadTasks returns the stored task collection in its persisted order.
func (db *DB) LoadTasks() ([]model.Task, error) {
	rows, err := db.Query(`
		SELECT id, title, priority, status, expected_duration, source,
		       project_id, created_at, started_at, completed_at, url,
		       is_paused, accumulated_time, last_paused_at, notifications
		FROM tasks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTaskRow(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTaskRow(s scanner) (*model.Task, error) {
	var t model.Task
	var createdAt string
	var startedAt, completedAt, lastPausedAt, url *string
	var paused, notif int

	err := s.Scan(
		&t.ID, &t.Title, &t.Priority, &t.Status, &t.ExpectedDuration,
		&t.Source, &t.ProjectID, &createdAt, &startedAt, &completedAt,
		&url, &paused, &t.AccumulatedTime, &lastPausedAt, &notif,
	)
	if err != nil {
		return nil, err
	}

	t.IsPaused = paused == 1
	t.Notifications = notif == 1
	if url != nil {
		t.URL = *url
	}
	t.CreatedAt = parseTime(createdAt)
	t.StartedAt = parseTimePtr(startedAt)
	t.CompletedAt = parseTimePtr(completedAt)
	t.LastPausedAt = parseTimePtr(lastPausedAt)

	return &t, nil
}

// Time columns are stored as RFC3339Nano text so exported rows stay
// human-readable and lossless across a round-trip.

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func parseTimePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, *s); err == nil {
		return &t
	}
	return nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
