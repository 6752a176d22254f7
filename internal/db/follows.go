package db

import (
	"database/sql"
	"time"
)

// ReplaceFollows rewrites the follows table to mirror the in-memory set of
// followed HN handles. The app has exactly one local viewer, so a handle's
// presence in the table means "followed".
func (db *DB) ReplaceFollows(handles []string) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM follows`); err != nil {
			return err
		}
		now := formatTime(time.Now())
		for _, h := range handles {
			if _, err := tx.Exec(`
				INSERT OR IGNORE INTO follows (handle, created_at) VALUES (?, ?)
			`, h, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadFollows returns the followed handles in alphabetical order.
func (db *DB) LoadFollows() ([]string, error) {
	rows, err := db.Query(`SELECT handle FROM follows ORDER BY handle`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var handles []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, rows.Err()
}
