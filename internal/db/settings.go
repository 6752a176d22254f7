package db

import (
	"database/sql"
	"strconv"

	"github.com/lpolish/hackeroso/internal/model"
)

// SaveSettings upserts the viewer's preferences as key/value rows.
func (db *DB) SaveSettings(s model.Settings) error {
	pairs := map[string]string{
		"user_name":     s.UserName,
		"theme":         s.Theme,
		"view_mode":     s.ViewMode,
		"last_tab":      s.LastTab,
		"project_name":  s.ProjectName,
		"notifications": strconv.FormatBool(s.Notifications),
		"sound":         strconv.FormatBool(s.Sound),
	}
	return db.Transaction(func(tx *sql.Tx) error {
		for k, v := range pairs {
			_, err := tx.Exec(`
				INSERT INTO settings (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, k, v)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadSettings returns the stored preferences, falling back to defaults for
// any key that has never been written.
func (db *DB) LoadSettings() (model.Settings, error) {
	s := model.DefaultSettings()

	rows, err := db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return s, err
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return s, err
		}
		switch k {
		case "user_name":
			s.UserName = v
		case "theme":
			s.Theme = v
		case "view_mode":
			s.ViewMode = v
		case "last_tab":
			s.LastTab = v
		case "project_name":
			s.ProjectName = v
		case "notifications":
			s.Notifications = v == "true"
		case "sound":
			s.Sound = v == "true"
		}
	}
	return s, rows.Err()
}
