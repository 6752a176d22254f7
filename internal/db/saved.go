package db

import (
	"database/sql"

	"github.com/lpolish/hackeroso/internal/model"
)

// ReplaceSavedItems rewrites the saved_items table to mirror the in-memory
// collection.
func (db *DB) ReplaceSavedItems(items []model.SavedItem) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM saved_items`); err != nil {
			return err
		}
		stmt, err := tx.Prepare(`
			INSERT INTO saved_items (id, title, url, list_id, author,
			                         created_at, points, comments, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, item := range items {
			var listID interface{}
			if item.ListID != nil {
				listID = *item.ListID
			}
			_, err := stmt.Exec(
				item.ID, item.Title, item.URL, listID,
				nullString(item.Author), formatTime(item.CreatedAt),
				item.Points, item.Comments, i,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadSavedItems returns the stored saved items in their persisted order.
func (db *DB) LoadSavedItems() ([]model.SavedItem, error) {
	rows, err := db.Query(`
		SELECT id, title, url, list_id, author, created_at, points, comments
		FROM saved_items
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.SavedItem
	for rows.Next() {
		var item model.SavedItem
		var listID, author *string
		var createdAt string
		if err := rows.Scan(&item.ID, &item.Title, &item.URL, &listID,
			&author, &createdAt, &item.Points, &item.Comments); err != nil {
			return nil, err
		}
		item.ListID = listID
		if author != nil {
			item.Author = *author
		}
		item.CreatedAt = parseTime(createdAt)
		items = append(items, item)
	}
	return items, rows.Err()
}

// ReplaceLists rewrites the lists table.
func (db *DB) ReplaceLists(lists []model.List) error {
	return db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM lists`); err != nil {
			return err
		}
		for _, l := range lists {
			_, err := tx.Exec(`
				INSERT INTO lists (id, name, color, created_at)
				VALUES (?, ?, ?, ?)
			`, l.ID, l.Name, l.Color, formatTime(l.CreatedAt))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadLists returns the stored lists ordered by creation time.
func (db *DB) LoadLists() ([]model.List, error) {
	rows, err := db.Query(`
		SELECT id, name, color, created_at
		FROM lists
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []model.List
	for rows.Next() {
		var l model.List
		var createdAt string
		if err := rows.Scan(&l.ID, &l.Name, &l.Color, &createdAt); err != nil {
			return nil, err
		}
		l.CreatedAt = parseTime(createdAt)
		lists = append(lists, l)
	}
	return lists, rows.Err()
}
