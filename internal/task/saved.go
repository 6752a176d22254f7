package task

import (
	"github.com/google/uuid"
	"github.com/lpolish/hackeroso/internal/model"
)

// SaveStory bookmarks a story. If the item carries no id one is assigned.
// Saving an already saved id is a no-op.
func (m *Manager) SaveStory(s model.Story) model.SavedItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.ID != "" {
		for _, item := range m.saved {
			if item.ID == s.ID {
				return item
			}
		}
	}

	item := model.SavedItem{
		ID:        s.ID,
		Title:     s.Title,
		URL:       s.URL,
		Author:    s.Author,
		CreatedAt: m.now(),
		Points:    s.Score,
		Comments:  s.Comments,
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.URL == "" {
		item.URL = s.ItemURL()
	}

	m.saved = append(m.saved, item)
	m.persistSaved()
	return item
}

// RemoveSavedItem removes the saved item with the given id.
func (m *Manager) RemoveSavedItem(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.saved[:0]
	for _, item := range m.saved {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	m.saved = kept
	m.persistSaved()
}

// IsSaved reports whether an item with the given id is bookmarked.
func (m *Manager) IsSaved(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.saved {
		if item.ID == id {
			return true
		}
	}
	return false
}

// SavedItems returns a copy of the saved item collection.
func (m *Manager) SavedItems() []model.SavedItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.SavedItem, len(m.saved))
	copy(out, m.saved)
	return out
}

// MoveToList files a saved item into a list; a nil listID moves it back to
// unsorted. Unknown item ids are ignored.
func (m *Manager) MoveToList(itemID string, listID *string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.saved {
		if m.saved[i].ID == itemID {
			m.saved[i].ListID = listID
			m.persistSaved()
			return
		}
	}
}

// AddList creates a named list, cycling through the palette for its color.
func (m *Manager) AddList(name string) model.List {
	m.mu.Lock()
	defer m.mu.Unlock()

	l := model.List{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     model.ListColors[len(m.lists)%len(model.ListColors)],
		CreatedAt: m.now(),
	}
	m.lists = append(m.lists, l)
	m.persistLists()
	return l
}

// RemoveList deletes a list; its items become unsorted.
func (m *Manager) RemoveList(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.lists[:0]
	for _, l := range m.lists {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	m.lists = kept

	for i := range m.saved {
		if m.saved[i].ListID != nil && *m.saved[i].ListID == id {
			m.saved[i].ListID = nil
		}
	}
	m.persistLists()
	m.persistSaved()
}

// Lists returns a copy of the list collection.
func (m *Manager) Lists() []model.List {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.List, len(m.lists))
	copy(out, m.lists)
	return out
}

// ItemsInList returns the saved items filed under the given list id; a nil
// id selects the unsorted items.
func (m *Manager) ItemsInList(listID *string) []model.SavedItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.SavedItem
	for _, item := range m.saved {
		switch {
		case listID == nil && item.ListID == nil:
			out = append(out, item)
		case listID != nil && item.ListID != nil && *item.ListID == *listID:
			out = append(out, item)
		}
	}
	return out
}
