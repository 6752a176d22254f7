package task

import (
	"github.com/lpolish/hackeroso/internal/model"
)

// The follow relation is single-tenant: there is exactly one local viewer,
// so "followed" is simple set membership on the HN handle.

// Follow marks a handle as followed by the viewer.
func (m *Manager) Follow(handle string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.follows[handle]; ok {
		return
	}
	m.follows[handle] = struct{}{}
	m.persistFollows()
}

// Unfollow removes a handle from the viewer's follow set.
func (m *Manager) Unfollow(handle string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.follows[handle]; !ok {
		return
	}
	delete(m.follows, handle)
	m.persistFollows()
}

// IsFollowing reports whether the viewer follows the handle.
func (m *Manager) IsFollowing(handle string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.follows[handle]
	return ok
}

// Follows returns the followed handles in alphabetical order.
func (m *Manager) Follows() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.followSlice()
}

// Settings returns the viewer's preferences.
func (m *Manager) Settings() model.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// UpdateSettings replaces the viewer's preferences and persists them.
func (m *Manager) UpdateSettings(s model.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
	if m.notifier != nil {
		m.notifier.SetEnabled(s.Notifications)
	}
	m.persistSettings()
}

// Snapshot captures all user data for export.
func (m *Manager) Snapshot() model.UserData {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]model.Task, len(m.tasks))
	copy(tasks, m.tasks)
	saved := make([]model.SavedItem, len(m.saved))
	copy(saved, m.saved)
	lists := make([]model.List, len(m.lists))
	copy(lists, m.lists)

	return model.UserData{
		Tasks:      tasks,
		SavedItems: saved,
		Lists:      lists,
		Follows:    m.followSlice(),
		UserName:   m.settings.UserName,
		Settings:   m.settings,
	}
}

// Restore replaces all user data from an import and writes it through.
func (m *Manager) Restore(data model.UserData) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = data.Tasks
	m.saved = data.SavedItems
	m.lists = data.Lists
	m.follows = make(map[string]struct{}, len(data.Follows))
	for _, h := range data.Follows {
		m.follows[h] = struct{}{}
	}
	if data.Settings != (model.Settings{}) {
		m.settings = data.Settings
	}
	if data.UserName != "" {
		m.settings.UserName = data.UserName
	}

	if m.notifier != nil {
		m.notifier.SetEnabled(m.settings.Notifications)
	}

	m.persistTasks()
	m.persistSaved()
	m.persistLists()
	m.persistFollows()
	m.persistSettings()
}
