// Package task owns the canonical in-memory collections of the single
// local viewer: tasks and their timer lifecycle, saved items and lists,
// and the set of followed HN handles. Every mutation is written through
// to the store; the store holds a serialized mirror, never the truth.
package task

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lpolish/hackeroso/internal/model"
)

// Store is the persistence side-channel. Each Replace call rewrites the
// full mirror for one collection; Reset clears everything for the
// degraded recovery path.
type Store interface {
	LoadTasks() ([]model.Task, error)
	ReplaceTasks([]model.Task) error
	LoadSavedItems() ([]model.SavedItem, error)
	ReplaceSavedItems([]model.SavedItem) error
	LoadLists() ([]model.List, error)
	ReplaceLists([]model.List) error
	LoadFollows() ([]string, error)
	ReplaceFollows([]string) error
	LoadSettings() (model.Settings, error)
	SaveSettings(model.Settings) error
	Reset() error
}

// Notifier is the advisory notification side-channel. Failures are silent.
type Notifier interface {
	SendSimple(title, body string) error
	SendTaskComplete(taskTitle string) error
	SetEnabled(enabled bool)
}

// Manager maintains the task collection and its timer semantics, exposes
// CRUD plus derived queries, and synchronizes with persistence.
type Manager struct {
	mu       sync.Mutex
	store    Store
	notifier Notifier
	now      func() time.Time

	tasks    []model.Task
	saved    []model.SavedItem
	lists    []model.List
	follows  map[string]struct{}
	settings model.Settings
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock injects a clock. Tests use this to simulate wall-clock time.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithNotifier attaches the notification side-channel.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// NewManager creates a Manager and rehydrates state from the store.
func NewManager(store Store, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:   store,
		now:     time.Now,
		follows: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}

	tasks, err := store.LoadTasks()
	if err != nil {
		return nil, err
	}
	saved, err := store.LoadSavedItems()
	if err != nil {
		return nil, err
	}
	lists, err := store.LoadLists()
	if err != nil {
		return nil, err
	}
	follows, err := store.LoadFollows()
	if err != nil {
		return nil, err
	}
	settings, err := store.LoadSettings()
	if err != nil {
		return nil, err
	}

	m.tasks = tasks
	m.saved = saved
	m.lists = lists
	for _, h := range follows {
		m.follows[h] = struct{}{}
	}
	m.settings = settings
	if m.notifier != nil {
		m.notifier.SetEnabled(settings.Notifications)
	}
	return m, nil
}

// Draft is the input to Add: a task missing id, creation timestamp and
// accumulated time.
type Draft struct {
	Title            string
	Priority         model.Priority
	ExpectedDuration int
	Source           model.Source
	ProjectID        string
	URL              string
}

// Add creates a task from the draft and inserts it at the front of the
// collection (most-recent-first). The notifications flag is inherited from
// the global setting.
func (m *Manager) Add(d Draft) model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d.Priority == "" {
		d.Priority = model.PriorityMedium
	}
	if d.Source == "" {
		d.Source = model.SourceCustom
	}
	if d.ProjectID == "" {
		d.ProjectID = "default"
	}
	if d.ExpectedDuration <= 0 {
		d.ExpectedDuration = 30
	}

	t := model.Task{
		ID:               uuid.New().String(),
		Title:            d.Title,
		Priority:         d.Priority,
		Status:           model.StatusPending,
		ExpectedDuration: d.ExpectedDuration,
		Source:           d.Source,
		ProjectID:        d.ProjectID,
		CreatedAt:        m.now(),
		URL:              d.URL,
		AccumulatedTime:  0,
		Notifications:    m.settings.Notifications,
	}

	m.tasks = append([]model.Task{t}, m.tasks...)
	m.persistTasks()

	if m.settings.Notifications && m.notifier != nil {
		m.notifier.SendSimple("Task Added", `New task "`+t.Title+`" has been added.`)
	}
	return t
}

// Patch is a field-level merge for Update. Nil fields are left unchanged.
type Patch struct {
	Title            *string
	Priority         *model.Priority
	Status           *model.Status
	ExpectedDuration *int
	IsPaused         *bool
	Notifications    *bool
	ProjectID        *string
}

// Update merges the patch into the task with the given id and applies the
// timer transition rules, evaluated against the old state in precedence
// order: start, pause, resume, complete. An unknown id is a no-op so a
// stale view cannot crash the app.
func (m *Manager) Update(id string, p Patch) (model.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}

	old := m.tasks[idx]
	next := m.applyPatch(old, p)
	m.tasks[idx] = next
	m.persistTasks()
	return next, true
}

func (m *Manager) applyPatch(old model.Task, p Patch) model.Task {
	next := old
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Priority != nil {
		next.Priority = *p.Priority
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	if p.ExpectedDuration != nil {
		next.ExpectedDuration = *p.ExpectedDuration
	}
	if p.IsPaused != nil {
		next.IsPaused = *p.IsPaused
	}
	if p.Notifications != nil {
		next.Notifications = *p.Notifications
	}
	if p.ProjectID != nil {
		next.ProjectID = *p.ProjectID
	}

	// Completed tasks are immutable with respect to timer fields.
	if old.Status == model.StatusCompleted {
		next.Status = old.Status
		next.AccumulatedTime = old.AccumulatedTime
		next.StartedAt = old.StartedAt
		next.CompletedAt = old.CompletedAt
		next.IsPaused = old.IsPaused
		next.LastPausedAt = old.LastPausedAt
		return next
	}

	now := m.now()

	// Start: first transition into running while unpaused.
	if next.Status == model.StatusRunning && old.StartedAt == nil && !next.IsPaused {
		started := now
		next.StartedAt = &started
		next.LastPausedAt = nil
	}

	// Pause: freeze the live interval into accumulated time. StartedAt is
	// only held while actively running; resume stamps a fresh one.
	if next.IsPaused && !old.IsPaused && old.StartedAt != nil {
		next.AccumulatedTime = old.AccumulatedTime + now.Sub(*old.StartedAt).Milliseconds()
		paused := now
		next.LastPausedAt = &paused
		next.StartedAt = nil
	}

	// Resume: new running interval, accumulated time untouched.
	if !next.IsPaused && old.IsPaused {
		started := now
		next.StartedAt = &started
		next.LastPausedAt = nil
	}

	// Complete: terminal. Fold the final live interval, then lock all
	// timer accounting.
	if next.Status == model.StatusCompleted && old.Status != model.StatusCompleted {
		completed := now
		next.CompletedAt = &completed
		if old.Status == model.StatusRunning && old.StartedAt != nil && !old.IsPaused {
			next.AccumulatedTime = old.AccumulatedTime + now.Sub(*old.StartedAt).Milliseconds()
		}
		next.StartedAt = nil
		next.IsPaused = false
		next.LastPausedAt = nil
	}

	return next
}

// Delete removes the task with the given id. Absent ids are ignored.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
	m.persistTasks()
}

// RemoveByURL removes every task sharing the given URL.
func (m *Manager) RemoveByURL(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if t.URL != url {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
	m.persistTasks()
}

// IsTask reports whether any task links to the given URL.
func (m *Manager) IsTask(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.URL == url {
			return true
		}
	}
	return false
}

// Clear empties the task collection.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = nil
	m.persistTasks()
}

// Reorder moves a task within the sublist of its status column. Index math
// is scoped to that sublist: tasks of other statuses keep their positions.
func (m *Manager) Reorder(status model.Status, from, to int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var sub []model.Task
	for _, t := range m.tasks {
		if t.Status == status {
			sub = append(sub, t)
		}
	}
	if from < 0 || from >= len(sub) || to < 0 || to >= len(sub) || from == to {
		return
	}

	moved := sub[from]
	sub = append(sub[:from], sub[from+1:]...)
	sub = append(sub[:to], append([]model.Task{moved}, sub[to:]...)...)

	// Reassemble: non-matching tasks keep their slots, matching slots are
	// refilled in the new sublist order.
	next := make([]model.Task, 0, len(m.tasks))
	si := 0
	for _, t := range m.tasks {
		if t.Status == status {
			next = append(next, sub[si])
			si++
		} else {
			next = append(next, t)
		}
	}
	m.tasks = next
	m.persistTasks()
}

// Tasks returns a copy of the task collection in canonical order.
func (m *Manager) Tasks() []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Task returns the task with the given id.
func (m *Manager) Task(id string) (model.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	idx := m.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return m.tasks[idx], true
}

// PendingCount returns the number of tasks with status pending.
func (m *Manager) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tasks {
		if t.Status == model.StatusPending {
			n++
		}
	}
	return n
}

// Elapsed returns the task's total running time in milliseconds as of the
// manager's clock.
func (m *Manager) Elapsed(t model.Task) int64 {
	return t.Elapsed(m.now())
}

// Tick sweeps running tasks and completes any whose elapsed time has
// reached its expected duration. The transition is applied at most once
// per task: completion is terminal, so a task seen by a later sweep is
// already out of the running state. Returns the tasks completed by this
// sweep so the caller can refresh its display.
func (m *Manager) Tick() []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var completed []model.Task
	for i, t := range m.tasks {
		if !t.IsRunningActive() || t.ExpectedDuration <= 0 {
			continue
		}
		if t.Elapsed(now) < t.ExpectedMillis() {
			continue
		}
		status := model.StatusCompleted
		done := m.applyPatch(t, Patch{Status: &status})
		m.tasks[i] = done
		completed = append(completed, done)
	}

	if len(completed) == 0 {
		return nil
	}
	m.persistTasks()

	if m.notifier != nil {
		for _, t := range completed {
			if t.Notifications {
				m.notifier.SendTaskComplete(t.Title)
			}
		}
	}
	return completed
}

func (m *Manager) indexOf(id string) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// persistTasks writes the collection through to the store. On failure the
// store is reset and the save retried once; local state stays canonical
// either way.
func (m *Manager) persistTasks() {
	if err := m.store.ReplaceTasks(m.tasks); err != nil {
		slog.Warn("task save failed, resetting store", "error", err)
		if err := m.store.Reset(); err != nil {
			slog.Error("store reset failed", "error", err)
			return
		}
		if err := m.store.ReplaceTasks(m.tasks); err != nil {
			slog.Error("task save failed after reset", "error", err)
		}
	}
}

func (m *Manager) persistSaved() {
	if err := m.store.ReplaceSavedItems(m.saved); err != nil {
		slog.Warn("saved items save failed", "error", err)
	}
}

func (m *Manager) persistLists() {
	if err := m.store.ReplaceLists(m.lists); err != nil {
		slog.Warn("lists save failed", "error", err)
	}
}

func (m *Manager) persistSettings() {
	if err := m.store.SaveSettings(m.settings); err != nil {
		slog.Warn("settings save failed", "error", err)
	}
}

func (m *Manager) persistFollows() {
	if err := m.store.ReplaceFollows(m.followSlice()); err != nil {
		slog.Warn("follows save failed", "error", err)
	}
}

func (m *Manager) followSlice() []string {
	out := make([]string, 0, len(m.follows))
	for h := range m.follows {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}
