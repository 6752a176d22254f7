package views

import (
	"testing"

	"github.com/lpolish/hackeroso/internal/model"
	"github.com/lpolish/hackeroso/internal/task"
)

// stubStore is an in-memory task.Store so view tests run without sqlite.
type stubStore struct{}

func (stubStore) LoadTasks() ([]model.Task, error)           { return nil, nil }
func (stubStore) ReplaceTasks([]model.Task) error            { return nil }
func (stubStore) LoadSavedItems() ([]model.SavedItem, error) { return nil, nil }
func (stubStore) ReplaceSavedItems([]model.SavedItem) error  { return nil }
func (stubStore) LoadLists() ([]model.List, error)           { return nil, nil }
func (stubStore) ReplaceLists([]model.List) error            { return nil }
func (stubStore) LoadFollows() ([]string, error)             { return nil, nil }
func (stubStore) ReplaceFollows([]string) error              { return nil }
func (stubStore) LoadSettings() (model.Settings, error)      { return model.DefaultSettings(), nil }
func (stubStore) SaveSettings(model.Settings) error          { return nil }
func (stubStore) Reset() error                               { return nil }

func newViewManager(t *testing.T) *task.Manager {
	t.Helper()
	m, err := task.NewManager(stubStore{})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestTrackKeyTogglesTask(t *testing.T) {
	manager := newViewManager(t)
	v := &StoriesView{tasks: manager}
	story := model.Story{ID: "41", Title: "Show HN: Hackeroso", URL: "https://example.com/x"}

	if got := v.trackStory(story); got != "Tracking as task" {
		t.Fatalf("first track = %q, want tracking", got)
	}
	if !manager.IsTask(story.URL) {
		t.Fatal("story must be tracked after first press")
	}

	if got := v.trackStory(story); got != "Untracked" {
		t.Fatalf("second track = %q, want untracked", got)
	}
	if manager.IsTask(story.URL) {
		t.Fatal("story must be untracked after second press")
	}
	if len(manager.Tasks()) != 0 {
		t.Fatal("untracking must remove the task")
	}
}

func TestTrackKeyFallsBackToItemURL(t *testing.T) {
	manager := newViewManager(t)
	v := &StoriesView{tasks: manager}
	ask := model.Story{ID: "42", Title: "Ask HN: favorite editor?"}

	v.trackStory(ask)
	if !manager.IsTask(ask.ItemURL()) {
		t.Fatal("url-less stories track under their HN item url")
	}
	v.trackStory(ask)
	if manager.IsTask(ask.ItemURL()) {
		t.Fatal("toggle must untrack the HN item url too")
	}
}
