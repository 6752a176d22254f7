package db

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/lpolish/hackeroso/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTaskRoundTrip(t *testing.T) {
	db := openTestDB(t)

	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	paused := started.Add(20 * time.Minute)
	tasks := []model.Task{
		{
			ID:               "t1",
			Title:            "Write migration",
			Priority:         model.PriorityHigh,
			Status:           model.StatusRunning,
			ExpectedDuration: 45,
			Source:           model.SourceCustom,
			CreatedAt:        started,
			StartedAt:        &started,
			AccumulatedTime:  120000,
			Notifications:    true,
		},
		{
			ID:              "t2",
			Title:           "Review HN thread",
			Priority:        model.PriorityLow,
			Status:          model.StatusPending,
			Source:          model.SourceHackerNews,
			URL:             "https://news.ycombinator.com/item?id=1",
			CreatedAt:       started,
			IsPaused:        true,
			LastPausedAt:    &paused,
			AccumulatedTime: 0,
		},
	}

	if err := db.ReplaceTasks(tasks); err != nil {
		t.Fatalf("ReplaceTasks: %v", err)
	}
	got, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d tasks, want 2", len(got))
	}
	// Order must survive the round trip, it is the board order.
	if got[0].ID != "t1" || got[1].ID != "t2" {
		t.Fatalf("order changed: %s, %s", got[0].ID, got[1].ID)
	}
	if !reflect.DeepEqual(got[0], tasks[0]) {
		t.Errorf("task mismatch:\n got %+v\nwant %+v", got[0], tasks[0])
	}
	if got[1].LastPausedAt == nil || !got[1].LastPausedAt.Equal(paused) {
		t.Errorf("LastPausedAt = %v, want %v", got[1].LastPausedAt, paused)
	}
	if got[0].StartedAt == nil || !got[0].StartedAt.Equal(started) {
		t.Errorf("StartedAt = %v, want %v", got[0].StartedAt, started)
	}
}

func TestReplaceTasksOverwritesPreviousState(t *testing.T) {
	db := openTestDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	first := []model.Task{{ID: "a", Title: "A", Priority: model.PriorityMedium,
		Status: model.StatusPending, Source: model.SourceCustom, CreatedAt: now}}
	second := []model.Task{{ID: "b", Title: "B", Priority: model.PriorityMedium,
		Status: model.StatusPending, Source: model.SourceCustom, CreatedAt: now}}

	if err := db.ReplaceTasks(first); err != nil {
		t.Fatalf("ReplaceTasks: %v", err)
	}
	if err := db.ReplaceTasks(second); err != nil {
		t.Fatalf("ReplaceTasks: %v", err)
	}
	got, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("loaded %+v, want only task b", got)
	}
}

func TestSavedItemsAndListsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	created := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	lists := []model.List{
		{ID: "l1", Name: "Reading", Color: "#ff6600", CreatedAt: created},
		{ID: "l2", Name: "Tools", Color: "#33d17a", CreatedAt: created},
	}
	listID := "l1"
	items := []model.SavedItem{
		{ID: "100", Title: "A story", URL: "https://example.com/a",
			ListID: &listID, Author: "alice", CreatedAt: created, Points: 42, Comments: 7},
		{ID: "200", Title: "Unsorted", URL: "https://example.com/b",
			Author: "bob", CreatedAt: created},
	}

	if err := db.ReplaceLists(lists); err != nil {
		t.Fatalf("ReplaceLists: %v", err)
	}
	if err := db.ReplaceSavedItems(items); err != nil {
		t.Fatalf("ReplaceSavedItems: %v", err)
	}

	gotLists, err := db.LoadLists()
	if err != nil {
		t.Fatalf("LoadLists: %v", err)
	}
	if !reflect.DeepEqual(gotLists, lists) {
		t.Errorf("lists mismatch:\n got %+v\nwant %+v", gotLists, lists)
	}

	gotItems, err := db.LoadSavedItems()
	if err != nil {
		t.Fatalf("LoadSavedItems: %v", err)
	}
	if !reflect.DeepEqual(gotItems, items) {
		t.Errorf("items mismatch:\n got %+v\nwant %+v", gotItems, items)
	}
	if gotItems[1].ListID != nil {
		t.Errorf("unsorted item has ListID %v", *gotItems[1].ListID)
	}
}

func TestFollowsRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.ReplaceFollows([]string{"pg", "dang", "antirez"}); err != nil {
		t.Fatalf("ReplaceFollows: %v", err)
	}
	got, err := db.LoadFollows()
	if err != nil {
		t.Fatalf("LoadFollows: %v", err)
	}
	want := []string{"antirez", "dang", "pg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("follows = %v, want %v", got, want)
	}
}

func TestSettingsRoundTripAndDefaults(t *testing.T) {
	db := openTestDB(t)

	// Fresh database yields defaults.
	got, err := db.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if !reflect.DeepEqual(got, model.DefaultSettings()) {
		t.Errorf("fresh settings = %+v, want defaults", got)
	}

	want := model.Settings{
		UserName:      "ada",
		Theme:         "orange",
		ViewMode:      "list",
		LastTab:       "saved",
		ProjectName:   "Side quests",
		Notifications: true,
		Sound:         false,
	}
	if err := db.SaveSettings(want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}
	got, err = db.LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}

func TestResetEmptiesEveryTable(t *testing.T) {
	db := openTestDB(t)

	now := time.Now().UTC().Truncate(time.Second)
	if err := db.ReplaceTasks([]model.Task{{ID: "t", Title: "T",
		Priority: model.PriorityMedium, Status: model.StatusPending,
		Source: model.SourceCustom, CreatedAt: now}}); err != nil {
		t.Fatalf("ReplaceTasks: %v", err)
	}
	if err := db.ReplaceFollows([]string{"pg"}); err != nil {
		t.Fatalf("ReplaceFollows: %v", err)
	}

	if err := db.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	tasks, err := db.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks: %v", err)
	}
	follows, err := db.LoadFollows()
	if err != nil {
		t.Fatalf("LoadFollows: %v", err)
	}
	if len(tasks) != 0 || len(follows) != 0 {
		t.Errorf("tables not empty after reset: %d tasks, %d follows", len(tasks), len(follows))
	}
}
