package userdata

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/lpolish/hackeroso/internal/model"
)

func sampleData() model.UserData {
	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	return model.UserData{
		Tasks: []model.Task{{
			ID:        "t1",
			Title:     "Read the RFC",
			Status:    model.StatusPending,
			Priority:  model.PriorityHigh,
			Source:    model.SourceCustom,
			CreatedAt: created,
		}},
		SavedItems: []model.SavedItem{{
			ID:        "100",
			Title:     "Show HN: Thing",
			URL:       "https://example.com",
			CreatedAt: created,
		}},
		Lists:    []model.List{{ID: "l1", Name: "Later", Color: "#ff6600", CreatedAt: created}},
		Follows:  []string{"pg"},
		UserName: "ada",
		Settings: model.DefaultSettings(),
	}
}

func TestRoundTripPreservesEverything(t *testing.T) {
	want := sampleData()

	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestDecodeTreatsMissingCollectionsAsEmpty(t *testing.T) {
	doc := `{"userName": "ada", "follows": ["pg"]}`
	got, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.UserName != "ada" || len(got.Follows) != 1 {
		t.Fatalf("decoded fields wrong: %+v", got)
	}
	if got.Tasks == nil || len(got.Tasks) != 0 {
		t.Errorf("Tasks = %v, want empty non-nil", got.Tasks)
	}
	if got.Lists == nil || len(got.Lists) != 0 {
		t.Errorf("Lists = %v, want empty non-nil", got.Lists)
	}
	if got.SavedItems == nil || len(got.SavedItems) != 0 {
		t.Errorf("SavedItems = %v, want empty non-nil", got.SavedItems)
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"tasks": [`)); err == nil {
		t.Fatal("expected error for truncated document")
	}
	if _, err := Decode(strings.NewReader(`"just a string"`)); err == nil {
		t.Fatal("expected error for non-object document")
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultExportName(time.Now()))
	want := sampleData()

	if err := WriteFile(path, want); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("file round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}
