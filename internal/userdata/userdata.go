// Package userdata serializes the viewer's profile for export and import.
// The document is plain JSON so it can be inspected and edited by hand;
// missing collections decode as empty rather than failing the import.
package userdata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lpolish/hackeroso/internal/model"
)

// Encode writes the profile as indented JSON.
func Encode(w io.Writer, data model.UserData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalize(data)); err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return nil
}

// Decode parses a profile document. Malformed JSON is rejected outright;
// a valid document with absent collections yields empty ones.
func Decode(r io.Reader) (model.UserData, error) {
	var data model.UserData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return model.UserData{}, fmt.Errorf("parsing profile: %w", err)
	}
	return normalize(data), nil
}

// WriteFile exports the profile to path.
func WriteFile(path string, data model.UserData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, data); err != nil {
		return err
	}
	return f.Close()
}

// ReadFile imports a profile from path.
func ReadFile(path string) (model.UserData, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.UserData{}, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// DefaultExportName returns a timestamped filename for exports.
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("hackeroso-export-%s.json", now.Format("2006-01-02"))
}

// normalize replaces nil collections with empty ones so exports always
// contain every key and imports never leave nil slices behind.
func normalize(data model.UserData) model.UserData {
	if data.Tasks == nil {
		data.Tasks = []model.Task{}
	}
	if data.SavedItems == nil {
		data.SavedItems = []model.SavedItem{}
	}
	if data.Lists == nil {
		data.Lists = []model.List{}
	}
	if data.Follows == nil {
		data.Follows = []string{}
	}
	return data
}
