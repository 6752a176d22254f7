package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Defaults()
	if cfg.FeedLimit != want.FeedLimit || cfg.LogLevel != want.LogLevel {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "feed_limit: 10\nlog_level: debug\nrefresh_spec: \"*/1 * * * *\"\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FeedLimit != 10 {
		t.Errorf("feed_limit = %d, want 10", cfg.FeedLimit)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log_level = %q, want debug", cfg.LogLevel)
	}
	// Untouched fields keep defaults.
	if cfg.FetchTimeoutSec != Defaults().FetchTimeoutSec {
		t.Errorf("fetch timeout changed unexpectedly: %d", cfg.FetchTimeoutSec)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("feed_limit: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for feed_limit 0")
	}
}

func TestEnvOverridesDBPath(t *testing.T) {
	t.Setenv("HACKEROSO_DB", "/tmp/override.db")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBPath != "/tmp/override.db" {
		t.Errorf("db path = %q, want env override", cfg.DBPath)
	}
}
