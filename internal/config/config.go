package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Third-party API secrets are
// only ever read from the environment, never from the file.
type Config struct {
	DataDir         string `yaml:"data_dir"`
	DBPath          string `yaml:"db_path"`
	FeedLimit       int    `yaml:"feed_limit"`
	RefreshSpec     string `yaml:"refresh_spec"` // cron expression
	FetchTimeoutSec int    `yaml:"fetch_timeout_secs"`
	LogLevel        string `yaml:"log_level"`

	SupportFrom string `yaml:"support_from"`
	SupportTo   string `yaml:"support_to"`

	// From environment only.
	ResendAPIKey   string `yaml:"-"`
	HCaptchaSecret string `yaml:"-"`
}

// Defaults returns a Config with all default values set.
func Defaults() Config {
	return Config{
		FeedLimit:       30,
		RefreshSpec:     "*/5 * * * *",
		FetchTimeoutSec: 10,
		LogLevel:        "info",
		SupportFrom:     "Hackeroso Support <hello@hackeroso.com>",
		SupportTo:       "hello@hackeroso.com",
	}
}

// DefaultPath returns the default config file location.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "config.yaml")
}

// Load reads a YAML config file and returns a validated Config. A missing
// file is not an error: the defaults apply. HACKEROSO_CONFIG overrides the
// file path, HACKEROSO_DB the database path; API keys come from
// RESEND_API_KEY and HCAPTCHA_SECRET_KEY.
func Load(path string) (Config, error) {
	if envPath := os.Getenv("HACKEROSO_CONFIG"); envPath != "" {
		path = envPath
	}

	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if envDB := os.Getenv("HACKEROSO_DB"); envDB != "" {
		cfg.DBPath = envDB
	}
	cfg.ResendAPIKey = os.Getenv("RESEND_API_KEY")
	cfg.HCaptchaSecret = os.Getenv("HCAPTCHA_SECRET_KEY")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that values are usable.
func (c *Config) Validate() error {
	if c.FeedLimit <= 0 || c.FeedLimit > 100 {
		return fmt.Errorf("feed_limit %d out of range 1-100", c.FeedLimit)
	}
	if c.FetchTimeoutSec <= 0 {
		return fmt.Errorf("fetch_timeout_secs must be positive")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// FetchTimeout returns the HTTP client timeout for upstream APIs.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}
