package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
title: "Test Relay"
max_items: 10
keywords: [carbon, climate]
exclude_keywords: [sponsored]
fetch:
  max_retries: 1
  backoff_seconds: 1
  timeout_seconds: 5
sources:
  - name: site
    list_url: "https://example.com/news/"
    item_link_selector: "h2 a"
  - name: wire
    type: feed
    url: "https://example.com/rss.xml"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Title != "Test Relay" || cfg.MaxItems != 10 {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(cfg.Sources))
	}
	if cfg.Sources[0].Type != SourceTypeScrape {
		t.Errorf("omitted type = %q, want %q default", cfg.Sources[0].Type, SourceTypeScrape)
	}
	if cfg.Sources[1].Type != SourceTypeFeed {
		t.Errorf("type = %q, want %q", cfg.Sources[1].Type, SourceTypeFeed)
	}
	if cfg.Fetch.MaxRetries != 1 || cfg.Fetch.TimeoutSeconds != 5 {
		t.Errorf("fetch = %+v", cfg.Fetch)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `sources: []`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxItems != defaultMaxItems {
		t.Errorf("MaxItems = %d, want %d", cfg.MaxItems, defaultMaxItems)
	}
	if cfg.Output != "feed.xml" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.Fetch.MaxRetries != 2 || cfg.Fetch.BackoffSeconds != 3 || cfg.Fetch.TimeoutSeconds != 20 {
		t.Errorf("fetch defaults = %+v", cfg.Fetch)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("missing file must fail")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := writeConfig(t, "sources: [unclosed")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("malformed YAML must fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"negative max_items", Config{MaxItems: -1}, ErrInvalidMaxItems},
		{"negative hours_back", Config{HoursBack: -1}, ErrInvalidHoursBack},
		{"negative retries", Config{Fetch: FetchConfig{MaxRetries: -1}}, ErrInvalidMaxRetries},
		{"negative backoff", Config{Fetch: FetchConfig{BackoffSeconds: -1}}, ErrInvalidBackoff},
		{"negative timeout", Config{Fetch: FetchConfig{TimeoutSeconds: -1}}, ErrInvalidTimeout},
		{"zero values ok", Config{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
