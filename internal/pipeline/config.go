// Package pipeline implements the news aggregation pipeline: source-driven
// fetching with failure tolerance, selector-based extraction, keyword
// filtering, link deduplication, date-ranked ordering and RSS output.
package pipeline

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source types accepted in the config file.
const (
	SourceTypeScrape = "scrape"
	SourceTypeFeed   = "feed"
)

const defaultMaxItems = 60

// Configuration validation errors.
var (
	ErrInvalidMaxItems   = errors.New("max_items must be non-negative")
	ErrInvalidHoursBack  = errors.New("hours_back must be non-negative")
	ErrInvalidMaxRetries = errors.New("fetch.max_retries must be non-negative")
	ErrInvalidBackoff    = errors.New("fetch.backoff_seconds must be non-negative")
	ErrInvalidTimeout    = errors.New("fetch.timeout_seconds must be non-negative")
)

// SourceConfig describes one configured origin: either a listing page to
// scrape with CSS selectors, or a syndication feed URL.
//
// A source's own keyword lists, when present, act as an additional gate
// on top of the global lists, never instead of them.
type SourceConfig struct {
	Type                string   `yaml:"type"`
	Name                string   `yaml:"name"`
	ListURL             string   `yaml:"list_url"`
	URL                 string   `yaml:"url"`
	ItemLinkSelector    string   `yaml:"item_link_selector"`
	ItemTitleSelector   string   `yaml:"item_title_selector"`
	ItemDateSelector    string   `yaml:"item_date_selector"`
	ItemSummarySelector string   `yaml:"item_summary_selector"`
	MaxFromSource       int      `yaml:"max_from_source"`
	Concurrency         int      `yaml:"concurrency"`
	Keywords            []string `yaml:"keywords"`
	ExcludeKeywords     []string `yaml:"exclude_keywords"`
}

// FetchConfig tunes HTTP retrieval behavior shared by all sources.
type FetchConfig struct {
	MaxRetries     int `yaml:"max_retries"`
	BackoffSeconds int `yaml:"backoff_seconds"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Config is the top-level run configuration: the source list, the global
// keyword rules, output limits and feed channel metadata.
type Config struct {
	Sources         []SourceConfig `yaml:"sources"`
	Keywords        []string       `yaml:"keywords"`
	ExcludeKeywords []string       `yaml:"exclude_keywords"`
	MaxItems        int            `yaml:"max_items"`
	HoursBack       int            `yaml:"hours_back"`
	Title           string         `yaml:"title"`
	Description     string         `yaml:"description"`
	Language        string         `yaml:"language"`
	Link            string         `yaml:"link"`
	Output          string         `yaml:"output"`
	Fetch           FetchConfig    `yaml:"fetch"`
}

// LoadConfig reads and validates a YAML configuration file. A missing or
// malformed file is the only fatal failure in the whole system: every
// later failure is isolated to one article or one source.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Validate rejects structurally broken values. A misconfigured individual
// source is deliberately not an error here: the aggregator skips it with
// a log so one bad entry cannot abort the whole run.
func (c *Config) Validate() error {
	if c.MaxItems < 0 {
		return ErrInvalidMaxItems
	}
	if c.HoursBack < 0 {
		return ErrInvalidHoursBack
	}
	if c.Fetch.MaxRetries < 0 {
		return ErrInvalidMaxRetries
	}
	if c.Fetch.BackoffSeconds < 0 {
		return ErrInvalidBackoff
	}
	if c.Fetch.TimeoutSeconds < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.MaxItems == 0 {
		c.MaxItems = defaultMaxItems
	}
	if c.Output == "" {
		c.Output = "feed.xml"
	}
	if c.Fetch.MaxRetries == 0 {
		c.Fetch.MaxRetries = 2
	}
	if c.Fetch.BackoffSeconds == 0 {
		c.Fetch.BackoffSeconds = 3
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = 20
	}
	for i := range c.Sources {
		if c.Sources[i].Type == "" {
			c.Sources[i].Type = SourceTypeScrape
		}
	}
}
