package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// collectFeedSource fetches and parses an RSS or Atom feed. Entries with
// no title or link are skipped; the rest become items capped at the
// source's limit.
func collectFeedSource(src SourceConfig, f *Fetcher) ([]Item, error) {
	if src.URL == "" {
		warnf("source %s: missing url, skipping", src.Name)
		return nil, nil
	}

	body, err := f.Fetch(src.URL)
	if err != nil {
		if errors.Is(err, ErrBlocked) {
			infof("source %s: feed blocked, skipping", src.Name)
			return nil, nil
		}
		return nil, fmt.Errorf("source %s: feed fetch: %w", src.Name, err)
	}

	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("source %s: feed parse: %w", src.Name, err)
	}

	maxItems := src.MaxFromSource
	if maxItems <= 0 {
		maxItems = defaultMaxFromSource
	}

	var items []Item
	for _, entry := range feed.Items {
		if len(items) >= maxItems {
			break
		}
		title := normalizeWhitespace(entry.Title)
		link := stripTrackingParams(strings.TrimSpace(entry.Link))
		if title == "" || link == "" {
			continue
		}
		items = append(items, Item{
			Source:    src.Name,
			Title:     title,
			Summary:   truncateSummary(feedEntrySummary(entry)),
			Link:      link,
			Published: feedEntryDate(entry),
		})
	}
	return items, nil
}

// feedEntrySummary prefers full content over the short description and
// strips any embedded markup.
func feedEntrySummary(entry *gofeed.Item) string {
	if entry.Content != "" {
		return cleanHTMLTags(entry.Content)
	}
	return cleanHTMLTags(entry.Description)
}

func feedEntryDate(entry *gofeed.Item) *time.Time {
	if entry.PublishedParsed != nil {
		u := entry.PublishedParsed.UTC()
		return &u
	}
	if entry.UpdatedParsed != nil {
		u := entry.UpdatedParsed.UTC()
		return &u
	}
	return normalizeDate(entry.Published)
}
