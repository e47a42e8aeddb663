package pipeline

import (
	"fmt"
	"sort"
	"time"
)

// CollectResult carries everything a run produced: the final item list
// and the per-source errors that were absorbed along the way.
type CollectResult struct {
	Items  []Item
	Errors []string
}

// CollectAll runs every configured source, filters and dedupes the
// results, sorts newest first, and truncates to the configured maximum.
// One failing source never stops the others; its error is recorded and
// the run continues.
func CollectAll(cfg *Config, f *Fetcher) CollectResult {
	var result CollectResult
	seen := make(map[string]bool)

	for _, src := range cfg.Sources {
		var items []Item
		var err error
		switch src.Type {
		case SourceTypeScrape, "":
			items, err = collectScrapeSource(src, f)
		case SourceTypeFeed:
			items, err = collectFeedSource(src, f)
		default:
			warnf("source %s: unknown type %q, skipping", src.Name, src.Type)
			continue
		}
		if err != nil {
			errorf("%v", err)
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		for _, it := range items {
			if seen[it.Link] {
				continue
			}
			if !itemPassesFilters(it, cfg, src) {
				continue
			}
			seen[it.Link] = true
			result.Items = append(result.Items, it)
		}
		infof("source %s: %d items collected", src.Name, len(items))
	}

	if cfg.HoursBack > 0 {
		result.Items = filterItemsByHours(result.Items, cfg.HoursBack, time.Now())
	}
	sortItemsByDate(result.Items)
	if len(result.Items) > cfg.MaxItems {
		result.Items = result.Items[:cfg.MaxItems]
	}

	infof("collected %d items from %d sources", len(result.Items), len(cfg.Sources))
	return result
}

// filterItemsByHours drops dated items older than the window. Undated
// items are kept; lacking a date is not evidence of staleness.
func filterItemsByHours(items []Item, hours int, now time.Time) []Item {
	cutoff := now.Add(-time.Duration(hours) * time.Hour)
	var kept []Item
	for _, it := range items {
		if it.Published != nil && it.Published.Before(cutoff) {
			continue
		}
		kept = append(kept, it)
	}
	return kept
}

// sortItemsByDate orders newest first. Items without a date rank at
// zero, so they settle at the end; ties keep their collection order.
func sortItemsByDate(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].publishedRank() > items[j].publishedRank()
	})
}

// Summary renders the run outcome for the operator log.
func (r CollectResult) Summary() string {
	return fmt.Sprintf("%d items, %d source errors", len(r.Items), len(r.Errors))
}
