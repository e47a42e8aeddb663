package pipeline

import "strings"

// matchesFilters reports whether an item's text passes a keyword gate.
// Exclusions win over inclusions. An empty include list accepts
// everything not excluded. Matching is case-insensitive substring search
// over the title and summary together.
func matchesFilters(title, summary string, keywords, excludeKeywords []string) bool {
	blob := strings.ToLower(title + " " + summary)

	for _, kw := range excludeKeywords {
		if strings.Contains(blob, strings.ToLower(kw)) {
			return false
		}
	}
	if len(keywords) == 0 {
		return true
	}
	for _, kw := range keywords {
		if strings.Contains(blob, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// itemPassesFilters applies the global keyword gate and, when the source
// defines its own keyword lists, that source's gate on top of it.
func itemPassesFilters(it Item, cfg *Config, src SourceConfig) bool {
	if !matchesFilters(it.Title, it.Summary, cfg.Keywords, cfg.ExcludeKeywords) {
		return false
	}
	if len(src.Keywords) > 0 || len(src.ExcludeKeywords) > 0 {
		return matchesFilters(it.Title, it.Summary, src.Keywords, src.ExcludeKeywords)
	}
	return true
}
