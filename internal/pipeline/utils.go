package pipeline

import (
	"fmt"
	"html"
	"os"
	"regexp"
	"strings"
)

// Package-level compiled regexes (avoid recompiling in loops).
var (
	reScriptTags = regexp.MustCompile(`(?s)<script[^>]*>.*?</script>`)
	reHTMLTags   = regexp.MustCompile(`<[^>]*>`)
)

const (
	maxSummaryLen    = 4000
	truncationMarker = "…"
)

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateSummary caps a summary at maxSummaryLen characters, appending a
// marker so truncation stays visible in the output feed. Runes, not
// bytes: multibyte text must not be cut mid-character.
func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= maxSummaryLen {
		return s
	}
	return string(runes[:maxSummaryLen]) + truncationMarker
}

// cleanHTMLTags removes markup and decodes HTML entities from feed
// payloads, script blocks included.
func cleanHTMLTags(htmlStr string) string {
	text := reScriptTags.ReplaceAllString(htmlStr, "")
	text = reHTMLTags.ReplaceAllString(text, "")
	return html.UnescapeString(text)
}

// stripTrackingParams removes utm_* query junk some feeds attach to
// article links, which would otherwise defeat link-based deduplication.
func stripTrackingParams(link string) string {
	if idx := strings.Index(link, "?utm_"); idx > 0 {
		return link[:idx]
	}
	return link
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "WARN: "+format+"\n", args...)
}

func infof(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "INFO: "+format+"\n", args...)
}

func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
}
