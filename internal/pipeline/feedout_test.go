package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestBuildFeed(t *testing.T) {
	pub := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	items := []Item{
		{Source: "a", Title: "Dated story", Link: "https://example.com/1", Summary: "body", Published: &pub},
		{Source: "b", Title: "Undated story", Link: "https://example.com/2"},
	}
	cfg := &Config{Title: "My Relay", Description: "desc", Language: "en-us", Link: "https://me.example/"}

	xml, err := BuildFeed(items, cfg, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildFeed: %v", err)
	}

	for _, want := range []string{
		"<title>My Relay</title>",
		"<language>en-us</language>",
		"<title>Dated story</title>",
		"<link>https://example.com/1</link>",
		"<guid>https://example.com/1</guid>",
		"<description>body</description>",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("feed missing %s\n%s", want, xml)
		}
	}

	// Channel pubDate plus one per dated item; the undated item has none.
	if n := strings.Count(xml, "<pubDate>"); n != 2 {
		t.Errorf("pubDate count = %d, want 2\n%s", n, xml)
	}

	// Items appear in input order.
	if strings.Index(xml, "Dated story") > strings.Index(xml, "Undated story") {
		t.Error("item order not preserved")
	}
}

func TestBuildFeedEmpty(t *testing.T) {
	xml, err := BuildFeed(nil, &Config{}, time.Now())
	if err != nil {
		t.Fatalf("BuildFeed with no items: %v", err)
	}
	if !strings.Contains(xml, "<title>"+defaultFeedTitle+"</title>") {
		t.Errorf("empty feed missing default channel title\n%s", xml)
	}
	if strings.Contains(xml, "<item>") {
		t.Error("empty feed must have no items")
	}
}

func TestBuildFeedEscaping(t *testing.T) {
	items := []Item{{Title: "AT&T <deal>", Link: "https://example.com/x"}}
	xml, err := BuildFeed(items, &Config{}, time.Now())
	if err != nil {
		t.Fatalf("BuildFeed: %v", err)
	}
	if !strings.Contains(xml, "AT&amp;T &lt;deal&gt;") {
		t.Errorf("special characters not escaped\n%s", xml)
	}
}
