package pipeline

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"
)

const (
	defaultFeedTitle       = "News Relay"
	defaultFeedDescription = "Aggregated news items"
	defaultFeedLanguage    = "en"
	defaultFeedLink        = "https://example.com/"
)

// BuildFeed serializes the collected items as one RSS document. An empty
// item list still produces a valid feed with an empty channel.
func BuildFeed(items []Item, cfg *Config, now time.Time) (string, error) {
	title := cfg.Title
	if title == "" {
		title = defaultFeedTitle
	}
	description := cfg.Description
	if description == "" {
		description = defaultFeedDescription
	}
	language := cfg.Language
	if language == "" {
		language = defaultFeedLanguage
	}
	link := cfg.Link
	if link == "" {
		link = defaultFeedLink
	}

	feed := &feeds.Feed{
		Title:       title,
		Description: description,
		Link:        &feeds.Link{Href: link},
		Created:     now,
	}
	for _, it := range items {
		fi := &feeds.Item{
			Title:       it.Title,
			Link:        &feeds.Link{Href: it.Link},
			Id:          it.Link,
			Description: it.Summary,
		}
		if it.Published != nil {
			fi.Created = *it.Published
		}
		feed.Items = append(feed.Items, fi)
	}

	rss := (&feeds.Rss{Feed: feed}).RssFeed()
	rss.Language = language
	out, err := feeds.ToXML(rss)
	if err != nil {
		return "", fmt.Errorf("serializing feed: %w", err)
	}
	return out, nil
}
