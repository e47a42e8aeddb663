package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

const (
	defaultTitleSelector   = "h1"
	defaultDateSelector    = "time"
	defaultSummarySelector = "p"
	defaultMaxFromSource   = 20
)

// collectScrapeSource fetches a source's listing page, extracts article
// links, and scrapes each article. A blocked or misconfigured source
// yields no items and no error; a failed listing fetch is the one error
// that fails the whole source.
func collectScrapeSource(src SourceConfig, f *Fetcher) ([]Item, error) {
	if src.ListURL == "" || src.ItemLinkSelector == "" {
		warnf("source %s: missing list_url or item_link_selector, skipping", src.Name)
		return nil, nil
	}

	body, err := f.Fetch(src.ListURL)
	if err != nil {
		if errors.Is(err, ErrBlocked) {
			infof("source %s: listing blocked, skipping", src.Name)
			return nil, nil
		}
		return nil, fmt.Errorf("source %s: listing fetch: %w", src.Name, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("source %s: parsing listing: %w", src.Name, err)
	}

	maxItems := src.MaxFromSource
	if maxItems <= 0 {
		maxItems = defaultMaxFromSource
	}
	links := extractArticleLinks(doc, src, maxItems)
	if len(links) == 0 {
		warnf("source %s: no article links matched %q", src.Name, src.ItemLinkSelector)
		return nil, nil
	}

	return fetchArticles(src, f, links), nil
}

// extractArticleLinks pulls hrefs matching the link selector, resolves
// them against the listing URL, and dedupes within the page, keeping the
// first occurrence of each link up to the source's limit.
func extractArticleLinks(doc *goquery.Document, src SourceConfig, max int) []string {
	seen := make(map[string]bool)
	var links []string
	doc.Find(src.ItemLinkSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok {
			return true
		}
		link := stripTrackingParams(resolveURL(src.ListURL, strings.TrimSpace(href)))
		if link == "" || seen[link] {
			return true
		}
		seen[link] = true
		links = append(links, link)
		return len(links) < max
	})
	return links
}

// fetchArticles scrapes every article link, sequentially by default or
// with a small worker pool when the source asks for concurrency. Order
// of results is not significant here; the aggregate sort settles it.
func fetchArticles(src SourceConfig, f *Fetcher, links []string) []Item {
	if src.Concurrency <= 1 {
		var items []Item
		for _, link := range links {
			if it, ok := scrapeArticle(src, f, link); ok {
				items = append(items, it)
			}
		}
		return items
	}

	jobs := make(chan string)
	results := make(chan Item, len(links))
	var wg sync.WaitGroup
	for i := 0; i < src.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for link := range jobs {
				if it, ok := scrapeArticle(src, f, link); ok {
					results <- it
				}
			}
		}()
	}
	for _, link := range links {
		jobs <- link
	}
	close(jobs)
	wg.Wait()
	close(results)

	var items []Item
	for it := range results {
		items = append(items, it)
	}
	return items
}

// scrapeArticle fetches one article page and extracts title, summary and
// date with the source's selectors. Failures cost only this article.
func scrapeArticle(src SourceConfig, f *Fetcher, link string) (Item, bool) {
	body, err := f.Fetch(link)
	if err != nil {
		if !errors.Is(err, ErrBlocked) {
			warnf("source %s: article %s: %v", src.Name, link, err)
		}
		return Item{}, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		warnf("source %s: article %s: parse: %v", src.Name, link, err)
		return Item{}, false
	}

	titleSel := src.ItemTitleSelector
	if titleSel == "" {
		titleSel = defaultTitleSelector
	}
	title := normalizeWhitespace(doc.Find(titleSel).First().Text())
	if title == "" {
		warnf("source %s: article %s: no title matched %q", src.Name, link, titleSel)
		return Item{}, false
	}

	summarySel := src.ItemSummarySelector
	if summarySel == "" {
		summarySel = defaultSummarySelector
	}
	var parts []string
	doc.Find(summarySel).Each(func(_ int, s *goquery.Selection) {
		if txt := normalizeWhitespace(s.Text()); txt != "" {
			parts = append(parts, txt)
		}
	})
	summary := truncateSummary(strings.Join(parts, " "))

	dateSel := src.ItemDateSelector
	if dateSel == "" {
		dateSel = defaultDateSelector
	}
	dateNode := doc.Find(dateSel).First()
	raw, ok := dateNode.Attr("datetime")
	if !ok || strings.TrimSpace(raw) == "" {
		raw = dateNode.Text()
	}

	return Item{
		Source:    src.Name,
		Title:     title,
		Summary:   summary,
		Link:      link,
		Published: normalizeDate(raw),
	}, true
}
