package pipeline

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrBlocked reports that the remote server refused access (HTTP 403 or
// an equivalent transport error). Blocked fetches are never retried:
// retrying a refusal will not help, unlike a transient fault.
var ErrBlocked = errors.New("access denied by remote server")

// Several sources actively reject non-browser clients, so requests
// impersonate a common desktop browser.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Fetcher retrieves URLs with retry and a fixed backoff between attempts.
type Fetcher struct {
	Client     *http.Client
	UserAgent  string
	MaxRetries int
	Backoff    time.Duration
}

// NewFetcher builds a Fetcher from the run configuration, with a shared
// HTTP client so connection pooling works across sources.
func NewFetcher(cfg FetchConfig) *Fetcher {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Fetcher{
		Client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		UserAgent:  defaultUserAgent,
		MaxRetries: cfg.MaxRetries,
		Backoff:    time.Duration(cfg.BackoffSeconds) * time.Second,
	}
}

// Fetch returns the raw body of a URL. A 403 (or an error whose text says
// forbidden) returns ErrBlocked immediately. Any other failure is retried
// up to MaxRetries times; after that the last error is returned and the
// caller decides whether it kills one article or the whole source.
func (f *Fetcher) Fetch(url string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= f.MaxRetries; attempt++ {
		if attempt > 0 {
			infof("retrying %s (attempt %d/%d)", url, attempt+1, f.MaxRetries+1)
			time.Sleep(f.Backoff)
		}

		body, err := f.fetchOnce(url)
		if err == nil {
			return body, nil
		}
		if errors.Is(err, ErrBlocked) || isBlockedError(err) {
			infof("skipping %s: %v", url, ErrBlocked)
			return "", ErrBlocked
		}
		warnf("fetch %s: %v", url, err)
		lastErr = err
	}
	return "", lastErr
}

func (f *Fetcher) fetchOnce(url string) (string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.google.com/")

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return "", ErrBlocked
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("GET %s: status %s", url, resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(b), nil
}

// isBlockedError catches transport errors whose text indicates an
// access-denied response rather than a transient fault.
func isBlockedError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "403") || strings.Contains(msg, "forbidden")
}
