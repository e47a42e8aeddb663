package pipeline

import "strings"

// resolveURL turns a link extracted from a listing page into an absolute
// URL, using the listing page's URL as the base. Already-absolute links
// come back unchanged.
func resolveURL(base, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if strings.HasPrefix(href, "/") {
		return baseOrigin(base) + href
	}
	return baseDir(base) + href
}

// baseOrigin returns scheme://host with no trailing slash.
func baseOrigin(base string) string {
	rest := base
	scheme := ""
	if i := strings.Index(rest, "://"); i >= 0 {
		scheme = rest[:i+3]
		rest = rest[i+3:]
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[:i]
	}
	return scheme + rest
}

// baseDir returns the base URL up to and including the last slash of its
// path, so relative links resolve against the listing page's directory.
func baseDir(base string) string {
	rest := base
	prefix := ""
	if i := strings.Index(rest, "://"); i >= 0 {
		prefix = rest[:i+3]
		rest = rest[i+3:]
	}
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		return prefix + rest[:i+1]
	}
	return prefix + rest + "/"
}
