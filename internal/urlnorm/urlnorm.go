// Package urlnorm canonicalizes crawl URLs and decides which of them belong to a site.
package urlnorm

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL is returned when a URL cannot be parsed into a usable absolute form.
var ErrInvalidURL = errors.New("invalid url")

// NormalizedURL is a URL string in canonical form: explicit scheme, lowercase host,
// no trailing slash (root path is "/"), query and fragment preserved.
type NormalizedURL string

func (u NormalizedURL) String() string { return string(u) }

// Normalize canonicalizes raw so that two spellings of the same page compare equal.
// A missing scheme is treated as https.
func Normalize(raw string) (NormalizedURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty url", ErrInvalidURL)
	}
	if !hasHTTPScheme(raw) {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	path := strings.TrimRight(parsed.EscapedPath(), "/")
	if path == "" {
		path = "/"
	}

	var b strings.Builder
	b.WriteString(parsed.Scheme)
	b.WriteString("://")
	if parsed.User != nil {
		b.WriteString(parsed.User.String())
		b.WriteByte('@')
	}
	b.WriteString(strings.ToLower(parsed.Host))
	b.WriteString(path)
	if parsed.RawQuery != "" {
		b.WriteByte('?')
		b.WriteString(parsed.RawQuery)
	}
	if parsed.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(parsed.EscapedFragment())
	}
	return NormalizedURL(b.String()), nil
}

// Host returns the lowercase host (including any port) of a URL, or ErrInvalidURL.
func Host(raw string) (string, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("%w: missing host in %q", ErrInvalidURL, raw)
	}
	return strings.ToLower(parsed.Host), nil
}

// IsInternal reports whether u is on baseDomain or one of its subdomains.
// Unparseable URLs and URLs without a host are never internal.
func IsInternal(u NormalizedURL, baseDomain string) bool {
	host, err := Host(string(u))
	if err != nil {
		return false
	}
	baseDomain = strings.ToLower(strings.TrimSpace(baseDomain))
	if baseDomain == "" {
		return false
	}
	return host == baseDomain || strings.HasSuffix(host, "."+baseDomain)
}

func hasHTTPScheme(raw string) bool {
	lower := strings.ToLower(raw)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
