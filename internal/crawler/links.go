package crawler

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/samvad-site-scraper/internal/urlnorm"
)

// ExtractLinks returns the distinct internal links of a page, in first-seen order.
// base is the page's own URL; relative, protocol-relative and fragment-only targets
// resolve against it.
func ExtractLinks(body []byte, base urlnorm.NormalizedURL, baseDomain string) ([]urlnorm.NormalizedURL, error) {
	baseURL, err := url.Parse(string(base))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", urlnorm.ErrInvalidURL, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	seen := make(map[urlnorm.NormalizedURL]struct{})
	var links []urlnorm.NormalizedURL
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		link, ok := resolveLink(baseURL, href, baseDomain)
		if !ok {
			return
		}
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})
	return links, nil
}

// resolveLink turns an href into an internal NormalizedURL. Anything that fails to parse,
// is not http(s), or leaves the site is dropped.
func resolveLink(base *url.URL, href, baseDomain string) (urlnorm.NormalizedURL, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	link, err := urlnorm.Normalize(resolved.String())
	if err != nil {
		return "", false
	}
	if !urlnorm.IsInternal(link, baseDomain) {
		return "", false
	}
	return link, true
}
