package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/samvad-site-scraper/internal/logger"
	"github.com/samvad-hq/samvad-site-scraper/internal/urlnorm"
)

const defaultMaxPages = 50

// ErrRootUnreachable aborts a crawl whose root page cannot be fetched.
var ErrRootUnreachable = errors.New("root url unreachable")

// Crawler discovers a site's internal pages breadth-first.
type Crawler struct {
	fetcher  PageFetcher
	maxPages int
	delay    time.Duration
	log      logger.Logger
}

// NewCrawler builds a crawler bounded to maxPages discovered URLs that waits delay after each fetch.
func NewCrawler(fetcher PageFetcher, maxPages int, delay time.Duration, log logger.Logger) *Crawler {
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Crawler{fetcher: fetcher, maxPages: maxPages, delay: delay, log: log}
}

// Discover walks the site from root and returns every discovered URL in discovery order.
// The result may include URLs that were queued but never fetched once the quota is hit.
func (c *Crawler) Discover(ctx context.Context, root urlnorm.NormalizedURL) ([]urlnorm.NormalizedURL, error) {
	if c == nil || c.fetcher == nil {
		return nil, fmt.Errorf("crawler is not initialized")
	}
	baseDomain, err := urlnorm.Host(string(root))
	if err != nil {
		return nil, fmt.Errorf("root url: %w", err)
	}

	state := newCrawlState(root)
	for state.pending() > 0 && state.discoveredCount() < c.maxPages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current, _ := state.pop()
		if state.isVisited(current) {
			continue
		}

		body, err := c.fetcher.Fetch(ctx, string(current), PhaseCrawl)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if current == root {
				return nil, fmt.Errorf("%w: %s: %v", ErrRootUnreachable, root, err)
			}
			c.log.WarnObj("crawl fetch failed", "crawl_error", map[string]any{
				"url":   string(current),
				"phase": string(PhaseCrawl),
				"error": err.Error(),
			})
		} else {
			state.markVisited(current)
			c.enqueueLinks(state, current, body, baseDomain)
		}

		if err := sleepCtx(ctx, c.delay); err != nil {
			return nil, err
		}
	}

	c.log.InfoObj("crawl discovery finished", "crawl_result", map[string]any{
		"root":       string(root),
		"discovered": state.discoveredCount(),
		"visited":    state.visitedCount(),
		"pending":    state.pending(),
	})
	return state.discoveredURLs(), nil
}

func (c *Crawler) enqueueLinks(state *crawlState, page urlnorm.NormalizedURL, body []byte, baseDomain string) {
	links, err := ExtractLinks(body, page, baseDomain)
	if err != nil {
		c.log.WarnObj("link extraction failed", "crawl_error", map[string]any{
			"url":   string(page),
			"error": err.Error(),
		})
		return
	}

	added := 0
	for _, link := range links {
		if state.discoveredCount() >= c.maxPages {
			break
		}
		if state.discover(link) {
			added++
		}
	}
	c.log.DebugObj("page crawled", "crawl_page", map[string]any{
		"url":        string(page),
		"links":      len(links),
		"new_links":  added,
		"discovered": state.discoveredCount(),
	})
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
