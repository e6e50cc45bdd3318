package crawler

import (
	"context"

	"github.com/samvad-hq/samvad-site-scraper/internal/extract"
)

// Phase names the pipeline stage a fetch belongs to. Each phase has its own timeout.
type Phase string

const (
	PhaseCrawl   Phase = "crawl"
	PhaseExtract Phase = "extract"
)

// PageFetcher retrieves the raw HTML of a page. Any failure means the caller skips the URL.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, phase Phase) ([]byte, error)
}

// ContentExtractor turns page HTML into a titled Markdown article.
type ContentExtractor interface {
	Extract(body []byte, pageURL string) (extract.Article, error)
}

// ProgressFunc is called after each extraction-phase URL is processed.
type ProgressFunc func(done, total int, url string)
