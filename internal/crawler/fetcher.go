package crawler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-site-scraper/internal/logger"
	"github.com/samvad-hq/samvad-site-scraper/internal/storage"
	"github.com/samvad-hq/samvad-site-scraper/pkg/httpclient"
)

const (
	defaultMaxBodyBytes   = 5 << 20 // 5 MiB
	defaultCrawlTimeout   = 10 * time.Second
	defaultExtractTimeout = 15 * time.Second
	maxSnippetBytes       = 512
)

var (
	// ErrFetchStatus is returned for responses outside the 2xx range.
	ErrFetchStatus = errors.New("unexpected status")
	// ErrNotHTML is returned when the server labels the body as something other than HTML.
	ErrNotHTML = errors.New("not an html page")
)

// FetcherOptions tunes HTTPFetcher.
type FetcherOptions struct {
	CrawlTimeout   time.Duration
	ExtractTimeout time.Duration
	MaxBodyBytes   int
	// Cache, when set, keeps crawl-phase bodies so the extraction phase can reuse them.
	Cache storage.Store
}

// HTTPFetcher fetches pages through an httpclient.Client with per-phase timeouts.
type HTTPFetcher struct {
	client   httpclient.Client
	timeouts map[Phase]time.Duration
	maxBody  int
	cache    storage.Store
	log      logger.Logger
}

// NewHTTPFetcher wraps client. The client carries the identifying headers.
func NewHTTPFetcher(client httpclient.Client, opts FetcherOptions, log logger.Logger) *HTTPFetcher {
	if opts.CrawlTimeout <= 0 {
		opts.CrawlTimeout = defaultCrawlTimeout
	}
	if opts.ExtractTimeout <= 0 {
		opts.ExtractTimeout = defaultExtractTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &HTTPFetcher{
		client: client,
		timeouts: map[Phase]time.Duration{
			PhaseCrawl:   opts.CrawlTimeout,
			PhaseExtract: opts.ExtractTimeout,
		},
		maxBody: opts.MaxBodyBytes,
		cache:   opts.Cache,
		log:     log,
	}
}

// Fetch returns the body of url, truncated to the configured maximum.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, phase Phase) ([]byte, error) {
	if phase == PhaseExtract && f.cache != nil {
		body, ok, err := f.cache.GetPage(url)
		if err != nil {
			f.log.WarnObj("page cache read failed", "cache_error", map[string]any{
				"url":   url,
				"error": err.Error(),
			})
		} else if ok {
			return body, nil
		}
	}

	timeout, ok := f.timeouts[phase]
	if !ok {
		return nil, fmt.Errorf("unknown fetch phase %q", phase)
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := f.client.Get(reqCtx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return nil, fmt.Errorf("%w %d body: %s", ErrFetchStatus, code, responseSnippet(resp.Body()))
	}

	if ct := resp.Header("Content-Type"); !isHTML(ct) {
		return nil, fmt.Errorf("%w: content-type %q", ErrNotHTML, ct)
	}

	body := resp.Body()
	if len(body) > f.maxBody {
		body = body[:f.maxBody]
	}

	if phase == PhaseCrawl && f.cache != nil {
		if err := f.cache.PutPage(url, body); err != nil {
			f.log.WarnObj("page cache write failed", "cache_error", map[string]any{
				"url":   url,
				"error": err.Error(),
			})
		}
	}
	return body, nil
}

// isHTML accepts a missing content type, since many servers omit it for HTML.
func isHTML(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "" {
		return true
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct == "text/html" || ct == "application/xhtml+xml"
}

func responseSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "<empty>"
	}
	if len(s) > maxSnippetBytes {
		return s[:maxSnippetBytes] + "..."
	}
	return s
}
