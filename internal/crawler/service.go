package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/samvad-site-scraper/internal/domain"
	"github.com/samvad-hq/samvad-site-scraper/internal/extract"
	"github.com/samvad-hq/samvad-site-scraper/internal/logger"
	"github.com/samvad-hq/samvad-site-scraper/internal/urlnorm"
)

// Options tunes a scrape run.
type Options struct {
	MaxPages int
	// Delay is waited after every crawl fetch and after every extraction.
	Delay    time.Duration
	Progress ProgressFunc
}

// Service runs the crawl phase followed by the extraction phase for one site.
type Service struct {
	fetcher   PageFetcher
	extractor ContentExtractor
	opts      Options
	log       logger.Logger
}

// NewService wires the pipeline driver.
func NewService(fetcher PageFetcher, extractor ContentExtractor, opts Options, log logger.Logger) *Service {
	if extractor == nil {
		extractor = extract.NewExtractor(nil)
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	return &Service{
		fetcher:   fetcher,
		extractor: extractor,
		opts:      opts,
		log:       log,
	}
}

// Scrape crawls the site at rawURL and extracts every discovered page.
// Per-page failures are logged and skipped; only a bad or unreachable root is returned as an error.
func (s *Service) Scrape(ctx context.Context, rawURL string) (domain.ScrapeResult, error) {
	if s == nil || s.fetcher == nil {
		return domain.ScrapeResult{}, fmt.Errorf("scrape service is not initialized")
	}

	root, err := urlnorm.Normalize(rawURL)
	if err != nil {
		return domain.ScrapeResult{}, fmt.Errorf("normalize root url: %w", err)
	}

	crawler := NewCrawler(s.fetcher, s.opts.MaxPages, s.opts.Delay, s.log)
	urls, err := crawler.Discover(ctx, root)
	if err != nil {
		return domain.ScrapeResult{}, fmt.Errorf("crawl %s: %w", root, err)
	}

	items, err := s.extractAll(ctx, urls)
	if err != nil {
		return domain.ScrapeResult{}, err
	}

	s.log.InfoObj("site scraped", "scrape_result", map[string]any{
		"site":       string(root),
		"discovered": len(urls),
		"items":      len(items),
	})
	return domain.ScrapeResult{Site: string(root), Items: items}, nil
}

func (s *Service) extractAll(ctx context.Context, urls []urlnorm.NormalizedURL) ([]domain.ExtractionRecord, error) {
	items := make([]domain.ExtractionRecord, 0, len(urls))

	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if rec, ok := s.extractOne(ctx, u); ok {
			items = append(items, rec)
		}
		if s.opts.Progress != nil {
			s.opts.Progress(i+1, len(urls), string(u))
		}

		if err := sleepCtx(ctx, s.opts.Delay); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *Service) extractOne(ctx context.Context, u urlnorm.NormalizedURL) (domain.ExtractionRecord, bool) {
	body, err := s.fetcher.Fetch(ctx, string(u), PhaseExtract)
	if err != nil {
		s.log.WarnObj("extraction fetch failed", "extract_error", map[string]any{
			"url":   string(u),
			"phase": string(PhaseExtract),
			"error": err.Error(),
		})
		return domain.ExtractionRecord{}, false
	}

	art, err := s.extractor.Extract(body, string(u))
	if errors.Is(err, extract.ErrNoContent) {
		s.log.DebugObj("no content extracted", "extract_empty", map[string]any{
			"url":    string(u),
			"reason": err.Error(),
		})
		return domain.ExtractionRecord{}, false
	}
	if err != nil {
		s.log.WarnObj("content extraction failed", "extract_error", map[string]any{
			"url":   string(u),
			"phase": string(PhaseExtract),
			"error": err.Error(),
		})
		return domain.ExtractionRecord{}, false
	}

	rec := domain.ExtractionRecord{
		Title:       art.Title,
		Content:     art.Markdown,
		ContentType: extract.Classify(string(u), art.Title),
		SourceURL:   string(u),
	}
	s.log.DebugObj("page extracted", "extract_page", map[string]any{
		"url":            rec.SourceURL,
		"content_type":   rec.ContentType,
		"title_strategy": art.TitleStrategy,
		"content_bytes":  len(rec.Content),
	})
	return rec, true
}
