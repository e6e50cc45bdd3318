package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samvad-hq/samvad-site-scraper/internal/config"
	"github.com/samvad-hq/samvad-site-scraper/internal/crawler"
	"github.com/samvad-hq/samvad-site-scraper/internal/domain"
	"github.com/samvad-hq/samvad-site-scraper/internal/extract"
	"github.com/samvad-hq/samvad-site-scraper/internal/logger"
	"github.com/samvad-hq/samvad-site-scraper/internal/storage"
	"github.com/samvad-hq/samvad-site-scraper/internal/urlnorm"
	"github.com/samvad-hq/samvad-site-scraper/pkg/httpclient"
	"github.com/samvad-hq/samvad-site-scraper/pkg/sinks"
)

// ScraperOptions overrides config for a single invocation.
type ScraperOptions struct {
	// MaxPages replaces cfg.MaxPages when positive.
	MaxPages int
	Progress crawler.ProgressFunc
	// Fetcher and Extractor replace the HTTP and trafilatura defaults when set.
	Fetcher   crawler.PageFetcher
	Extractor crawler.ContentExtractor
}

// Scraper is the site scraper runtime. It owns the per-run page cache and the
// configured sinks, and drives the crawl service for one or more sites.
type Scraper struct {
	cfg     *config.Config
	runID   string
	service *crawler.Service
	fanout  *sinks.Fanout
	store   storage.Store
	log     logger.Logger
}

// NewScraper wires the HTTP client, page cache, extractor and sinks from config.
func NewScraper(ctx context.Context, cfg *config.Config, opts ScraperOptions, log logger.Logger) (*Scraper, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	runID := uuid.NewString()
	maxPages := cfg.MaxPages
	if opts.MaxPages > 0 {
		maxPages = opts.MaxPages
	}

	store, err := storage.NewStore(cfg.CacheType, cfg.BBoltPath, storage.Options{RunID: runID})
	if err != nil {
		return nil, fmt.Errorf("init page cache: %w", err)
	}
	log.InfoObj("page cache initialized", "storage_config", map[string]any{
		"type":   cfg.CacheType,
		"path":   cfg.BBoltPath,
		"run_id": runID,
	})

	fanout, err := buildSinks(ctx, cfg.SinksFile, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		client := httpclient.NewRestyClient(httpclient.Options{UserAgent: cfg.UserAgent})
		fetcher = crawler.NewHTTPFetcher(client, crawler.FetcherOptions{
			CrawlTimeout:   cfg.CrawlTimeout,
			ExtractTimeout: cfg.ExtractTimeout,
			MaxBodyBytes:   cfg.MaxBodyBytes,
			Cache:          store,
		}, log)
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = extract.NewExtractor(nil)
	}

	service := crawler.NewService(fetcher, extractor, crawler.Options{
		MaxPages: maxPages,
		Delay:    cfg.RequestDelay,
		Progress: opts.Progress,
	}, log)

	return &Scraper{
		cfg:     cfg,
		runID:   runID,
		service: service,
		fanout:  fanout,
		store:   store,
		log:     log,
	}, nil
}

func buildSinks(ctx context.Context, path string, log logger.Logger) (*sinks.Fanout, error) {
	reg, err := sinks.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load sinks registry: %w", err)
	}
	enabled := reg.Enabled()
	built, err := sinks.BuildAll(ctx, sinks.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build sinks: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("sinks registry loaded", "sinks_meta", map[string]any{
		"file":  path,
		"count": len(summaries),
		"sinks": summaries,
	})
	return sinks.NewFanout(built), nil
}

// RunID identifies this runtime's page cache bucket and sink events.
func (s *Scraper) RunID() string { return s.runID }

// Scrape crawls and extracts rawURL without writing anything.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (domain.ScrapeResult, error) {
	if s == nil || s.service == nil {
		return domain.ScrapeResult{}, fmt.Errorf("scraper is not initialized")
	}
	return s.service.Scrape(ctx, rawURL)
}

// Run scrapes rawURL, writes the result document to outputPath and forwards it to the
// configured sinks. Only the output file is required to succeed.
func (s *Scraper) Run(ctx context.Context, rawURL, outputPath string) (domain.ScrapeResult, error) {
	res, err := s.Scrape(ctx, rawURL)
	if err != nil {
		return domain.ScrapeResult{}, err
	}

	if err := sinks.WriteResultFile(outputPath, res); err != nil {
		return domain.ScrapeResult{}, fmt.Errorf("write output: %w", err)
	}
	s.publish(ctx, res)
	return res, nil
}

func (s *Scraper) publish(ctx context.Context, res domain.ScrapeResult) {
	if s.fanout.Size() == 0 {
		return
	}
	ok, err := s.fanout.Write(ctx, sinks.NewRun(s.runID, res))
	if err != nil {
		s.log.ErrorObj("sink delivery failed", "sinks_error", map[string]any{
			"site":      res.Site,
			"delivered": ok,
			"error":     err.Error(),
		})
		return
	}
	s.log.InfoObj("result delivered to sinks", "sinks_result", map[string]any{
		"site":      res.Site,
		"delivered": ok,
	})
}

// Close releases the page cache and sink connections.
func (s *Scraper) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	if err := s.fanout.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close sinks: %w", err))
	}
	return errors.Join(errs...)
}

// DefaultOutputPath derives "<host>_scraped.json" from rawURL, dropping a leading
// "www." and replacing dots and colons with underscores.
func DefaultOutputPath(rawURL string) (string, error) {
	norm, err := urlnorm.Normalize(rawURL)
	if err != nil {
		return "", err
	}
	host, err := urlnorm.Host(string(norm))
	if err != nil {
		return "", err
	}
	host = strings.TrimPrefix(host, "www.")
	host = strings.NewReplacer(".", "_", ":", "_").Replace(host)
	return host + "_scraped.json", nil
}
