package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samvad-hq/samvad-site-scraper/internal/config"
	"github.com/samvad-hq/samvad-site-scraper/internal/domain"
	"github.com/samvad-hq/samvad-site-scraper/internal/logger"
	"github.com/samvad-hq/samvad-site-scraper/pkg/sinks"
	"gopkg.in/yaml.v3"
)

const (
	coverageSummaryFile = "coverage_summary.json"

	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Site is one entry of the coverage sites file. A bare string entry is accepted as a URL.
type Site struct {
	URL      string `yaml:"url" json:"url"`
	MaxPages int    `yaml:"max_pages" json:"max_pages"`
}

// UnmarshalYAML accepts either "https://..." or {url: ..., max_pages: ...}.
func (s *Site) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.URL = strings.TrimSpace(node.Value)
		return nil
	}
	type plain Site
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Site(p)
	s.URL = strings.TrimSpace(s.URL)
	return nil
}

type sitesFile struct {
	Sites []Site `yaml:"sites"`
}

// LoadSites reads the coverage site list.
func LoadSites(path string) ([]Site, error) {
	raw, err := os.ReadFile(strings.TrimSpace(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("sites file %q not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read sites file: %w", err)
	}

	var f sitesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode sites file: %w", err)
	}

	sites := make([]Site, 0, len(f.Sites))
	for i, s := range f.Sites {
		if s.URL == "" {
			return nil, fmt.Errorf("sites[%d]: url is required", i)
		}
		if s.MaxPages < 0 {
			return nil, fmt.Errorf("sites[%d]: max_pages must not be negative", i)
		}
		sites = append(sites, s)
	}
	if len(sites) == 0 {
		return nil, errors.New("sites file contains no sites")
	}
	return sites, nil
}

// CoverageResult is the outcome for one site.
type CoverageResult struct {
	URL        string `json:"url"`
	Status     string `json:"status"`
	ItemsFound int    `json:"items_found"`
	OutputFile string `json:"output_file,omitempty"`
	Error      string `json:"error,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// CoverageSummary is written to coverage_summary.json after every site has run.
type CoverageSummary struct {
	TestTimestamp   string           `json:"test_timestamp"`
	TotalSites      int              `json:"total_sites"`
	SuccessfulSites int              `json:"successful_sites"`
	TotalItems      int              `json:"total_items"`
	Results         []CoverageResult `json:"results"`
}

// SiteRunner scrapes one site and writes its result document.
type SiteRunner interface {
	Run(ctx context.Context, rawURL, outputPath string) (domain.ScrapeResult, error)
	Close() error
}

// CoverageOptions configures a coverage run.
type CoverageOptions struct {
	OutputDir string
	// MaxPages applies to sites that do not set their own quota.
	MaxPages int
	// NewRunner builds the runner for a site quota. Defaults to a config-backed Scraper.
	NewRunner func(ctx context.Context, maxPages int) (SiteRunner, error)
	// OnResult is called after each site finishes.
	OnResult func(index, total int, result CoverageResult)
}

// Coverage scrapes a list of sites sequentially and records how each one went.
type Coverage struct {
	opts CoverageOptions
	log  logger.Logger
	now  func() time.Time
}

// NewCoverage builds the coverage runner from config.
func NewCoverage(cfg *config.Config, opts CoverageOptions, log logger.Logger) (*Coverage, error) {
	if log == nil {
		log = &logger.NopLogger{}
	}
	if opts.NewRunner == nil {
		if cfg == nil {
			return nil, fmt.Errorf("config must not be nil")
		}
		opts.NewRunner = func(ctx context.Context, maxPages int) (SiteRunner, error) {
			s, err := NewScraper(ctx, cfg, ScraperOptions{MaxPages: maxPages}, log)
			if err != nil {
				return nil, err
			}
			return s, nil
		}
	}
	if cfg != nil {
		if opts.OutputDir == "" {
			opts.OutputDir = cfg.CoverageOutputDir
		}
		if opts.MaxPages <= 0 {
			opts.MaxPages = cfg.CoverageMaxPages
		}
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return nil, fmt.Errorf("coverage output dir is required")
	}
	return &Coverage{opts: opts, log: log, now: time.Now}, nil
}

// Run scrapes every site and writes the per-site files plus the summary.
// A failing site is recorded in the summary; only setup and summary I/O errors are returned.
func (c *Coverage) Run(ctx context.Context, sites []Site) (CoverageSummary, error) {
	if err := os.MkdirAll(c.opts.OutputDir, 0o755); err != nil {
		return CoverageSummary{}, fmt.Errorf("create coverage dir: %w", err)
	}

	summary := CoverageSummary{
		TotalSites: len(sites),
		Results:    make([]CoverageResult, 0, len(sites)),
	}
	for i, site := range sites {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result := c.runSite(ctx, site)
		if result.Status == StatusSuccess {
			summary.SuccessfulSites++
		}
		summary.TotalItems += result.ItemsFound
		summary.Results = append(summary.Results, result)

		if c.opts.OnResult != nil {
			c.opts.OnResult(i+1, len(sites), result)
		}
	}

	summary.TestTimestamp = c.timestamp()
	path := c.SummaryPath()
	if err := sinks.WriteJSONFile(path, summary); err != nil {
		return summary, fmt.Errorf("write coverage summary: %w", err)
	}
	c.log.InfoObj("coverage run finished", "coverage_summary", map[string]any{
		"total_sites":      summary.TotalSites,
		"successful_sites": summary.SuccessfulSites,
		"total_items":      summary.TotalItems,
		"summary_file":     path,
	})
	return summary, nil
}

// SummaryPath is where Run writes the summary document.
func (c *Coverage) SummaryPath() string {
	return filepath.Join(c.opts.OutputDir, coverageSummaryFile)
}

func (c *Coverage) runSite(ctx context.Context, site Site) CoverageResult {
	maxPages := site.MaxPages
	if maxPages <= 0 {
		maxPages = c.opts.MaxPages
	}
	output := filepath.Join(c.opts.OutputDir, SiteFileName(site.URL)+"_result.json")

	res, err := c.scrapeSite(ctx, site.URL, maxPages, output)
	if err != nil {
		c.log.WarnObj("coverage site failed", "coverage_site", map[string]any{
			"url":   site.URL,
			"error": err.Error(),
		})
		return CoverageResult{
			URL:       site.URL,
			Status:    StatusFailed,
			Error:     err.Error(),
			Timestamp: c.timestamp(),
		}
	}
	return CoverageResult{
		URL:        site.URL,
		Status:     StatusSuccess,
		ItemsFound: len(res.Items),
		OutputFile: output,
		Timestamp:  c.timestamp(),
	}
}

func (c *Coverage) scrapeSite(ctx context.Context, rawURL string, maxPages int, output string) (domain.ScrapeResult, error) {
	runner, err := c.opts.NewRunner(ctx, maxPages)
	if err != nil {
		return domain.ScrapeResult{}, err
	}
	defer func() {
		if cerr := runner.Close(); cerr != nil {
			c.log.WarnObj("coverage runner close failed", "coverage_site", map[string]any{
				"url":   rawURL,
				"error": cerr.Error(),
			})
		}
	}()
	return runner.Run(ctx, rawURL, output)
}

func (c *Coverage) timestamp() string {
	return c.now().Format(time.RFC3339)
}

// SiteFileName flattens a site URL into a file name stem:
// the scheme is dropped and path separators, dots and colons become underscores.
func SiteFileName(rawURL string) string {
	s := strings.TrimSpace(rawURL)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.NewReplacer("/", "_", ".", "_", ":", "_").Replace(s)
}
