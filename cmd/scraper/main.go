package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/briandowns/spinner"
	"github.com/samvad-hq/samvad-site-scraper/internal/app"
	"github.com/samvad-hq/samvad-site-scraper/internal/config"
	"github.com/samvad-hq/samvad-site-scraper/internal/logger"
)

// cli mirrors `scraper <url> [output] [max_pages]`.
type cli struct {
	URL      string `arg:"" help:"Site URL to scrape."`
	Output   string `arg:"" optional:"" help:"Output JSON path. Defaults to <host>_scraped.json."`
	MaxPages int    `arg:"" optional:"" default:"${max_pages}" help:"Maximum number of pages to discover."`
	Quiet    bool   `short:"q" help:"Disable the progress spinner."`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "scrape failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var args cli
	kong.Parse(&args,
		kong.Name("scraper"),
		kong.Description("Crawl a site's internal pages and save their main content as Markdown in one JSON document."),
		kong.Vars{"max_pages": strconv.Itoa(cfg.MaxPages)},
	)
	if args.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive, got %d", args.MaxPages)
	}

	output := args.Output
	if output == "" {
		if output, err = app.DefaultOutputPath(args.URL); err != nil {
			return err
		}
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	spin := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	spin.Suffix = " crawling " + args.URL
	var progress func(done, total int, url string)
	if !args.Quiet {
		progress = func(done, total int, url string) {
			spin.Suffix = fmt.Sprintf(" extracting [%d/%d] %s", done, total, url)
		}
	}

	scraper, err := app.NewScraper(ctx, cfg, app.ScraperOptions{
		MaxPages: args.MaxPages,
		Progress: progress,
	}, log)
	if err != nil {
		logger.ErrorObj("failed to initialize scraper", "error", err.Error())
		return err
	}
	defer func() {
		if cerr := scraper.Close(); cerr != nil {
			logger.ErrorObj("scraper close failed", "error", cerr.Error())
		}
	}()

	fmt.Printf("Starting scrape of %s\n", args.URL)
	fmt.Printf("Output will be saved to: %s\n", output)

	if !args.Quiet {
		spin.Start()
	}
	res, err := scraper.Run(ctx, args.URL, output)
	spin.Stop()
	if err != nil {
		return err
	}

	fmt.Printf("Successfully scraped %d items\n", len(res.Items))
	fmt.Printf("Results saved to: %s\n", output)
	return nil
}
