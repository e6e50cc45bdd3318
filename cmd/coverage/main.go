package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/samvad-hq/samvad-site-scraper/internal/app"
	"github.com/samvad-hq/samvad-site-scraper/internal/config"
	"github.com/samvad-hq/samvad-site-scraper/internal/logger"
)

type cli struct {
	Sites     string `short:"s" default:"${sites_file}" help:"YAML file listing the sites to scrape."`
	OutputDir string `short:"o" default:"${output_dir}" help:"Directory for per-site results and the summary."`
	MaxPages  int    `short:"m" default:"${max_pages}" help:"Page quota for sites without their own max_pages."`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "coverage run failed: %v\n", err)
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
		kong.Name("coverage"),
		kong.Description("Scrape a list of sites and write a coverage summary."),
		kong.Vars{
			"sites_file": cfg.SitesFile,
			"output_dir": cfg.CoverageOutputDir,
			"max_pages":  strconv.Itoa(cfg.CoverageMaxPages),
		},
	)

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	sites, err := app.LoadSites(args.Sites)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rule := strings.Repeat("=", 60)
	fmt.Println("Testing scraper coverage")
	fmt.Println(rule)
	fmt.Printf("Testing %d sites, results in %s/\n", len(sites), args.OutputDir)
	fmt.Println(rule)

	cov, err := app.NewCoverage(cfg, app.CoverageOptions{
		OutputDir: args.OutputDir,
		MaxPages:  args.MaxPages,
		OnResult: func(i, total int, r app.CoverageResult) {
			if r.Status == app.StatusSuccess {
				fmt.Printf("[%d/%d] %s: %d items, saved to %s\n", i, total, r.URL, r.ItemsFound, r.OutputFile)
				return
			}
			fmt.Printf("[%d/%d] %s: failed: %s\n", i, total, r.URL, r.Error)
		},
	}, log)
	if err != nil {
		return err
	}

	summary, err := cov.Run(ctx, sites)
	if err != nil {
		return err
	}

	fmt.Println(rule)
	fmt.Printf("Successful sites: %d/%d\n", summary.SuccessfulSites, summary.TotalSites)
	fmt.Printf("Total items scraped: %d\n", summary.TotalItems)
	fmt.Printf("Summary saved to: %s\n", cov.SummaryPath())
	return nil
}
