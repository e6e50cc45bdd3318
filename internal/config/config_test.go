package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxPages != 50 {
		t.Errorf("MaxPages = %d, want 50", cfg.MaxPages)
	}
	if cfg.RequestDelay != 500*time.Millisecond {
		t.Errorf("RequestDelay = %v", cfg.RequestDelay)
	}
	if cfg.CrawlTimeout != 10*time.Second || cfg.ExtractTimeout != 15*time.Second {
		t.Errorf("timeouts = %v / %v", cfg.CrawlTimeout, cfg.ExtractTimeout)
	}
	if cfg.UserAgent != DefaultUserAgent {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.CacheType != "none" {
		t.Errorf("CacheType = %q", cfg.CacheType)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("MAX_PAGES", "7")
	t.Setenv("REQUEST_DELAY_MS", "0")
	t.Setenv("CRAWL_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxPages != 7 {
		t.Errorf("MaxPages = %d, want 7", cfg.MaxPages)
	}
	if cfg.RequestDelay != 0 {
		t.Errorf("RequestDelay = %v, want 0", cfg.RequestDelay)
	}
	if cfg.CrawlTimeout != 3*time.Second {
		t.Errorf("CrawlTimeout = %v", cfg.CrawlTimeout)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"MAX_PAGES":               "0",
		"REQUEST_DELAY_MS":        "-1",
		"EXTRACT_TIMEOUT_SECONDS": "0",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}
