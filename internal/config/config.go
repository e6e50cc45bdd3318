package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultUserAgent identifies the scraper to target sites.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName   string `mapstructure:"app_name"`
	Env       string `mapstructure:"app_env"`
	LogLevel  string `mapstructure:"log_level"`
	UserAgent string `mapstructure:"user_agent"`

	MaxPages              int   `mapstructure:"max_pages"`
	RequestDelayMs        int64 `mapstructure:"request_delay_ms"`
	CrawlTimeoutSeconds   int64 `mapstructure:"crawl_timeout_seconds"`
	ExtractTimeoutSeconds int64 `mapstructure:"extract_timeout_seconds"`
	MaxBodyBytes          int   `mapstructure:"max_body_bytes"`

	RequestDelay   time.Duration `mapstructure:"-"`
	CrawlTimeout   time.Duration `mapstructure:"-"`
	ExtractTimeout time.Duration `mapstructure:"-"`

	SinksFile string `mapstructure:"sinks_file"`
	CacheType string `mapstructure:"cache_type"`
	BBoltPath string `mapstructure:"bbolt_path"`

	SitesFile         string `mapstructure:"sites_file"`
	CoverageOutputDir string `mapstructure:"coverage_output_dir"`
	CoverageMaxPages  int    `mapstructure:"coverage_max_pages"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "samvad-site-scraper")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("max_pages", 50)
	v.SetDefault("request_delay_ms", 500)
	v.SetDefault("crawl_timeout_seconds", 10)
	v.SetDefault("extract_timeout_seconds", 15)
	v.SetDefault("max_body_bytes", 5<<20)
	v.SetDefault("sinks_file", "./configs/sinks.yaml")
	v.SetDefault("cache_type", "none")
	v.SetDefault("bbolt_path", "./data/pages.db")
	v.SetDefault("sites_file", "./configs/sites.yaml")
	v.SetDefault("coverage_output_dir", "test_results")
	v.SetDefault("coverage_max_pages", 30)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) finalize() error {
	if cfg.MaxPages <= 0 {
		return fmt.Errorf("invalid max_pages (must be positive)")
	}
	if cfg.CoverageMaxPages <= 0 {
		return fmt.Errorf("invalid coverage_max_pages (must be positive)")
	}
	if cfg.RequestDelayMs < 0 {
		return fmt.Errorf("invalid request_delay_ms (must not be negative)")
	}
	if cfg.CrawlTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid crawl_timeout_seconds (must be positive seconds)")
	}
	if cfg.ExtractTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid extract_timeout_seconds (must be positive seconds)")
	}
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max_body_bytes (must be positive)")
	}

	cfg.RequestDelay = time.Duration(cfg.RequestDelayMs) * time.Millisecond
	cfg.CrawlTimeout = time.Duration(cfg.CrawlTimeoutSeconds) * time.Second
	cfg.ExtractTimeout = time.Duration(cfg.ExtractTimeoutSeconds) * time.Second
	return nil
}
