// Package config loads and validates harvest configuration via Viper.
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Crawler CrawlerConfig `mapstructure:"crawler"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Ops     OpsConfig     `mapstructure:"ops"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig describes the source catalog and the task universe.
type CatalogConfig struct {
	BaseURL          string   `mapstructure:"base_url"`
	Categories       []string `mapstructure:"categories"`
	PagesPerCategory int      `mapstructure:"pages_per_category"`
	YearStart        int      `mapstructure:"year_start"`
	YearEnd          int      `mapstructure:"year_end"`
}

// AuthConfig holds the crawl session credentials and the signed-in probe.
type AuthConfig struct {
	Cookie        string `mapstructure:"cookie"`
	Marker        string `mapstructure:"marker"`
	ProbeCategory string `mapstructure:"probe_category"`
}

// CrawlerConfig governs fetch behavior and resumability.
type CrawlerConfig struct {
	Workers               int     `mapstructure:"workers"`
	TimeoutSeconds        int     `mapstructure:"timeout_seconds"`
	UserAgent             string  `mapstructure:"user_agent"`
	IgnoreRobots          bool    `mapstructure:"ignore_robots"`
	DelayMs               int     `mapstructure:"delay_ms"`
	Resume                bool    `mapstructure:"resume"`
	UseCachedDocs         bool    `mapstructure:"use_cached_docs"`
	UseCachedFrontier     bool    `mapstructure:"use_cached_frontier"`
	CompletenessThreshold float64 `mapstructure:"completeness_threshold"`
}

// PathsConfig roots every on-disk artifact under one data directory.
type PathsConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// DocsDir is where raw detail documents are cached.
func (p PathsConfig) DocsDir() string { return filepath.Join(p.DataDir, "docs") }

// FrontiersDir is where per-task URL frontiers are cached.
func (p PathsConfig) FrontiersDir() string { return filepath.Join(p.DataDir, "frontiers") }

// ShardsDir is where per-task record shards are written.
func (p PathsConfig) ShardsDir() string { return filepath.Join(p.DataDir, "shards") }

// LedgerFile is the crawl progress ledger document.
func (p PathsConfig) LedgerFile() string { return filepath.Join(p.DataDir, "ledger.json") }

// CorpusDir is where the merge pipeline emits its artifacts.
func (p PathsConfig) CorpusDir() string { return filepath.Join(p.DataDir, "corpus") }

// OpsConfig controls the operational HTTP listener served during a crawl.
type OpsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKHARVEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog.base_url", "https://www.goodreads.com")
	v.SetDefault("catalog.categories", []string{
		"art", "biography", "business", "classics", "comics", "cookbooks",
		"fantasy", "fiction", "history", "horror", "mystery", "poetry",
		"psychology", "romance", "science", "thriller", "travel",
	})
	v.SetDefault("catalog.pages_per_category", 5)
	v.SetDefault("catalog.year_start", 1700)
	v.SetDefault("catalog.year_end", 2020)
	v.SetDefault("auth.cookie", "")
	v.SetDefault("auth.marker", "signOut")
	v.SetDefault("auth.probe_category", "history")
	v.SetDefault("crawler.workers", 0)
	v.SetDefault("crawler.timeout_seconds", 15)
	v.SetDefault("crawler.user_agent", "bookharvest/0.1")
	v.SetDefault("crawler.ignore_robots", false)
	v.SetDefault("crawler.delay_ms", 0)
	v.SetDefault("crawler.resume", true)
	v.SetDefault("crawler.use_cached_docs", true)
	v.SetDefault("crawler.use_cached_frontier", true)
	v.SetDefault("crawler.completeness_threshold", 1.0)
	v.SetDefault("paths.data_dir", "data")
	v.SetDefault("ops.enabled", true)
	v.SetDefault("ops.port", 8880)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	u, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("catalog.base_url must be an absolute URL")
	}
	if c.Catalog.PagesPerCategory <= 0 {
		return fmt.Errorf("catalog.pages_per_category must be > 0")
	}
	if c.Catalog.YearEnd != 0 && c.Catalog.YearStart > c.Catalog.YearEnd {
		return fmt.Errorf("catalog.year_start must not exceed catalog.year_end")
	}
	if c.Crawler.TimeoutSeconds <= 0 {
		return fmt.Errorf("crawler.timeout_seconds must be > 0")
	}
	if c.Crawler.DelayMs < 0 {
		return fmt.Errorf("crawler.delay_ms must not be negative")
	}
	if c.Crawler.CompletenessThreshold <= 0 || c.Crawler.CompletenessThreshold > 1 {
		return fmt.Errorf("crawler.completeness_threshold must be in (0, 1]")
	}
	if c.Paths.DataDir == "" {
		return fmt.Errorf("paths.data_dir must be set")
	}
	if c.Ops.Enabled && c.Ops.Port <= 0 {
		return fmt.Errorf("ops.port must be > 0 when ops is enabled")
	}
	return nil
}

// WorkerCount resolves the fan-out width, defaulting to the machine's
// processing units when unset.
func (c CrawlerConfig) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Timeout converts the configured fetch timeout into a duration.
func (c CrawlerConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Delay converts the configured per-domain pacing into a duration.
func (c CrawlerConfig) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}
