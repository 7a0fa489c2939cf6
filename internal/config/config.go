// Package config provides run configuration loaded from an optional YAML file
// and environment variables. Command-line flags are layered on top by the cli
// package.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/ufcstats/internal/fetch"
	"github.com/pfrederiksen/ufcstats/internal/logger"
	"github.com/pfrederiksen/ufcstats/internal/scraper"
)

// --------------------------------------------------------------------------
// Environment variable names
// --------------------------------------------------------------------------

const (
	EnvListingURL = "UFCSTATS_LISTING_URL"
	EnvMaxEvents  = "UFCSTATS_MAX_EVENTS"
	EnvTimeout    = "UFCSTATS_TIMEOUT"
	EnvUserAgent  = "UFCSTATS_USER_AGENT"
	EnvRate       = "UFCSTATS_RATE"
	EnvOutDir     = "UFCSTATS_OUT_DIR"
	EnvLogLevel   = "UFCSTATS_LOG_LEVEL"

	EnvMetricsFile = "UFCSTATS_METRICS_FILE"
	EnvConfigFile  = "UFCSTATS_CONFIG"
)

// DefaultRate is the default request pacing in requests per second.
const DefaultRate = 2.0

// --------------------------------------------------------------------------
// Config struct, populated from the config file and environment
// --------------------------------------------------------------------------

type Config struct {
	// Source
	ListingURL string
	MaxEvents  int // 0 = all events

	// HTTP
	Timeout   time.Duration
	UserAgent string
	Rate      float64 // requests per second, 0 = unpaced

	// Output
	OutDir      string
	LogLevel    logger.Level
	MetricsFile string // Prometheus textfile, empty = not written
}

// fileConfig is the YAML layout of a config file. Unset keys leave the
// current value alone.
type fileConfig struct {
	ListingURL  *string        `yaml:"listing_url"`
	MaxEvents   *int           `yaml:"max_events"`
	Timeout     *time.Duration `yaml:"timeout"`
	UserAgent   *string        `yaml:"user_agent"`
	Rate        *float64       `yaml:"rate"`
	OutDir      *string        `yaml:"out_dir"`
	LogLevel    *string        `yaml:"log_level"`
	MetricsFile *string        `yaml:"metrics_file"`
}

// LoadDotEnv loads variables from a .env file when one exists. Variables
// already set in the environment win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ListingURL: scraper.CompletedEventsURL,
		MaxEvents:  scraper.DefaultMaxEvents,
		Timeout:    fetch.DefaultTimeout,
		UserAgent:  fetch.DefaultUserAgent,
		Rate:       DefaultRate,
		OutDir:     ".",
		LogLevel:   logger.LevelInfo,
	}
}

// Load builds the configuration from the defaults, the YAML file named by
// UFCSTATS_CONFIG (if set) and then the environment, each layer overriding the
// previous one.
func Load() (*Config, error) {
	cfg := Default()
	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile overrides c with the keys present in a YAML config file.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var f fileConfig
	if err := yaml.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("parse yaml %s: %w", path, err)
	}

	if f.ListingURL != nil {
		c.ListingURL = *f.ListingURL
	}
	if f.MaxEvents != nil {
		c.MaxEvents = *f.MaxEvents
	}
	if f.Timeout != nil {
		c.Timeout = *f.Timeout
	}
	if f.UserAgent != nil {
		c.UserAgent = *f.UserAgent
	}
	if f.Rate != nil {
		c.Rate = *f.Rate
	}
	if f.OutDir != nil {
		c.OutDir = *f.OutDir
	}
	if f.LogLevel != nil {
		c.LogLevel = logger.ParseLevel(*f.LogLevel)
	}
	if f.MetricsFile != nil {
		c.MetricsFile = *f.MetricsFile
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ListingURL = envOr(EnvListingURL, c.ListingURL)
	c.MaxEvents = envInt(EnvMaxEvents, c.MaxEvents)

	c.Timeout = envDuration(EnvTimeout, c.Timeout)
	c.UserAgent = envOr(EnvUserAgent, c.UserAgent)
	c.Rate = envFloat(EnvRate, c.Rate)

	c.OutDir = envOr(EnvOutDir, c.OutDir)
	c.LogLevel = logger.ParseLevel(envOr(EnvLogLevel, string(c.LogLevel)))
	c.MetricsFile = envOr(EnvMetricsFile, c.MetricsFile)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.ListingURL) == "":
		return fmt.Errorf("listing URL must not be empty")
	case c.MaxEvents < 0:
		return fmt.Errorf("max events must not be negative, got %d", c.MaxEvents)
	case c.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	case c.Rate < 0:
		return fmt.Errorf("rate must not be negative, got %g", c.Rate)
	case strings.TrimSpace(c.OutDir) == "":
		return fmt.Errorf("output directory must not be empty")
	}
	return nil
}

// FetchOptions returns the HTTP client settings.
func (c *Config) FetchOptions() fetch.Options {
	return fetch.Options{
		UserAgent:         c.UserAgent,
		Timeout:           c.Timeout,
		RequestsPerSecond: c.Rate,
	}
}

// ScraperOptions returns the traversal settings.
func (c *Config) ScraperOptions() scraper.Options {
	return scraper.Options{
		ListingURL: c.ListingURL,
		MaxEvents:  c.MaxEvents,
	}
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// envDuration accepts Go durations ("20s", "1m") or a bare number of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}
