package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/ufcstats/internal/fetch"
	"github.com/pfrederiksen/ufcstats/internal/logger"
	"github.com/pfrederiksen/ufcstats/internal/scraper"
)

var allEnv = []string{
	EnvListingURL, EnvMaxEvents, EnvTimeout, EnvUserAgent, EnvRate, EnvOutDir, EnvLogLevel,
	EnvMetricsFile, EnvConfigFile,
}

func mustLoad(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

// clearEnv blanks every variable Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnv {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := mustLoad(t)
	require.Equal(t, scraper.CompletedEventsURL, cfg.ListingURL)
	require.Equal(t, 30, cfg.MaxEvents)
	require.Equal(t, 20*time.Second, cfg.Timeout)
	require.Equal(t, fetch.DefaultUserAgent, cfg.UserAgent)
	require.Equal(t, 2.0, cfg.Rate)
	require.Equal(t, ".", cfg.OutDir)
	require.Equal(t, logger.LevelInfo, cfg.LogLevel)
	require.Empty(t, cfg.MetricsFile)
	require.NoError(t, cfg.Validate())
	require.Equal(t, Default(), cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvListingURL, "http://localhost:8080/listing")
	t.Setenv(EnvMaxEvents, "0")
	t.Setenv(EnvTimeout, "45s")
	t.Setenv(EnvUserAgent, "ufcstats-test")
	t.Setenv(EnvRate, "0.5")
	t.Setenv(EnvOutDir, "/tmp/ufc")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvMetricsFile, "/var/lib/node_exporter/ufcstats.prom")

	cfg := mustLoad(t)
	require.Equal(t, "/var/lib/node_exporter/ufcstats.prom", cfg.MetricsFile)
	require.Equal(t, "http://localhost:8080/listing", cfg.ListingURL)
	require.Equal(t, 0, cfg.MaxEvents)
	require.Equal(t, 45*time.Second, cfg.Timeout)
	require.Equal(t, "ufcstats-test", cfg.UserAgent)
	require.Equal(t, 0.5, cfg.Rate)
	require.Equal(t, "/tmp/ufc", cfg.OutDir)
	require.Equal(t, logger.LevelDebug, cfg.LogLevel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvMaxEvents, "lots")
	t.Setenv(EnvTimeout, "soon")
	t.Setenv(EnvRate, "fast")
	t.Setenv(EnvLogLevel, "chatty")

	cfg := mustLoad(t)
	require.Equal(t, scraper.DefaultMaxEvents, cfg.MaxEvents)
	require.Equal(t, fetch.DefaultTimeout, cfg.Timeout)
	require.Equal(t, DefaultRate, cfg.Rate)
	require.Equal(t, logger.LevelInfo, cfg.LogLevel)
}

func TestEnvDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 7 * time.Second},
		{"1m30s", 90 * time.Second},
		{"15", 15 * time.Second},
		{"abc", 7 * time.Second},
	}

	for _, tt := range tests {
		t.Setenv("UFCSTATS_TEST_DURATION", tt.value)
		if got := envDuration("UFCSTATS_TEST_DURATION", 7*time.Second); got != tt.want {
			t.Errorf("envDuration(%q) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ListingURL: scraper.CompletedEventsURL,
			MaxEvents:  30,
			Timeout:    time.Second,
			Rate:       1,
			OutDir:     ".",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero rate allowed", func(c *Config) { c.Rate = 0 }, ""},
		{"unlimited events allowed", func(c *Config) { c.MaxEvents = 0 }, ""},
		{"empty url", func(c *Config) { c.ListingURL = " " }, "listing URL"},
		{"negative max events", func(c *Config) { c.MaxEvents = -1 }, "max events"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"negative rate", func(c *Config) { c.Rate = -1 }, "rate"},
		{"empty out dir", func(c *Config) { c.OutDir = "" }, "output directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("UFCSTATS_MAX_EVENTS=5\nUFCSTATS_OUT_DIR=from-file\n"), 0644))

	// a value already in the environment is not overridden
	t.Setenv(EnvOutDir, "from-env")
	// godotenv only fills variables that are unset, so drop the blank one
	os.Unsetenv(EnvMaxEvents)

	require.NoError(t, LoadDotEnv(path))

	cfg := mustLoad(t)
	require.Equal(t, 5, cfg.MaxEvents)
	require.Equal(t, "from-env", cfg.OutDir)
}

func TestLoadDotEnv_Missing(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestOptions(t *testing.T) {
	cfg := &Config{
		ListingURL: "http://x/listing",
		MaxEvents:  3,
		Timeout:    time.Second,
		UserAgent:  "ua",
		Rate:       4,
	}

	require.Equal(t, fetch.Options{UserAgent: "ua", Timeout: time.Second, RequestsPerSecond: 4}, cfg.FetchOptions())
	require.Equal(t, scraper.Options{ListingURL: "http://x/listing", MaxEvents: 3}, cfg.ScraperOptions())
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ufcstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
listing_url: http://localhost/listing
max_events: 0
timeout: 1m
rate: 0.25
out_dir: ~/ufc
log_level: warn
metrics_file: /tmp/ufcstats.prom
`)

	cfg := Default()
	require.NoError(t, cfg.LoadFile(path))
	require.Equal(t, "http://localhost/listing", cfg.ListingURL)
	require.Equal(t, 0, cfg.MaxEvents)
	require.Equal(t, time.Minute, cfg.Timeout)
	require.Equal(t, 0.25, cfg.Rate)
	require.Equal(t, "~/ufc", cfg.OutDir)
	require.Equal(t, logger.LevelWarn, cfg.LogLevel)
	require.Equal(t, "/tmp/ufcstats.prom", cfg.MetricsFile)
	// keys absent from the file keep their value
	require.Equal(t, fetch.DefaultUserAgent, cfg.UserAgent)
}

func TestLoadFile_Errors(t *testing.T) {
	cfg := Default()

	err := cfg.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "read config")

	err = cfg.LoadFile(writeFile(t, "max_events: [1, 2"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse yaml")
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, writeFile(t, "max_events: 7\nout_dir: from-file\n"))
	t.Setenv(EnvOutDir, "from-env")

	cfg := mustLoad(t)
	require.Equal(t, 7, cfg.MaxEvents)
	require.Equal(t, "from-env", cfg.OutDir)
}

func TestLoad_BadConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}
