package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	errs "redscraper/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)

	assert.Equal(t, "https://reddit.com", cfg.Reddit.BaseURL)

	assert.Equal(t, 15000, cfg.Scrape.ScrollPixels)
	assert.Equal(t, Duration(1*time.Second), cfg.Scrape.ScrollDelay)
	assert.Equal(t, 5, cfg.Scrape.PostStallLimit)
	assert.Equal(t, 5, cfg.Scrape.CommentStallLimit)
	assert.Equal(t, 5, cfg.Scrape.ConcurrentFetches)
	assert.True(t, cfg.Scrape.Headless)
	assert.Empty(t, cfg.Scrape.ChromePath)

	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, Duration(1*time.Second), cfg.Retry.InitialBackoff)
	assert.Equal(t, Duration(30*time.Second), cfg.Retry.MaxBackoff)
	assert.Equal(t, 2.0, cfg.Retry.Multiplier)

	assert.Equal(t, Duration(10*time.Second), cfg.Surface.ActionTimeout)
	assert.Equal(t, Duration(30*time.Second), cfg.Surface.NavigateTimeout)

	assert.Equal(t, "output.json", cfg.Output.Path)
	assert.False(t, cfg.Output.WriteReport)

	assert.False(t, cfg.UI.NotificationsEnabled)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REDSCRAPER_REDDIT_BASE_URL", "https://old.reddit.com")
	t.Setenv("REDSCRAPER_SCRAPE_SCROLL_PIXELS", "9000")
	t.Setenv("REDSCRAPER_SCRAPE_SCROLL_DELAY", "2s")
	t.Setenv("REDSCRAPER_SCRAPE_CONCURRENT_FETCHES", "3")
	t.Setenv("REDSCRAPER_SCRAPE_HEADLESS", "false")
	t.Setenv("REDSCRAPER_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("REDSCRAPER_OUTPUT", "/tmp/posts.json")
	t.Setenv("REDSCRAPER_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, "https://old.reddit.com", cfg.Reddit.BaseURL)
	assert.Equal(t, 9000, cfg.Scrape.ScrollPixels)
	assert.Equal(t, Duration(2*time.Second), cfg.Scrape.ScrollDelay)
	assert.Equal(t, 3, cfg.Scrape.ConcurrentFetches)
	assert.False(t, cfg.Scrape.Headless)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, "/tmp/posts.json", cfg.Output.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFromEnvIgnoresInvalidValues(t *testing.T) {
	t.Setenv("REDSCRAPER_SCRAPE_SCROLL_PIXELS", "not-a-number")
	t.Setenv("REDSCRAPER_SCRAPE_SCROLL_DELAY", "soon")
	t.Setenv("REDSCRAPER_SCRAPE_CONCURRENT_FETCHES", "-2")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())

	assert.Equal(t, 15000, cfg.Scrape.ScrollPixels)
	assert.Equal(t, Duration(1*time.Second), cfg.Scrape.ScrollDelay)
	assert.Equal(t, 5, cfg.Scrape.ConcurrentFetches)
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
reddit:
  base_url: https://reddit.com
scrape:
  scroll_pixels: 12000
  scroll_delay: 500ms
  post_stall_limit: 8
  concurrent_fetches: 2
output:
  path: found.json
logging:
  level: warn
  format: json
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(configPath))

	assert.Equal(t, 12000, cfg.Scrape.ScrollPixels)
	assert.Equal(t, Duration(500*time.Millisecond), cfg.Scrape.ScrollDelay)
	assert.Equal(t, 8, cfg.Scrape.PostStallLimit)
	assert.Equal(t, 2, cfg.Scrape.ConcurrentFetches)
	assert.Equal(t, "found.json", cfg.Output.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// Untouched sections keep their defaults
	assert.Equal(t, 5, cfg.Scrape.CommentStallLimit)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestLoadFromFileErrors(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.LoadFromFile("/nonexistent/config.yaml")
	assert.Error(t, err)

	tmpDir := t.TempDir()
	badPath := filepath.Join(tmpDir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("scrape: [not a map"), 0644))
	assert.Error(t, cfg.LoadFromFile(badPath))

	badDuration := filepath.Join(tmpDir, "baddur.yaml")
	require.NoError(t, os.WriteFile(badDuration, []byte("scrape:\n  scroll_delay: soon\n"), 0644))
	assert.Error(t, cfg.LoadFromFile(badDuration))
}

func TestDurationYAML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Duration
	}{
		{"string form", "scroll_delay: 1s", Duration(1 * time.Second)},
		{"millisecond string", "scroll_delay: 250ms", Duration(250 * time.Millisecond)},
		{"integer nanoseconds", "scroll_delay: 1000000000", Duration(1 * time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sc ScrapeConfig
			require.NoError(t, yaml.Unmarshal([]byte(tt.input), &sc))
			assert.Equal(t, tt.expected, sc.ScrollDelay)
		})
	}

	t.Run("marshal round trip", func(t *testing.T) {
		out, err := yaml.Marshal(ScrapeConfig{ScrollDelay: Duration(1500 * time.Millisecond)})
		require.NoError(t, err)
		assert.Contains(t, string(out), "scroll_delay: 1.5s")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"missing base URL", func(c *Config) { c.Reddit.BaseURL = "" }, true},
		{"base URL without scheme", func(c *Config) { c.Reddit.BaseURL = "reddit.com" }, true},
		{"zero scroll pixels", func(c *Config) { c.Scrape.ScrollPixels = 0 }, true},
		{"negative scroll delay", func(c *Config) { c.Scrape.ScrollDelay = Duration(-1) }, true},
		{"zero post stall limit", func(c *Config) { c.Scrape.PostStallLimit = 0 }, true},
		{"zero comment stall limit", func(c *Config) { c.Scrape.CommentStallLimit = 0 }, true},
		{"zero concurrent fetches", func(c *Config) { c.Scrape.ConcurrentFetches = 0 }, true},
		{"excessive concurrent fetches", func(c *Config) { c.Scrape.ConcurrentFetches = 25 }, true},
		{"zero retry attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, true},
		{"too many retry attempts", func(c *Config) { c.Retry.MaxAttempts = 11 }, true},
		{"max backoff below initial", func(c *Config) {
			c.Retry.InitialBackoff = Duration(10 * time.Second)
			c.Retry.MaxBackoff = Duration(1 * time.Second)
		}, true},
		{"multiplier below one", func(c *Config) { c.Retry.Multiplier = 0.5 }, true},
		{"zero action timeout", func(c *Config) { c.Surface.ActionTimeout = 0 }, true},
		{"empty output path", func(c *Config) { c.Output.Path = "" }, true},
		{"stdout output path", func(c *Config) { c.Output.Path = "-" }, false},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"warning level accepted", func(c *Config) { c.Logging.Level = "warning" }, false},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Equal(t, errs.ErrorTypeConfig, errs.TypeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAggregatesProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Reddit.BaseURL = ""
	cfg.Scrape.ScrollPixels = 0
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base URL")
	assert.Contains(t, err.Error(), "scroll pixels")
	assert.Contains(t, err.Error(), "log level")
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()

	flags := map[string]interface{}{
		"output":     "/flag/output.json",
		"concurrent": 7,
		"log-level":  "error",
		"log-format": "json",
		"headless":   false,
		"report":     true,
	}

	cfg.MergeCommandLineFlags(flags)

	assert.Equal(t, "/flag/output.json", cfg.Output.Path)
	assert.Equal(t, 7, cfg.Scrape.ConcurrentFetches)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.Scrape.Headless)
	assert.True(t, cfg.Output.WriteReport)

	// Absent flags leave the config untouched
	assert.Equal(t, "https://reddit.com", cfg.Reddit.BaseURL)
}

func TestSaveAndLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "saved.yaml")

	cfg := DefaultConfig()
	cfg.Scrape.ConcurrentFetches = 8
	cfg.Scrape.ScrollDelay = Duration(2 * time.Second)
	cfg.Output.Path = "round-trip.json"

	require.NoError(t, cfg.Save(configPath))

	loaded := DefaultConfig()
	require.NoError(t, loaded.LoadFromFile(configPath))

	assert.Equal(t, 8, loaded.Scrape.ConcurrentFetches)
	assert.Equal(t, Duration(2*time.Second), loaded.Scrape.ScrollDelay)
	assert.Equal(t, "round-trip.json", loaded.Output.Path)
}

func TestLoadPrecedence(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	content := "output:\n  path: from-file.json\nscrape:\n  concurrent_fetches: 2\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	t.Setenv("REDSCRAPER_OUTPUT", "from-env.json")

	flags := map[string]interface{}{
		"output": "from-flag.json",
	}

	cfg, err := Load(configPath, flags)
	require.NoError(t, err)

	// Flags beat env, env beats file, file beats defaults
	assert.Equal(t, "from-flag.json", cfg.Output.Path)
	assert.Equal(t, 2, cfg.Scrape.ConcurrentFetches)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	flags := map[string]interface{}{
		"log-level": "extremely-loud",
	}

	_, err := Load("", flags)
	require.Error(t, err)
	assert.Equal(t, errs.ErrorTypeConfig, errs.TypeOf(err))
}
