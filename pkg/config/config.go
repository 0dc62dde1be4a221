package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	errs "redscraper/pkg/errors"
)

// Config holds all configuration options for the Reddit scraper
type Config struct {
	// Reddit site settings
	Reddit RedditConfig `yaml:"reddit" json:"reddit"`

	// Scraping behaviour
	Scrape ScrapeConfig `yaml:"scrape" json:"scrape"`

	// Retry configuration for detail fetches
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Browser surface timeouts
	Surface SurfaceConfig `yaml:"surface" json:"surface"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Terminal UI preferences
	UI UIConfig `yaml:"ui" json:"ui"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// RedditConfig holds Reddit-specific configuration
type RedditConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// ScrapeConfig controls the listing and comment pagination loops
type ScrapeConfig struct {
	// ScrollPixels is how far each reveal attempt scrolls the page
	ScrollPixels int `yaml:"scroll_pixels" json:"scroll_pixels"`
	// ScrollDelay is the settle delay between reveal attempts
	ScrollDelay Duration `yaml:"scroll_delay" json:"scroll_delay"`
	// PostStallLimit is the number of consecutive empty reveal attempts
	// before the post listing terminates
	PostStallLimit int `yaml:"post_stall_limit" json:"post_stall_limit"`
	// CommentStallLimit is the same threshold for comment pagination
	CommentStallLimit int `yaml:"comment_stall_limit" json:"comment_stall_limit"`
	// ConcurrentFetches bounds simultaneously active detail fetches
	ConcurrentFetches int `yaml:"concurrent_fetches" json:"concurrent_fetches"`
	// Headless controls whether the browser runs without a window
	Headless bool `yaml:"headless" json:"headless"`
	// ChromePath overrides the browser binary location
	ChromePath string `yaml:"chrome_path" json:"chrome_path"`
}

// RetryConfig holds retry configuration for detail fetches
type RetryConfig struct {
	MaxAttempts    int      `yaml:"max_attempts" json:"max_attempts"`
	InitialBackoff Duration `yaml:"initial_backoff" json:"initial_backoff"`
	MaxBackoff     Duration `yaml:"max_backoff" json:"max_backoff"`
	Multiplier     float64  `yaml:"multiplier" json:"multiplier"`
}

// SurfaceConfig holds per-action timeouts for the browser surface
type SurfaceConfig struct {
	ActionTimeout   Duration `yaml:"action_timeout" json:"action_timeout"`
	NavigateTimeout Duration `yaml:"navigate_timeout" json:"navigate_timeout"`
}

// OutputConfig holds output settings
type OutputConfig struct {
	// Path is the output file; "-" writes to stdout
	Path string `yaml:"path" json:"path"`
	// WriteReport also writes a run report JSON next to the output file
	WriteReport bool `yaml:"write_report" json:"write_report"`
}

// UIConfig holds terminal UI preferences
type UIConfig struct {
	NotificationsEnabled bool `yaml:"notifications_enabled" json:"notifications_enabled"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `yaml:"level" json:"level"`
	Format  string `yaml:"format" json:"format"`
	File    string `yaml:"file" json:"file"`
	NoColor bool   `yaml:"no_color" json:"no_color"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Reddit: RedditConfig{
			BaseURL: "https://reddit.com",
		},
		Scrape: ScrapeConfig{
			ScrollPixels:      15000,
			ScrollDelay:       Duration(1 * time.Second),
			PostStallLimit:    5,
			CommentStallLimit: 5,
			ConcurrentFetches: 5,
			Headless:          true,
			ChromePath:        "",
		},
		Retry: RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: Duration(1 * time.Second),
			MaxBackoff:     Duration(30 * time.Second),
			Multiplier:     2.0,
		},
		Surface: SurfaceConfig{
			ActionTimeout:   Duration(10 * time.Second),
			NavigateTimeout: Duration(30 * time.Second),
		},
		Output: OutputConfig{
			Path:        "output.json",
			WriteReport: false,
		},
		UI: UIConfig{
			NotificationsEnabled: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Format:  "console",
			File:    "",
			NoColor: false,
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("REDSCRAPER_REDDIT_BASE_URL"); baseURL != "" {
		c.Reddit.BaseURL = baseURL
	}

	if pixels := os.Getenv("REDSCRAPER_SCRAPE_SCROLL_PIXELS"); pixels != "" {
		if val, err := strconv.Atoi(pixels); err == nil && val > 0 {
			c.Scrape.ScrollPixels = val
		}
	}
	if delay := os.Getenv("REDSCRAPER_SCRAPE_SCROLL_DELAY"); delay != "" {
		if val, err := time.ParseDuration(delay); err == nil && val > 0 {
			c.Scrape.ScrollDelay = Duration(val)
		}
	}
	if limit := os.Getenv("REDSCRAPER_SCRAPE_POST_STALL_LIMIT"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 {
			c.Scrape.PostStallLimit = val
		}
	}
	if limit := os.Getenv("REDSCRAPER_SCRAPE_COMMENT_STALL_LIMIT"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 {
			c.Scrape.CommentStallLimit = val
		}
	}
	if concurrent := os.Getenv("REDSCRAPER_SCRAPE_CONCURRENT_FETCHES"); concurrent != "" {
		if val, err := strconv.Atoi(concurrent); err == nil && val > 0 {
			c.Scrape.ConcurrentFetches = val
		}
	}
	if headless := os.Getenv("REDSCRAPER_SCRAPE_HEADLESS"); headless != "" {
		c.Scrape.Headless = strings.ToLower(headless) == "true"
	}
	if chromePath := os.Getenv("REDSCRAPER_SCRAPE_CHROME_PATH"); chromePath != "" {
		c.Scrape.ChromePath = chromePath
	}

	if attempts := os.Getenv("REDSCRAPER_RETRY_MAX_ATTEMPTS"); attempts != "" {
		if val, err := strconv.Atoi(attempts); err == nil && val > 0 {
			c.Retry.MaxAttempts = val
		}
	}

	if timeout := os.Getenv("REDSCRAPER_SURFACE_ACTION_TIMEOUT"); timeout != "" {
		if val, err := time.ParseDuration(timeout); err == nil && val > 0 {
			c.Surface.ActionTimeout = Duration(val)
		}
	}
	if timeout := os.Getenv("REDSCRAPER_SURFACE_NAVIGATE_TIMEOUT"); timeout != "" {
		if val, err := time.ParseDuration(timeout); err == nil && val > 0 {
			c.Surface.NavigateTimeout = Duration(val)
		}
	}

	// Flat aliases for the most common overrides
	if output := os.Getenv("REDSCRAPER_OUTPUT_PATH"); output != "" {
		c.Output.Path = output
	}
	if output := os.Getenv("REDSCRAPER_OUTPUT"); output != "" {
		c.Output.Path = output
	}
	if logLevel := os.Getenv("REDSCRAPER_LOGGING_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logLevel := os.Getenv("REDSCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat := os.Getenv("REDSCRAPER_LOGGING_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
	if logFile := os.Getenv("REDSCRAPER_LOGGING_FILE"); logFile != "" {
		c.Logging.File = logFile
	}
	if noColor := os.Getenv("REDSCRAPER_LOGGING_NO_COLOR"); noColor != "" {
		c.Logging.NoColor = strings.ToLower(noColor) == "true"
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".redscraper.yaml",
		".redscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "redscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "redscraper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".redscraper.yaml"),
		filepath.Join(os.Getenv("HOME"), ".redscraper.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var problems []error

	if c.Reddit.BaseURL == "" {
		problems = append(problems, errors.New("reddit base URL is required"))
	} else if !strings.HasPrefix(c.Reddit.BaseURL, "http://") && !strings.HasPrefix(c.Reddit.BaseURL, "https://") {
		problems = append(problems, errors.New("reddit base URL must start with http:// or https://"))
	}

	if c.Scrape.ScrollPixels <= 0 {
		problems = append(problems, errors.New("scroll pixels must be positive"))
	}
	if c.Scrape.ScrollDelay <= 0 {
		problems = append(problems, errors.New("scroll delay must be positive"))
	}
	if c.Scrape.PostStallLimit <= 0 {
		problems = append(problems, errors.New("post stall limit must be positive"))
	}
	if c.Scrape.CommentStallLimit <= 0 {
		problems = append(problems, errors.New("comment stall limit must be positive"))
	}
	if c.Scrape.ConcurrentFetches <= 0 {
		problems = append(problems, errors.New("concurrent fetches must be positive"))
	}
	if c.Scrape.ConcurrentFetches > 20 {
		problems = append(problems, errors.New("concurrent fetches should not exceed 20"))
	}

	if c.Retry.MaxAttempts < 1 || c.Retry.MaxAttempts > 10 {
		problems = append(problems, errors.New("retry max attempts must be between 1 and 10"))
	}
	if c.Retry.InitialBackoff <= 0 {
		problems = append(problems, errors.New("initial backoff must be positive"))
	}
	if c.Retry.MaxBackoff < c.Retry.InitialBackoff {
		problems = append(problems, errors.New("max backoff must not be smaller than initial backoff"))
	}
	if c.Retry.Multiplier < 1.0 {
		problems = append(problems, errors.New("retry multiplier must be at least 1.0"))
	}

	if c.Surface.ActionTimeout <= 0 {
		problems = append(problems, errors.New("surface action timeout must be positive"))
	}
	if c.Surface.NavigateTimeout <= 0 {
		problems = append(problems, errors.New("surface navigate timeout must be positive"))
	}

	if c.Output.Path == "" {
		problems = append(problems, errors.New("output path is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "warning": true,
		"error": true, "fatal": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		problems = append(problems, errors.New("invalid log level"))
	}

	validLogFormats := map[string]bool{
		"console": true, "json": true,
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		problems = append(problems, errors.New("invalid log format (must be console or json)"))
	}

	if len(problems) > 0 {
		return &errs.Error{
			Type:    errs.ErrorTypeConfig,
			Message: "invalid configuration",
			Err:     errors.Join(problems...),
		}
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only flags the command layer chose to pass are present in the map.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if baseURL, ok := flags["base-url"].(string); ok && baseURL != "" {
		c.Reddit.BaseURL = baseURL
	}
	if output, ok := flags["output"].(string); ok && output != "" {
		c.Output.Path = output
	}
	if concurrent, ok := flags["concurrent"].(int); ok && concurrent > 0 {
		c.Scrape.ConcurrentFetches = concurrent
	}
	if retries, ok := flags["max-retries"].(int); ok && retries > 0 {
		c.Retry.MaxAttempts = retries
	}
	if headless, ok := flags["headless"].(bool); ok {
		c.Scrape.Headless = headless
	}
	if chromePath, ok := flags["chrome-path"].(string); ok && chromePath != "" {
		c.Scrape.ChromePath = chromePath
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat, ok := flags["log-format"].(string); ok && logFormat != "" {
		c.Logging.Format = logFormat
	}
	if logFile, ok := flags["log-file"].(string); ok && logFile != "" {
		c.Logging.File = logFile
	}
	if noColor, ok := flags["no-color"].(bool); ok {
		c.Logging.NoColor = noColor
	}
	if report, ok := flags["report"].(bool); ok {
		c.Output.WriteReport = report
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".env"))
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".redscraper.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
