package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"redscraper/pkg/config"
	"redscraper/pkg/storage"
	"redscraper/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage Reddit Scraper configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (REDSCRAPER_*)
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'redscraper.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration after merging all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values`,
	Run: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Value types and ranges
  - Path accessibility`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = "redscraper.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Fprintln(os.Stderr, "\nTo overwrite, first remove the existing file:")
		fmt.Fprintf(os.Stderr, "  rm %s\n", configPath)
		os.Exit(1)
	}

	exampleConfig := `# Reddit Scraper Configuration File
#
# This file contains all available configuration options.
# You can also use environment variables prefixed with REDSCRAPER_
# For example: REDSCRAPER_OUTPUT, REDSCRAPER_LOG_LEVEL

# Reddit site settings
reddit:
  # Site root that search and post page URLs are built against
  base_url: "https://reddit.com"

# Scraping behaviour
scrape:
  # How far each reveal attempt scrolls the page, in pixels
  scroll_pixels: 15000

  # Settle delay between a scroll and the read that follows it
  scroll_delay: 1s

  # Consecutive empty scrolls before the post listing is considered
  # exhausted
  post_stall_limit: 5

  # Same threshold for a post's comment page
  comment_stall_limit: 5

  # How many comment fetches run at once
  # Range: 1-20
  concurrent_fetches: 5

  # Run the browser without a window
  headless: true

  # Path to the browser binary
  # Leave empty to use the system default
  chrome_path: ""

# Retry configuration for comment fetches
retry:
  # Maximum attempts per comment fetch
  # Range: 1-10
  max_attempts: 3

  # Backoff before the first retry
  initial_backoff: 1s

  # Backoff ceiling
  max_backoff: 30s

  # Backoff multiplier between attempts
  multiplier: 2.0

# Browser surface timeouts
surface:
  # Timeout for a single page interaction (query, scroll, hover)
  action_timeout: 10s

  # Timeout for loading a page
  navigate_timeout: 30s

# Output settings
output:
  # Where the scraped posts are written; "-" writes to stdout
  path: "output.json"

  # Also write a run report next to the output file
  write_report: false

# Terminal UI preferences
ui:
  # Desktop notification when a scrape finishes
  notifications_enabled: false

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log format: console, json
  format: "console"

  # Log file path (optional)
  # Leave empty to log to stderr only
  file: ""

  # Disable colored log output
  no_color: false
`

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Fprintln(os.Stderr, "\nNext steps:")
	fmt.Fprintln(os.Stderr, "1. Adjust the configuration to taste")
	fmt.Fprintln(os.Stderr, "2. Run 'redscraper config validate' to check it")
	fmt.Fprintln(os.Stderr, "3. Start scraping with 'redscraper scrape <keywords>'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Fprintln(os.Stderr)
	fmt.Fprint(os.Stderr, string(data))

	fmt.Fprintln(os.Stderr, "\nConfiguration sources (in order of priority):")
	fmt.Fprintln(os.Stderr, "1. Command line flags")
	fmt.Fprintln(os.Stderr, "2. Environment variables (REDSCRAPER_*)")
	if configFile != "" {
		fmt.Fprintf(os.Stderr, "3. Configuration file: %s\n", configFile)
	} else {
		fmt.Fprintln(os.Stderr, "3. Configuration file: (not specified)")
	}
	fmt.Fprintln(os.Stderr, "4. Default values")
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	if configFile == "" {
		possiblePaths := []string{
			"redscraper.yaml",
			"redscraper.yml",
			".redscraper.yaml",
			".redscraper.yml",
			filepath.Join(os.Getenv("HOME"), ".redscraper.yaml"),
			filepath.Join(os.Getenv("HOME"), ".config", "redscraper", "config.yaml"),
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				configFile = path
				break
			}
		}

		if configFile == "" {
			ui.PrintError("No configuration file found", "Specify a file with --config flag")
			os.Exit(1)
		}
	}

	ui.PrintInfo("Validating configuration", configFile)

	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		os.Exit(1)
	}

	warnings := []string{}
	errors := []string{}

	// Check paths beyond what Validate covers
	if cfg.Output.Path != storage.StdoutPath {
		dir := filepath.Dir(cfg.Output.Path)
		if dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				errors = append(errors, fmt.Sprintf("Cannot create output directory: %v", err))
			}
		}
	} else if cfg.Output.WriteReport {
		warnings = append(warnings, "write_report has no effect with stdout output")
	}

	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("Cannot create log directory: %v", err))
		}
	}

	if len(errors) > 0 {
		ui.PrintError("Configuration has errors:")
		for _, err := range errors {
			fmt.Fprintf(os.Stderr, "  - %s\n", err)
		}
		os.Exit(1)
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:")
		for _, warn := range warnings {
			fmt.Fprintf(os.Stderr, "  - %s\n", warn)
		}
		fmt.Fprintln(os.Stderr)
	}

	ui.PrintSuccess("Configuration is valid")

	fmt.Fprintln(os.Stderr, "\nConfiguration summary:")
	fmt.Fprintf(os.Stderr, "  Base URL: %s\n", cfg.Reddit.BaseURL)
	fmt.Fprintf(os.Stderr, "  Output: %s\n", cfg.Output.Path)
	fmt.Fprintf(os.Stderr, "  Concurrent fetches: %d\n", cfg.Scrape.ConcurrentFetches)
	fmt.Fprintf(os.Stderr, "  Stall limits: %d posts, %d comments\n",
		cfg.Scrape.PostStallLimit, cfg.Scrape.CommentStallLimit)
	fmt.Fprintf(os.Stderr, "  Max retries: %d\n", cfg.Retry.MaxAttempts)
	fmt.Fprintf(os.Stderr, "  Log level: %s\n", cfg.Logging.Level)
}
