package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"redscraper/pkg/ui"
)

var (
	// Version information, overridden at build time via ldflags
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	logFormat  string
	logFile    string
	noColor    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "redscraper",
	Short: "Scrape Reddit search results with comments from the rendered site",
	Long: `Reddit Scraper is a command-line tool for collecting posts and their
comments from Reddit's search results, driving a headless browser the way a
reader would: scroll the listing, open each post, scroll its comments.

Features:
  - Incremental discovery over the infinite-scroll search results
  - Concurrent comment fetching with a configurable bound
  - Automatic retry with exponential backoff for failed fetches
  - Full-precision timestamps recovered from hover tooltips
  - JSON output to a file or stdout for piping into jq
  - Desktop notifications when a long scrape finishes

For more information and examples, visit: https://github.com/yourusername/redscraper`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != "version" && cmd.Name() != "help" && cmd.Name() != "completion" {
			ui.PrintLogo()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .redscraper.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.SetVersionTemplate(`Reddit Scraper {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
