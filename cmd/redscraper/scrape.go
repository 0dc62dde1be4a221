package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"redscraper/pkg/config"
	"redscraper/pkg/logger"
	"redscraper/pkg/report"
	"redscraper/pkg/scraper"
	"redscraper/pkg/storage"
	"redscraper/pkg/ui"
)

var (
	// Scrape command flags
	baseURL     string
	outputPath  string
	concurrent  int
	maxRetries  int
	headless    bool
	chromePath  string
	writeReport bool
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape <keyword>...",
	Short: "Scrape posts matching the given keywords, with their comments",
	Long: `Search Reddit for the given keywords and collect every matching post
together with its comments.

The scraper scrolls the search results until no new posts appear, opening
each discovered post in its own browser tab to collect comments while the
listing is still being scrolled. Results are written as a JSON array in the
order the posts appeared.

Posts whose comment fetch keeps failing are kept in the output with an
empty comment list; only a failure to load the search results itself aborts
the run.`,
	Example: `  # Scrape with default settings, writing output.json
  redscraper scrape golang generics

  # Write to stdout and pipe into jq
  redscraper scrape golang --output - | jq '.[].title'

  # Watch the browser work
  redscraper scrape golang --headless=false

  # Keep a run report next to the output file
  redscraper scrape golang --report`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runScrape(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&baseURL, "base-url", "", "reddit base URL override")
	scrapeCmd.Flags().StringVarP(&outputPath, "output", "o", "", `output file, "-" for stdout (default output.json)`)
	scrapeCmd.Flags().IntVar(&concurrent, "concurrent", 0, "number of concurrent comment fetches")
	scrapeCmd.Flags().IntVar(&maxRetries, "max-retries", 0, "maximum attempts per comment fetch")
	scrapeCmd.Flags().BoolVar(&headless, "headless", true, "run the browser without a window")
	scrapeCmd.Flags().StringVar(&chromePath, "chrome-path", "", "path to the browser binary")
	scrapeCmd.Flags().BoolVar(&writeReport, "report", false, "write a run report next to the output file")

	// Same flags on the root command so plain "redscraper <keywords>" works
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "reddit base URL override")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", `output file, "-" for stdout (default output.json)`)
	rootCmd.Flags().IntVar(&concurrent, "concurrent", 0, "number of concurrent comment fetches")
	rootCmd.Flags().IntVar(&maxRetries, "max-retries", 0, "maximum attempts per comment fetch")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "run the browser without a window")
	rootCmd.Flags().StringVar(&chromePath, "chrome-path", "", "path to the browser binary")
	rootCmd.Flags().BoolVar(&writeReport, "report", false, "write a run report next to the output file")
}

func runScrape(cmd *cobra.Command, args []string) {
	keywords := make([]string, 0, len(args))
	for _, arg := range args {
		if kw := strings.TrimSpace(arg); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		ui.PrintError("No search keywords given")
		os.Exit(1)
	}

	query := strings.Join(keywords, " ")
	ui.PrintInfo("Search query", query)

	// Build flags map from command line
	flags := make(map[string]interface{})
	if baseURL != "" {
		flags["base-url"] = baseURL
	}
	if outputPath != "" {
		flags["output"] = outputPath
	}
	if concurrent > 0 {
		flags["concurrent"] = concurrent
	}
	if maxRetries > 0 {
		flags["max-retries"] = maxRetries
	}
	if !headless {
		flags["headless"] = false
	}
	if chromePath != "" {
		flags["chrome-path"] = chromePath
	}
	if writeReport {
		flags["report"] = true
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	if logFormat != "" {
		flags["log-format"] = logFormat
	}
	if logFile != "" {
		flags["log-file"] = logFile
	}
	if noColor {
		flags["no-color"] = true
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}

	log.WithField("version", version).Info("reddit scraper starting")

	s, err := scraper.New(cfg, log)
	if err != nil {
		log.WithError(err).Error("browser failed to start")
		ui.PrintError("Failed to start browser", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	posts, err := s.Run(ctx, keywords)
	finished := time.Now()
	s.Close()

	if err != nil {
		log.WithError(err).WithField("query", query).Error("scrape failed")
		ui.PrintError("SCRAPE FAILED", err.Error())
		os.Exit(1)
	}

	writer := storage.NewWriter(cfg.Output.Path)
	if err := writer.Write(posts); err != nil {
		log.WithError(err).Error("failed to write results")
		ui.PrintError("Failed to write results", err.Error())
		os.Exit(1)
	}

	tracker := s.Tracker()
	tracker.PrintSummary(writer.Path())

	if cfg.Output.WriteReport {
		writeRunReport(cfg, log, tracker, query, keywords, start, finished)
	}

	notifier := ui.NewNotifier(cfg.UI.NotificationsEnabled)
	notifier.Notify("Scrape complete",
		fmt.Sprintf("%d posts, %d comments for %q", tracker.Posts(), tracker.Comments(), query))

	log.InfoWithFields("scrape completed", map[string]interface{}{
		"query":    query,
		"posts":    tracker.Posts(),
		"comments": tracker.Comments(),
	})
}

// writeRunReport saves the sidecar run report. A failed report never fails
// a finished scrape.
func writeRunReport(cfg *config.Config, log logger.Logger, tracker *ui.StatusTracker, query string, keywords []string, start, finished time.Time) {
	path := report.PathFor(cfg.Output.Path)
	if path == "" {
		log.Warn("run report skipped, stdout output has no report path")
		return
	}

	r := &report.Report{
		Query:      query,
		Keywords:   keywords,
		Posts:      tracker.Posts(),
		Comments:   tracker.Comments(),
		Abandoned:  tracker.Abandoned(),
		OutputPath: cfg.Output.Path,
		StartedAt:  start.UTC(),
		FinishedAt: finished.UTC(),
		ElapsedMS:  finished.Sub(start).Milliseconds(),
	}

	if err := r.Save(path); err != nil {
		log.WithError(err).Warn("failed to write run report")
		return
	}
	ui.PrintInfo("Report", path)
}

// Make scrape the default command when no subcommand is specified
func init() {
	origRunE := rootCmd.RunE
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if origRunE != nil {
			return origRunE(cmd, args)
		}
		if len(args) > 0 && !isKnownCommand(args[0]) {
			// Treat the arguments as search keywords
			return scrapeCmd.RunE(scrapeCmd, args)
		}
		return cmd.Help()
	}

	rootCmd.Args = cobra.ArbitraryArgs
}

func isKnownCommand(arg string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == arg || cmd.HasAlias(arg) {
			return true
		}
	}
	return false
}
