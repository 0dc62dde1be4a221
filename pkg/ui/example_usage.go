// Package ui provides terminal output for the scraper CLI
// This file demonstrates example usage of the UI components
package ui

/*
Example usage of the UI components:

// Terminal colors and output
ui.PrintLogo()                                   // Print ASCII banner
ui.PrintInfo("Query", "golang generics")         // Cyan label, yellow value
ui.PrintSuccess("Scrape completed!")             // Green success message
ui.PrintError("Scrape failed", err)              // Red error message
ui.PrintWarning("Browser not headless")          // Yellow warning message
ui.PrintHighlight("[SCRAPING]")                  // Magenta highlight message

// Run summary
tracker := ui.NewStatusTracker()
tracker.AddPost()                                // One per discovered post
tracker.AddComments(12)                          // Per completed comment fetch
tracker.AddAbandoned()                           // Per fetch that gave up
tracker.PrintSummary("output.json")              // Totals, elapsed, output path

// Desktop notification on completion (opt-in via config)
notifier := ui.NewNotifier(cfg.UI.NotificationsEnabled)
notifier.Notify("Scrape complete", "42 posts written to output.json")

// Direct color usage
fmt.Printf("%s: %s\n", ui.Cyan("Keyword"), ui.Yellow("golang"))
fmt.Println(ui.Green("✓ Success"))
fmt.Println(ui.Red("✗ Failed"))
*/
