// Package scraper coordinates a full scrape run: discover posts on the
// search results page, fetch each post's comments, and hand back the
// assembled results.
//
// Architecture:
//
// The Scraper struct owns the headless browser and wires together:
//   - the listing paginator that walks the infinite-scroll search results
//   - the comment fetcher that loads each post's page in its own tab
//   - run accounting for the completion summary
//
// Discovery and fetching overlap. Every post accepted from the listing is
// scheduled for a comment fetch immediately, while the listing keeps
// scrolling; Run returns once both sides have finished.
//
// Usage:
//
//	cfg := config.DefaultConfig()
//	log, err := logger.New(&cfg.Logging)
//	if err != nil {
//		// handle error
//	}
//
//	s, err := scraper.New(cfg, log)
//	if err != nil {
//		// handle error
//	}
//	defer s.Close()
//
//	posts, err := s.Run(ctx, []string{"golang", "generics"})
//
// Failure semantics:
//
// Loading the search results page is the one fatal step: without the
// listing there are no posts to work on, so its failure aborts the run and
// is never retried. A single post's comment fetch, by contrast, is retried
// with backoff and, once attempts are exhausted, abandoned; the post stays
// in the results with no comments.
package scraper
