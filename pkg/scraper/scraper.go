package scraper

import (
	"context"
	"strings"
	"time"

	"redscraper/internal/fetcher"
	"redscraper/pkg/config"
	errs "redscraper/pkg/errors"
	"redscraper/pkg/logger"
	"redscraper/pkg/models"
	"redscraper/pkg/pagination"
	"redscraper/pkg/ratelimit"
	"redscraper/pkg/reddit"
	"redscraper/pkg/retry"
	"redscraper/pkg/surface"
	"redscraper/pkg/ui"
)

// Scraper drives one scrape run: discover posts on the search results page
// and fetch each post's comments while discovery is still going.
type Scraper struct {
	factory surface.Factory
	browser *surface.Browser
	config  *config.Config
	tracker *ui.StatusTracker
	logger  logger.Logger
}

// New creates a Scraper and launches its headless browser. A browser that
// cannot start fails here, before any scraping begins. Callers own the
// returned Scraper and must Close it.
func New(cfg *config.Config, log logger.Logger) (*Scraper, error) {
	log = logger.OrNop(log)

	browser, err := surface.NewBrowser(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	s := NewWithFactory(browser, cfg, log)
	s.browser = browser
	return s, nil
}

// NewWithFactory wires a Scraper around an existing surface factory. Callers
// that manage their own browser, and tests that substitute scripted
// surfaces, use this; everyone else goes through New. Close is a no-op on
// scrapers built this way.
func NewWithFactory(factory surface.Factory, cfg *config.Config, log logger.Logger) *Scraper {
	return &Scraper{
		factory: factory,
		config:  cfg,
		tracker: ui.NewStatusTracker(),
		logger:  logger.OrNop(log),
	}
}

// Tracker exposes the run accounting for the completion summary.
func (s *Scraper) Tracker() *ui.StatusTracker {
	return s.tracker
}

// Run scrapes every post matching the keywords, with comments attached, in
// the order the listing revealed them. Posts whose comment fetch failed all
// its attempts are kept with no comments.
//
// A listing failure aborts the run: unlike a single post's comments, there
// is no remaining work without the listing, so it is never retried.
func (s *Scraper) Run(ctx context.Context, keywords []string) ([]models.Post, error) {
	if len(keywords) == 0 {
		return nil, errs.NewConfigError("at least one search keyword is required")
	}
	query := strings.Join(keywords, " ")

	s.logger.InfoWithFields("starting scrape", map[string]interface{}{
		"query": query,
	})

	surf, err := s.factory.NewSurface(ctx)
	if err != nil {
		return nil, err
	}
	defer surf.Close()

	s.logger.Info("loading search page")
	if err := surf.Navigate(ctx, reddit.SearchURL(s.config.Reddit.BaseURL, query)); err != nil {
		return nil, err
	}

	fetchCtx, cancelFetches := context.WithCancel(ctx)
	defer cancelFetches()

	comments := fetcher.New(s.factory, fetcher.Config{
		BaseURL:       s.config.Reddit.BaseURL,
		MaxConcurrent: s.config.Scrape.ConcurrentFetches,
		StallLimit:    s.config.Scrape.CommentStallLimit,
		SettleDelay:   time.Duration(s.config.Scrape.ScrollDelay),
		MaxAttempts:   s.config.Retry.MaxAttempts,
		Backoff: &retry.ExponentialBackoff{
			BaseDelay:    time.Duration(s.config.Retry.InitialBackoff),
			MaxDelay:     time.Duration(s.config.Retry.MaxBackoff),
			Multiplier:   s.config.Retry.Multiplier,
			JitterFactor: 0.1,
		},
		OnAbandon: func(post *models.Post) { s.tracker.AddAbandoned() },
	}, s.logger)

	posts, err := pagination.Run(ctx, surf, pagination.Config[*models.Post]{
		Selector:   reddit.PostSelector,
		Parse:      reddit.PostParser(),
		Key:        (*models.Post).Key,
		Pacer:      ratelimit.NewRevealPacer(time.Duration(s.config.Scrape.ScrollDelay)),
		StallLimit: s.config.Scrape.PostStallLimit,
		OnAccept: func(post *models.Post) {
			s.tracker.AddPost()
			comments.Schedule(fetchCtx, post)
		},
		Logger: s.logger,
	})
	if err != nil {
		// Fetches already in flight have nothing to deliver into.
		cancelFetches()
		comments.Wait()
		return nil, err
	}

	s.logger.InfoWithFields("all posts loaded", map[string]interface{}{
		"posts": len(posts),
	})

	comments.Wait()
	s.logger.Info("all comments loaded")

	total := 0
	for _, post := range posts {
		total += len(post.Comments)
	}
	s.tracker.AddComments(total)

	results := make([]models.Post, len(posts))
	for i, post := range posts {
		results[i] = *post
	}

	s.logger.InfoWithFields("scrape finished", map[string]interface{}{
		"query":    query,
		"posts":    len(results),
		"comments": total,
	})

	return results, nil
}

// Close shuts down the browser. Safe to call when New failed partway.
func (s *Scraper) Close() error {
	if s.browser != nil {
		return s.browser.Close()
	}
	return nil
}
