// Package fetcher runs the comment fetches that follow post discovery.
// Fetches are scheduled as posts stream out of the listing and run
// concurrently, each against its own browsing context. A fetch that fails
// all its attempts leaves the post without comments; it never fails the run.
package fetcher

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	errs "redscraper/pkg/errors"
	"redscraper/pkg/logger"
	"redscraper/pkg/models"
	"redscraper/pkg/pagination"
	"redscraper/pkg/ratelimit"
	"redscraper/pkg/reddit"
	"redscraper/pkg/retry"
	"redscraper/pkg/surface"
)

// Config carries the knobs for comment fetching.
type Config struct {
	// BaseURL is the site root comment page URLs are built against.
	BaseURL string

	// MaxConcurrent bounds how many fetches run at once.
	MaxConcurrent int

	// StallLimit is the comment paginator's stall budget.
	StallLimit int

	// SettleDelay paces comment reveal attempts.
	SettleDelay time.Duration

	// MaxAttempts bounds how often one post's fetch is tried.
	MaxAttempts int

	// Backoff spaces out retry attempts. Strategies are stateless, so one
	// instance serves every concurrent fetch.
	Backoff retry.BackoffStrategy

	// OnAbandon, when set, is called for each post whose fetch ran out of
	// attempts. Called from fetch goroutines; implementations must be safe
	// for concurrent use.
	OnAbandon func(post *models.Post)
}

// Fetcher schedules and tracks comment fetches.
type Fetcher struct {
	factory   surface.Factory
	cfg       Config
	sem       chan struct{}
	wg        sync.WaitGroup
	scheduled atomic.Int64
	logger    logger.Logger
}

// New creates a fetcher. Zero or negative limits fall back to the smallest
// working value so a misassembled config cannot hang Wait forever.
func New(factory surface.Factory, cfg Config, log logger.Logger) *Fetcher {
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = 1
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.Backoff == nil {
		cfg.Backoff = retry.DefaultExponentialBackoff()
	}

	return &Fetcher{
		factory: factory,
		cfg:     cfg,
		sem:     make(chan struct{}, cfg.MaxConcurrent),
		logger:  logger.OrNop(log),
	}
}

// Schedule queues a comment fetch for post and returns immediately. The
// fetch fills post.Comments once it completes; callers must not read the
// post until Wait has returned. Each post is scheduled at most once by the
// discovery loop.
func (f *Fetcher) Schedule(ctx context.Context, post *models.Post) {
	f.wg.Add(1)
	f.scheduled.Add(1)
	f.logger.DebugWithFields("comment fetch scheduled", logger.PostFields(post.Subreddit, post.ID))

	go func() {
		defer f.wg.Done()

		select {
		case f.sem <- struct{}{}:
			defer func() { <-f.sem }()
		case <-ctx.Done():
			return
		}

		f.fetch(ctx, post)
	}()
}

// Wait blocks until every scheduled fetch has finished.
func (f *Fetcher) Wait() {
	f.wg.Wait()
}

// Scheduled returns how many fetches have been scheduled so far.
func (f *Fetcher) Scheduled() int {
	return int(f.scheduled.Load())
}

// fetch drives one post's comment fetch through the retry policy. Every
// attempt opens a fresh browsing context; a half-scrolled page from a failed
// attempt is never reused.
func (f *Fetcher) fetch(ctx context.Context, post *models.Post) {
	log := f.logger.WithFields(logger.PostFields(post.Subreddit, post.ID))

	err := retry.Do(func() error {
		return f.attempt(ctx, post, log)
	}, &retry.Config{
		MaxAttempts: f.cfg.MaxAttempts,
		Backoff:     f.cfg.Backoff,
		RetryIf:     retry.DefaultRetryIf,
		Context:     ctx,
		Logger:      log,
	})
	if err == nil {
		return
	}

	// The run goes on without this post's comments.
	post.Comments = []models.Comment{}

	if ctx.Err() != nil {
		log.WarnWithFields("comment fetch cancelled", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	exhausted := errs.NewExhaustedError(err, "fetching comments")
	log.ErrorWithFields("comment fetch abandoned", map[string]interface{}{
		"error": exhausted.Error(),
	})

	if f.cfg.OnAbandon != nil {
		f.cfg.OnAbandon(post)
	}
}

// attempt is a single try: open a tab, load the post page, page through its
// comments. The extracted comments only land on the post when the whole
// attempt succeeds.
func (f *Fetcher) attempt(ctx context.Context, post *models.Post, log logger.Logger) error {
	surf, err := f.factory.NewSurface(ctx)
	if err != nil {
		return err
	}
	defer surf.Close()

	log.Info("loading post page")

	if err := surf.Navigate(ctx, reddit.CommentsURL(f.cfg.BaseURL, post.Subreddit, post.ID)); err != nil {
		return err
	}

	comments, err := pagination.Run(ctx, surf, pagination.Config[models.Comment]{
		Selector:   reddit.CommentSelector,
		Parse:      reddit.CommentParser(),
		Key:        models.Comment.Key,
		Pacer:      ratelimit.NewRevealPacer(f.cfg.SettleDelay),
		StallLimit: f.cfg.StallLimit,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	post.Comments = comments
	return nil
}
