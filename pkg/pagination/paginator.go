package pagination

import (
	"context"

	errs "redscraper/pkg/errors"
	"redscraper/pkg/logger"
	"redscraper/pkg/ratelimit"
	"redscraper/pkg/surface"
)

// ParseFunc extracts one record from a raw element handle. The surface is
// passed in so parsers can run scoped queries and hover flows against the
// element.
type ParseFunc[T any] func(ctx context.Context, surf surface.Surface, h surface.Handle) (T, error)

// Config parameterizes one pagination run.
type Config[T any] struct {
	// Selector matches the raw elements that carry one record each.
	Selector string

	// Parse extracts a record from an element handle.
	Parse ParseFunc[T]

	// Key derives the deduplication key of a record. Records whose key was
	// already accepted in this run are dropped.
	Key func(T) string

	// Pacer blocks between the reveal action and the read that follows it,
	// giving newly revealed content time to settle.
	Pacer ratelimit.Limiter

	// StallLimit is how many consecutive reveal attempts may yield nothing
	// new before the run concludes the page is exhausted.
	StallLimit int

	// OnAccept, when set, observes every accepted record in acceptance
	// order, before Run returns.
	OnAccept func(T)

	// Logger receives per-attempt progress. Nil is allowed.
	Logger logger.Logger
}

// Run repeatedly reveals more of the page and collects every new record it
// finds, in page order, until StallLimit consecutive attempts surface
// nothing new. Elements already examined in an earlier attempt are skipped
// by position, so only the tail of each query result is parsed.
//
// A parse failure on a single element skips that element and continues; any
// other error aborts the run. The returned slice is never nil.
func Run[T any](ctx context.Context, surf surface.Surface, cfg Config[T]) ([]T, error) {
	log := logger.OrNop(cfg.Logger)
	tracker := NewTracker()
	records := make([]T, 0)

	seenCount := 0
	stall := 0
	foundNew := true

	for foundNew || stall < cfg.StallLimit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !foundNew {
			log.DebugWithFields("no new records found", map[string]interface{}{
				"attempt": stall + 1,
			})
		}
		foundNew = false

		if err := surf.RevealMore(ctx); err != nil {
			return nil, err
		}
		cfg.Pacer.Wait()

		handles, err := surf.QueryAll(ctx, cfg.Selector)
		if err != nil {
			return nil, err
		}

		// The page only ever appends, so everything before seenCount was
		// already examined in an earlier attempt.
		var fresh []surface.Handle
		if seenCount < len(handles) {
			fresh = handles[seenCount:]
		}

		for _, h := range fresh {
			record, err := cfg.Parse(ctx, surf, h)
			if err != nil {
				if errs.IsParse(err) {
					log.WarnWithFields("skipping malformed record", map[string]interface{}{
						"error": err.Error(),
					})
					continue
				}
				return nil, err
			}

			key := cfg.Key(record)
			if tracker.Has(key) {
				log.WarnWithFields("duplicate record", map[string]interface{}{
					"key": key,
				})
				continue
			}

			tracker.Add(key)
			records = append(records, record)
			if cfg.OnAccept != nil {
				cfg.OnAccept(record)
			}
			stall = 0
			foundNew = true
		}

		seenCount = len(handles)

		if !foundNew {
			stall++
		}

		log.InfoWithFields("records found", map[string]interface{}{
			"count": len(records),
		})
	}

	return records, nil
}
