// Package pagination drives infinite-scroll pages to exhaustion.
//
// Reddit's search results and comment threads load incrementally: each
// scroll reveals more records, and there is no signal that the page is
// done. The paginator's answer is a stall counter. Every reveal attempt
// that produces at least one new record resets the counter; once
// StallLimit attempts in a row produce nothing new, the page is treated
// as exhausted.
//
// The loop is generic over the record type. The listing page runs it with
// a post parser, each comment thread runs it with a comment parser, and
// both get identical reveal, settle, dedup and stall behavior:
//
//	posts, err := pagination.Run(ctx, surf, pagination.Config[*models.Post]{
//		Selector:   reddit.PostSelector,
//		Parse:      reddit.PostParser(),
//		Key:        func(p *models.Post) string { return p.Key() },
//		Pacer:      ratelimit.NewRevealPacer(delay),
//		StallLimit: 5,
//		Logger:     log,
//	})
//
// Records come back in the order the page revealed them, deduplicated by
// key within the run.
package pagination
