// Package ratelimit paces actions against the render surface.
//
// The scraper's only pacing requirement is the fixed settle delay between a
// reveal action (a scroll) and the read that follows it: freshly revealed
// content needs time to lazy-load before the record list is queried. That
// delay is expressed as a single-token bucket that starts empty, so every
// Wait blocks until a full delay has elapsed since the previous read.
//
// Interface:
//
// All limiters implement the Limiter interface:
//   - Allow() bool - consume a slot if one is available
//   - Wait() - block until a slot is available
//   - Reset() - restore the initial state
//
// Usage:
//
//	pacer := ratelimit.NewRevealPacer(time.Second)
//
//	for {
//	    surf.RevealMore(ctx)
//	    pacer.Wait() // content settles
//	    handles, err := surf.QueryAll(ctx, selector)
//	    ...
//	}
//
// Tests substitute ratelimit.Nop to run pagination loops at full speed.
package ratelimit
