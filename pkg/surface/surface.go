// Package surface abstracts the rendered-page interactions the scraper
// depends on: navigation, scroll-driven content reveal, element queries, and
// hover. The production implementation drives a headless browser through
// chromedp; tests substitute scripted fakes.
package surface

import "context"

// Handle is an opaque element reference. It is only meaningful to the
// Surface that produced it and must not be passed across surfaces.
type Handle any

// Surface is a live rendered page. Implementations bound every action with
// a configured timeout and report failures as surface errors.
type Surface interface {
	// Navigate loads the given URL and waits for the page to settle.
	Navigate(ctx context.Context, url string) error

	// RevealMore asks the page to expose further content, typically by
	// scrolling. More records may appear after a settle delay.
	RevealMore(ctx context.Context) error

	// QueryAll returns handles for every element currently matching sel,
	// in document order. No matches is an empty slice, not an error.
	QueryAll(ctx context.Context, sel string) ([]Handle, error)

	// QueryOne returns the first element matching sel underneath scope.
	// A nil scope searches the whole document. An absent element returns
	// (nil, nil); callers decide whether absence is tolerable.
	QueryOne(ctx context.Context, scope Handle, sel string) (Handle, error)

	// Attribute returns the value of the named attribute on h, or the
	// empty string when the attribute is absent.
	Attribute(ctx context.Context, h Handle, name string) (string, error)

	// Text returns the rendered text content of h.
	Text(ctx context.Context, h Handle) (string, error)

	// Hover moves the pointer over h, triggering hover-revealed content.
	Hover(ctx context.Context, h Handle) error

	// WaitFor blocks until an element matching sel is visible or the
	// action timeout expires.
	WaitFor(ctx context.Context, sel string) error

	// Close releases the page and its browsing context.
	Close() error
}

// Factory creates isolated surfaces. Each call yields a fresh browsing
// context so concurrent fetches never share page state.
type Factory interface {
	NewSurface(ctx context.Context) (Surface, error)
}
