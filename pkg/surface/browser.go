package surface

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/dom"
	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"

	"redscraper/pkg/config"
	errs "redscraper/pkg/errors"
	"redscraper/pkg/logger"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Browser owns the headless browser process and hands out isolated tabs as
// surfaces. It implements Factory.
type Browser struct {
	browserCtx    context.Context
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc

	scrollPixels    int
	actionTimeout   time.Duration
	navigateTimeout time.Duration

	log logger.Logger
}

// NewBrowser launches the browser process. A missing or broken binary fails
// here, before any scraping begins.
func NewBrowser(ctx context.Context, cfg *config.Config, log logger.Logger) (*Browser, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Scrape.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(defaultUserAgent),
	)
	if cfg.Scrape.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.Scrape.ChromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			log.Debug(fmt.Sprintf(format, args...))
		}),
	)

	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, errs.NewSurfaceError(err, "starting browser")
	}

	return &Browser{
		browserCtx:      browserCtx,
		cancelBrowser:   cancelBrowser,
		cancelAlloc:     cancelAlloc,
		scrollPixels:    cfg.Scrape.ScrollPixels,
		actionTimeout:   time.Duration(cfg.Surface.ActionTimeout),
		navigateTimeout: time.Duration(cfg.Surface.NavigateTimeout),
		log:             log,
	}, nil
}

// NewSurface opens a fresh tab. Tabs share the browser process but no page
// state, so concurrent fetches stay isolated.
func (b *Browser) NewSurface(ctx context.Context) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(b.browserCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		cancel()
		return nil, errs.NewSurfaceError(err, "opening tab")
	}

	return &chromeSurface{
		tabCtx:          tabCtx,
		cancel:          cancel,
		scrollPixels:    b.scrollPixels,
		actionTimeout:   b.actionTimeout,
		navigateTimeout: b.navigateTimeout,
	}, nil
}

// Close shuts down the browser process and its allocator.
func (b *Browser) Close() error {
	b.cancelBrowser()
	b.cancelAlloc()
	return nil
}

// chromeSurface is one browser tab.
type chromeSurface struct {
	tabCtx context.Context
	cancel context.CancelFunc

	scrollPixels    int
	actionTimeout   time.Duration
	navigateTimeout time.Duration
}

// run executes actions against the tab, bounded by timeout. The caller's
// context is bridged in so its cancellation interrupts the action.
func (s *chromeSurface) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx, cancel := context.WithTimeout(s.tabCtx, timeout)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(runCtx, actions...)
}

// wrap classifies a failed action: caller cancellation passes through
// untouched, everything else (timeouts included) is a surface error.
func (s *chromeSurface) wrap(ctx context.Context, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return errs.NewSurfaceError(err, format, args...)
}

func (s *chromeSurface) Navigate(ctx context.Context, url string) error {
	err := s.run(ctx, s.navigateTimeout, chromedp.Navigate(url))
	return s.wrap(ctx, err, "navigate %s", url)
}

func (s *chromeSurface) RevealMore(ctx context.Context) error {
	expr := fmt.Sprintf("window.scrollBy(0, %d);", s.scrollPixels)
	err := s.run(ctx, s.actionTimeout, chromedp.Evaluate(expr, nil))
	return s.wrap(ctx, err, "scroll by %d", s.scrollPixels)
}

func (s *chromeSurface) QueryAll(ctx context.Context, sel string) ([]Handle, error) {
	var nodes []*cdp.Node
	err := s.run(ctx, s.actionTimeout,
		chromedp.Nodes(sel, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return nil, s.wrap(ctx, err, "query all %q", sel)
	}

	handles := make([]Handle, len(nodes))
	for i, n := range nodes {
		handles[i] = n
	}
	return handles, nil
}

func (s *chromeSurface) QueryOne(ctx context.Context, scope Handle, sel string) (Handle, error) {
	queryOpts := []chromedp.QueryOption{chromedp.ByQuery, chromedp.AtLeast(0)}
	if scope != nil {
		node, err := nodeFromHandle(scope)
		if err != nil {
			return nil, err
		}
		queryOpts = append(queryOpts, chromedp.FromNode(node))
	}

	var nodes []*cdp.Node
	err := s.run(ctx, s.actionTimeout, chromedp.Nodes(sel, &nodes, queryOpts...))
	if err != nil {
		return nil, s.wrap(ctx, err, "query %q", sel)
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	return nodes[0], nil
}

func (s *chromeSurface) Attribute(ctx context.Context, h Handle, name string) (string, error) {
	node, err := nodeFromHandle(h)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// Attributes were captured with the node snapshot; no protocol call.
	return node.AttributeValue(name), nil
}

func (s *chromeSurface) Text(ctx context.Context, h Handle) (string, error) {
	node, err := nodeFromHandle(h)
	if err != nil {
		return "", err
	}

	var text string
	err = s.run(ctx, s.actionTimeout,
		chromedp.Text([]cdp.NodeID{node.NodeID}, &text, chromedp.ByNodeID))
	if err != nil {
		return "", s.wrap(ctx, err, "text of node %d", node.NodeID)
	}
	return text, nil
}

func (s *chromeSurface) Hover(ctx context.Context, h Handle) error {
	node, err := nodeFromHandle(h)
	if err != nil {
		return err
	}

	err = s.run(ctx, s.actionTimeout, chromedp.ActionFunc(func(actionCtx context.Context) error {
		quads, err := dom.GetContentQuads().WithNodeID(node.NodeID).Do(actionCtx)
		if err != nil {
			return err
		}
		if len(quads) == 0 {
			return fmt.Errorf("node %d has no content quads", node.NodeID)
		}
		x, y := quadCenter(quads[0])
		return input.DispatchMouseEvent(input.MouseMoved, x, y).Do(actionCtx)
	}))
	return s.wrap(ctx, err, "hover node %d", node.NodeID)
}

func (s *chromeSurface) WaitFor(ctx context.Context, sel string) error {
	err := s.run(ctx, s.actionTimeout, chromedp.WaitVisible(sel, chromedp.ByQuery))
	return s.wrap(ctx, err, "wait for %q", sel)
}

func (s *chromeSurface) Close() error {
	s.cancel()
	return nil
}

func nodeFromHandle(h Handle) (*cdp.Node, error) {
	node, ok := h.(*cdp.Node)
	if !ok || node == nil {
		return nil, errs.NewSurfaceError(nil, "handle is not a browser element")
	}
	return node, nil
}

// quadCenter returns the geometric center of a content quad. A quad is four
// x,y corner pairs in document order.
func quadCenter(q dom.Quad) (float64, float64) {
	var x, y float64
	for i := 0; i+1 < len(q); i += 2 {
		x += q[i]
		y += q[i+1]
	}
	points := float64(len(q) / 2)
	if points == 0 {
		return 0, 0
	}
	return x / points, y / points
}
