package integration

import (
	"context"
	"fmt"
	"strings"
	"sync"

	errs "redscraper/pkg/errors"
	"redscraper/pkg/reddit"
	"redscraper/pkg/surface"
)

// Timestamp tooltips served by scripted pages, and their normalized forms.
const (
	PostTooltip      = "Mon, Jan 1, 2024, 5:30:00 PM UTC"
	PostCreatedAt    = "2024-01-01T17:30:00"
	CommentTooltip   = "Mon, Jan 1, 2024, 6:45:10 PM UTC"
	CommentCreatedAt = "2024-01-01T18:45:10"
)

// PageRecord is the scripted content behind one record element.
type PageRecord struct {
	Subreddit string
	Title     string
	Text      string
	Tooltip   string
}

// PageScript is the immutable content of one scripted page. Batches reveal
// one per scroll. Surfaces keep their own reveal state, so a retried fetch
// always starts from a pristine page.
type PageScript struct {
	Records map[string]PageRecord
	Batches [][]string
	NavErr  error
}

// ListingPage scripts a search results page revealing the given post ids
// (bare, without the "t3_" prefix) one batch per scroll.
func ListingPage(batches ...[]string) *PageScript {
	s := &PageScript{Records: make(map[string]PageRecord), Batches: make([][]string, len(batches))}
	for i, batch := range batches {
		for _, id := range batch {
			raw := "t3_" + id
			s.Batches[i] = append(s.Batches[i], raw)
			s.Records[raw] = PageRecord{
				Subreddit: "r/golang",
				Title:     "title " + id,
				Tooltip:   PostTooltip,
			}
		}
	}
	return s
}

// CommentPage scripts a post page. Each batch of comment texts reveals on
// one scroll; no batches means an empty page.
func CommentPage(batches ...[]string) *PageScript {
	s := &PageScript{Records: make(map[string]PageRecord)}
	n := 0
	for _, batch := range batches {
		var raws []string
		for _, text := range batch {
			n++
			raw := fmt.Sprintf("t1_c%d", n)
			raws = append(raws, raw)
			s.Records[raw] = PageRecord{Text: text, Tooltip: CommentTooltip}
		}
		s.Batches = append(s.Batches, raws)
	}
	return s
}

// FailingPage scripts a page whose navigation always fails with a surface
// error.
func FailingPage(msg string) *PageScript {
	return &PageScript{NavErr: errs.NewSurfaceError(nil, "%s", msg)}
}

// FakeSite stands in for the whole remote site: the search listing and
// every post page, routed by navigation URL. It implements surface.Factory.
type FakeSite struct {
	mu     sync.Mutex
	pages  map[string]*PageScript
	navs   map[string]int
	opened int
	closed int
}

// NewFakeSite creates a site with no pages scripted.
func NewFakeSite() *FakeSite {
	return &FakeSite{
		pages: make(map[string]*PageScript),
		navs:  make(map[string]int),
	}
}

// AddPage scripts the page served at url.
func (f *FakeSite) AddPage(url string, script *PageScript) {
	f.pages[url] = script
}

// NavCount returns how many times url was navigated to.
func (f *FakeSite) NavCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.navs[url]
}

// Surfaces returns how many surfaces were opened and closed.
func (f *FakeSite) Surfaces() (opened, closed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened, f.closed
}

// NewSurface implements surface.Factory.
func (f *FakeSite) NewSurface(ctx context.Context) (surface.Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.opened++
	f.mu.Unlock()
	return &fakeSurface{site: f}, nil
}

// fakeSurface is one scripted page view. Handles are record ids; child
// handles compose the id with a field name.
type fakeSurface struct {
	site        *FakeSite
	script      *PageScript
	reveals     int
	visible     []string
	lastHovered string
}

func (s *fakeSurface) Navigate(ctx context.Context, url string) error {
	s.site.mu.Lock()
	s.site.navs[url]++
	script, ok := s.site.pages[url]
	s.site.mu.Unlock()

	if !ok {
		return errs.NewSurfaceError(nil, "no page scripted for %s", url)
	}
	if script.NavErr != nil {
		return script.NavErr
	}
	s.script = script
	return nil
}

func (s *fakeSurface) RevealMore(ctx context.Context) error {
	if s.script != nil && s.reveals < len(s.script.Batches) {
		s.visible = append(s.visible, s.script.Batches[s.reveals]...)
	}
	s.reveals++
	return nil
}

func (s *fakeSurface) QueryAll(ctx context.Context, sel string) ([]surface.Handle, error) {
	handles := make([]surface.Handle, len(s.visible))
	for i, id := range s.visible {
		handles[i] = id
	}
	return handles, nil
}

func (s *fakeSurface) QueryOne(ctx context.Context, scope surface.Handle, sel string) (surface.Handle, error) {
	if scope == nil {
		if sel == reddit.TooltipSelector && s.lastHovered != "" {
			return "tooltip", nil
		}
		return nil, nil
	}

	id := scope.(string)
	rec, ok := s.script.Records[id]
	if !ok {
		return nil, nil
	}

	switch sel {
	case reddit.PostSubredditSelector:
		return id + "/subreddit", nil
	case reddit.PostTitleSelector:
		return id + "/title", nil
	case reddit.PostCreatedAtSelector, reddit.CommentCreatedAtSelector:
		return id + "/age", nil
	case reddit.CommentTextSelector:
		if rec.Text == "" {
			return nil, nil
		}
		return id + "/text", nil
	}
	return nil, nil
}

func (s *fakeSurface) Attribute(ctx context.Context, h surface.Handle, name string) (string, error) {
	if name == "id" {
		return h.(string), nil
	}
	return "", nil
}

func (s *fakeSurface) Text(ctx context.Context, h surface.Handle) (string, error) {
	key := h.(string)
	if key == "tooltip" {
		return s.script.Records[s.lastHovered].Tooltip, nil
	}

	parts := strings.SplitN(key, "/", 2)
	rec := s.script.Records[parts[0]]
	switch parts[1] {
	case "subreddit":
		return rec.Subreddit, nil
	case "title":
		return rec.Title, nil
	case "text":
		return rec.Text, nil
	}
	return "", nil
}

func (s *fakeSurface) Hover(ctx context.Context, h surface.Handle) error {
	s.lastHovered = strings.SplitN(h.(string), "/", 2)[0]
	return nil
}

func (s *fakeSurface) WaitFor(ctx context.Context, sel string) error { return nil }

func (s *fakeSurface) Close() error {
	s.site.mu.Lock()
	s.site.closed++
	s.site.mu.Unlock()
	return nil
}
