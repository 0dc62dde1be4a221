package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"redscraper/pkg/config"
	errs "redscraper/pkg/errors"
	"redscraper/pkg/reddit"
	"redscraper/pkg/surface"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	postTooltip    = "Mon, Jan 1, 2024, 5:30:00 PM UTC"
	postCreatedAt  = "2024-01-01T17:30:00"
	commentTooltip = "Mon, Jan 1, 2024, 6:45:10 PM UTC"
	commentCreated = "2024-01-01T18:45:10"
)

// pageRecord is the scripted content behind one record element.
type pageRecord struct {
	subreddit string
	title     string
	text      string
	tooltip   string
}

// pageScript is the immutable content of one scripted page. Surfaces bind
// to a script on Navigate and keep their own reveal state, so a retried
// fetch always starts from a pristine page.
type pageScript struct {
	records map[string]pageRecord
	batches [][]string
	navErr  error
}

// postScript scripts a search results page whose posts reveal in the given
// batches, one batch per scroll.
func postScript(batches ...[]string) *pageScript {
	s := &pageScript{records: make(map[string]pageRecord), batches: batches}
	for _, batch := range batches {
		for _, id := range batch {
			name := strings.TrimPrefix(id, "t3_")
			s.records[id] = pageRecord{
				subreddit: "r/golang",
				title:     "title " + name,
				tooltip:   postTooltip,
			}
		}
	}
	return s
}

// commentScript scripts a post page carrying one comment per given text,
// all revealed by the first scroll. No texts means an empty page.
func commentScript(texts ...string) *pageScript {
	s := &pageScript{records: make(map[string]pageRecord)}
	var batch []string
	for i, text := range texts {
		id := fmt.Sprintf("t1_c%d", i+1)
		batch = append(batch, id)
		s.records[id] = pageRecord{text: text, tooltip: commentTooltip}
	}
	if batch != nil {
		s.batches = [][]string{batch}
	}
	return s
}

// fakeFactory hands out surfaces that serve scripted pages, routed by the
// URL they navigate to.
type fakeFactory struct {
	mu       sync.Mutex
	scripts  map[string]*pageScript
	navs     map[string]int
	surfaces int
	closes   int
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		scripts: make(map[string]*pageScript),
		navs:    make(map[string]int),
	}
}

func (f *fakeFactory) script(url string, s *pageScript) {
	f.scripts[url] = s
}

func (f *fakeFactory) navCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.navs[url]
}

func (f *fakeFactory) NewSurface(ctx context.Context) (surface.Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.surfaces++
	f.mu.Unlock()
	return &fakeSurface{f: f}, nil
}

// fakeSurface is one scripted page view. Handles are record ids; child
// handles compose the id with a field name.
type fakeSurface struct {
	f           *fakeFactory
	script      *pageScript
	reveals     int
	visible     []string
	lastHovered string
}

func (s *fakeSurface) Navigate(ctx context.Context, url string) error {
	s.f.mu.Lock()
	s.f.navs[url]++
	script, ok := s.f.scripts[url]
	s.f.mu.Unlock()

	if !ok {
		return errs.NewSurfaceError(nil, "no page scripted for %s", url)
	}
	if script.navErr != nil {
		return script.navErr
	}
	s.script = script
	return nil
}

func (s *fakeSurface) RevealMore(ctx context.Context) error {
	if s.script != nil && s.reveals < len(s.script.batches) {
		s.visible = append(s.visible, s.script.batches[s.reveals]...)
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
	rec, ok := s.script.records[id]
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
		if rec.text == "" {
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
		return s.script.records[s.lastHovered].tooltip, nil
	}

	parts := strings.SplitN(key, "/", 2)
	rec := s.script.records[parts[0]]
	switch parts[1] {
	case "subreddit":
		return rec.subreddit, nil
	case "title":
		return rec.title, nil
	case "text":
		return rec.text, nil
	}
	return "", nil
}

func (s *fakeSurface) Hover(ctx context.Context, h surface.Handle) error {
	s.lastHovered = strings.SplitN(h.(string), "/", 2)[0]
	return nil
}

func (s *fakeSurface) WaitFor(ctx context.Context, sel string) error { return nil }

func (s *fakeSurface) Close() error {
	s.f.mu.Lock()
	s.f.closes++
	s.f.mu.Unlock()
	return nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scrape.ScrollDelay = config.Duration(time.Millisecond)
	cfg.Scrape.PostStallLimit = 2
	cfg.Scrape.CommentStallLimit = 1
	cfg.Scrape.ConcurrentFetches = 2
	cfg.Retry.MaxAttempts = 2
	cfg.Retry.InitialBackoff = config.Duration(time.Millisecond)
	cfg.Retry.MaxBackoff = config.Duration(2 * time.Millisecond)
	return cfg
}

func commentsURL(cfg *config.Config, id string) string {
	return reddit.CommentsURL(cfg.Reddit.BaseURL, "r/golang", id)
}

func TestRunCollectsPostsAndComments(t *testing.T) {
	cfg := testConfig()
	factory := newFakeFactory()

	listingURL := reddit.SearchURL(cfg.Reddit.BaseURL, "golang generics")
	factory.script(listingURL, postScript([]string{"t3_p1", "t3_p2"}, []string{"t3_p3"}))
	factory.script(commentsURL(cfg, "p1"), commentScript("first", "second"))
	factory.script(commentsURL(cfg, "p2"), commentScript())
	factory.script(commentsURL(cfg, "p3"), commentScript("third"))

	s := NewWithFactory(factory, cfg, nil)
	posts, err := s.Run(context.Background(), []string{"golang", "generics"})
	require.NoError(t, err)

	require.Len(t, posts, 3)
	assert.Equal(t, "p1", posts[0].ID)
	assert.Equal(t, "p2", posts[1].ID)
	assert.Equal(t, "p3", posts[2].ID)

	assert.Equal(t, "r/golang", posts[0].Subreddit)
	assert.Equal(t, "title p1", posts[0].Title)
	assert.Equal(t, postCreatedAt, posts[0].CreatedAt)

	require.Len(t, posts[0].Comments, 2)
	assert.Equal(t, "c1", posts[0].Comments[0].ID)
	assert.Equal(t, "first", posts[0].Comments[0].Text)
	assert.Equal(t, commentCreated, posts[0].Comments[0].CreatedAt)
	assert.Equal(t, "c2", posts[0].Comments[1].ID)

	require.NotNil(t, posts[1].Comments)
	assert.Empty(t, posts[1].Comments)
	require.Len(t, posts[2].Comments, 1)

	assert.Equal(t, 3, s.Tracker().Posts())
	assert.Equal(t, 3, s.Tracker().Comments())
	assert.Equal(t, 0, s.Tracker().Abandoned())

	// One listing surface plus one per fetch attempt, all closed.
	assert.Equal(t, 4, factory.surfaces)
	assert.Equal(t, factory.surfaces, factory.closes)
}

func TestRunSchedulesEachPostOnce(t *testing.T) {
	cfg := testConfig()
	factory := newFakeFactory()

	// The second scroll reveals p1 again alongside the genuinely new p3.
	listingURL := reddit.SearchURL(cfg.Reddit.BaseURL, "golang")
	factory.script(listingURL, postScript([]string{"t3_p1", "t3_p2"}, []string{"t3_p1", "t3_p3"}))
	factory.script(commentsURL(cfg, "p1"), commentScript("a"))
	factory.script(commentsURL(cfg, "p2"), commentScript("b"))
	factory.script(commentsURL(cfg, "p3"), commentScript("c"))

	s := NewWithFactory(factory, cfg, nil)
	posts, err := s.Run(context.Background(), []string{"golang"})
	require.NoError(t, err)

	require.Len(t, posts, 3)
	assert.Equal(t, 1, factory.navCount(commentsURL(cfg, "p1")))
	assert.Equal(t, 3, s.Tracker().Posts())
}

func TestRunEmptyKeywords(t *testing.T) {
	factory := newFakeFactory()
	s := NewWithFactory(factory, testConfig(), nil)

	for _, keywords := range [][]string{nil, {}} {
		_, err := s.Run(context.Background(), keywords)
		require.Error(t, err)
		assert.Equal(t, errs.ErrorTypeConfig, errs.TypeOf(err))
	}

	// Rejected before any browser work.
	assert.Equal(t, 0, factory.surfaces)
}

func TestRunListingFailureIsFatal(t *testing.T) {
	cfg := testConfig()
	factory := newFakeFactory()

	listingURL := reddit.SearchURL(cfg.Reddit.BaseURL, "golang")
	factory.script(listingURL, &pageScript{
		navErr: errs.NewSurfaceError(nil, "search page did not load"),
	})

	s := NewWithFactory(factory, cfg, nil)
	posts, err := s.Run(context.Background(), []string{"golang"})

	require.Error(t, err)
	assert.True(t, errs.IsSurface(err))
	assert.Nil(t, posts)

	// Unlike comment fetches, the listing is never retried.
	assert.Equal(t, 1, factory.navCount(listingURL))
}

func TestRunKeepsPostAfterFetchExhaustion(t *testing.T) {
	cfg := testConfig()
	factory := newFakeFactory()

	listingURL := reddit.SearchURL(cfg.Reddit.BaseURL, "golang")
	factory.script(listingURL, postScript([]string{"t3_p1", "t3_p2"}))
	factory.script(commentsURL(cfg, "p1"), commentScript("only"))
	factory.script(commentsURL(cfg, "p2"), &pageScript{
		navErr: errs.NewSurfaceError(nil, "post page did not load"),
	})

	s := NewWithFactory(factory, cfg, nil)
	posts, err := s.Run(context.Background(), []string{"golang"})
	require.NoError(t, err)

	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[1].ID)
	require.NotNil(t, posts[1].Comments)
	assert.Empty(t, posts[1].Comments)

	assert.Equal(t, cfg.Retry.MaxAttempts, factory.navCount(commentsURL(cfg, "p2")))
	assert.Equal(t, 1, s.Tracker().Abandoned())
	assert.Equal(t, 1, s.Tracker().Comments())
	assert.Equal(t, factory.surfaces, factory.closes)
}
