// Package engine is the page-rendering collaborator: it fetches a URL,
// extracts the readable article and renders it into styled terminal
// text. Loads are asynchronous; completion is reported through a
// PageReady notification tagged with who initiated the navigation.
package engine

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// PageReady is the engine's "url changed / page loaded" notification.
// UserInitiated distinguishes a link followed inside a page from a load
// the session controller started itself.
type PageReady struct {
	URL           string
	FinalURL      string // after redirects
	Page          *RenderedPage
	Err           error
	UserInitiated bool
}

// Notifier delivers PageReady events back onto the application's event
// loop. It must be safe to call from any goroutine.
type Notifier func(PageReady)

// TermEngine renders pages for the terminal. It keeps an LRU cache of
// rendered pages so back/forward navigation is instant.
type TermEngine struct {
	fetcher *Fetcher
	cache   *lru.Cache[string, *RenderedPage]
	notify  Notifier
	log     *zap.Logger

	width   int
	showing bool
	current string
	cancel  context.CancelFunc
}

// NewTermEngine creates an engine with a 50-page render cache.
func NewTermEngine(log *zap.Logger) *TermEngine {
	if log == nil {
		log = zap.NewNop()
	}
	cache, _ := lru.New[string, *RenderedPage](50)
	return &TermEngine{
		fetcher: NewFetcher(),
		cache:   cache,
		log:     log,
		width:   80,
	}
}

// SetNotifier installs the completion callback. Must be set before the
// first Load.
func (e *TermEngine) SetNotifier(fn Notifier) {
	e.notify = fn
}

// SetWidth updates the render width for subsequent loads.
func (e *TermEngine) SetWidth(w int) {
	if w > 0 {
		e.width = w
	}
}

// SetShowing records whether the page view currently owns the screen.
func (e *TermEngine) SetShowing(showing bool) {
	e.showing = showing
}

// IsShowing reports whether the page view is visible.
func (e *TermEngine) IsShowing() bool {
	return e.showing
}

// CurrentURL returns the most recently requested URL.
func (e *TermEngine) CurrentURL() string {
	return e.current
}

// Load fetches and renders a URL as a controller-initiated navigation.
func (e *TermEngine) Load(url string) {
	e.load(url, false)
}

// LoadUserInitiated fetches a URL the user followed from inside a page,
// so the resulting PageReady is tagged as an in-page navigation.
func (e *TermEngine) LoadUserInitiated(url string) {
	e.load(url, true)
}

// Reload drops the cached render of the current page and loads it
// again.
func (e *TermEngine) Reload() {
	if e.current == "" {
		return
	}
	e.cache.Remove(e.current)
	e.load(e.current, false)
}

func (e *TermEngine) load(url string, user bool) {
	e.showing = true
	e.current = url

	// A newer load supersedes any fetch still in flight.
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}

	if page, ok := e.cache.Get(url); ok {
		e.deliver(PageReady{URL: url, FinalURL: url, Page: page, UserInitiated: user})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	fetcher := e.fetcher
	cache := e.cache
	notify := e.notify
	width := e.width
	log := e.log

	go func() {
		result, err := fetcher.FetchWithContext(ctx, url)
		if err != nil {
			log.Warn("page fetch failed", zap.String("url", url), zap.Error(err))
			if notify != nil {
				notify(PageReady{URL: url, Err: err, UserInitiated: user})
			}
			return
		}

		article, err := Extract(result)
		if err != nil {
			if notify != nil {
				notify(PageReady{URL: url, Err: err, UserInitiated: user})
			}
			return
		}

		page := Render(article, width)
		cache.Add(result.FinalURL, page)

		if notify != nil {
			notify(PageReady{URL: url, FinalURL: result.FinalURL, Page: page, UserInitiated: user})
		}
	}()
}

func (e *TermEngine) deliver(ev PageReady) {
	if e.notify != nil {
		e.notify(ev)
	}
}
