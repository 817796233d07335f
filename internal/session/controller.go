package session

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Result is a single hit from the search provider.
type Result struct {
	Title string
	URL   string
}

// SearchProvider is the remote search collaborator.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Assistant is the remote AI collaborator. Both calls always resolve to
// a displayable string; implementations absorb network failures into
// fixed fallback text.
type Assistant interface {
	Summarize(ctx context.Context, query string) string
	Complete(ctx context.Context, prompt string) string
}

// Engine is the rendering collaborator that actually loads pages.
type Engine interface {
	Load(url string)
	Reload()
	IsShowing() bool
}

// ViewMode is which of the three screens is presented.
type ViewMode int

const (
	ViewStartup ViewMode = iota
	ViewResults
	ViewPage
)

// Origin tags who initiated a navigation reported by the engine, so a
// load the controller started is not mistaken for the user following a
// link inside the page.
type Origin int

const (
	OriginProgrammatic Origin = iota
	OriginUserInPage
)

// Event is the completion of asynchronous controller work. The app
// layer delivers events back into Apply on the single state-mutating
// context.
type Event interface{ sessionEvent() }

// Cmd performs remote work off the event loop and yields one Event.
type Cmd func() Event

// ResultsLoaded carries the outcome of the concurrent summary + search
// calls for one results-view generation.
type ResultsLoaded struct {
	Gen     int
	Query   string
	Summary string
	Results []Result
}

// AssistantReplied carries one chat completion.
type AssistantReplied struct {
	Gen   int
	Reply string
}

func (ResultsLoaded) sessionEvent()    {}
func (AssistantReplied) sessionEvent() {}

// Deps are the injected collaborators.
type Deps struct {
	Search    SearchProvider
	Assistant Assistant
	Engine    Engine
	Log       *zap.Logger
}

// Controller reconciles startup, search and page states into one linear
// history and keeps the view mode, address text and assistant panel
// consistent as the user navigates. All methods must be called from a
// single goroutine; Cmds may run anywhere but their Events go through
// Apply on that same goroutine.
type Controller struct {
	history   *History
	search    SearchProvider
	assistant Assistant
	engine    Engine
	log       *zap.Logger

	mode        ViewMode
	loading     bool
	addressText string

	query   string // query the results view is showing
	summary string
	results []Result

	lastQuery     string
	hasSearched   bool
	assistantOpen bool
	working       bool
	conversation  *Conversation

	searchGen int
	chatGen   int
}

// NewController creates a controller with a freshly seeded history.
func NewController(d Deps) *Controller {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	c := &Controller{
		history:   NewHistory(),
		search:    d.Search,
		assistant: d.Assistant,
		engine:    d.Engine,
		log:       d.Log,
		mode:      ViewStartup,
	}
	c.history.EnsureStartup()
	return c
}

// LooksLikeURL reports whether address-bar text should be treated as a
// URL rather than a search query: no whitespace, at least one dot, and
// not one of the internal pseudo-schemes.
func LooksLikeURL(text string) bool {
	if strings.ContainsAny(text, " \t\n") {
		return false
	}
	if strings.HasPrefix(text, "search://") || strings.HasPrefix(text, "startup://") {
		return false
	}
	return strings.Contains(text, ".")
}

// NormalizeURL prepends https:// when the URL has no scheme.
func NormalizeURL(raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	return "https://" + raw
}

// SubmitSearch handles address-bar submission from any screen. URL-like
// text navigates; anything else becomes a search entry and kicks off
// the summary and result fetches concurrently.
func (c *Controller) SubmitSearch(text string) Cmd {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if LooksLikeURL(text) {
		c.NavigateTo(NormalizeURL(text))
		return nil
	}

	if c.assistantOpen {
		c.closeAssistant()
	}
	c.history.Push(SearchEntry(text))
	c.lastQuery = text
	c.hasSearched = true
	c.log.Debug("search submitted", zap.String("query", text))
	return c.beginResults(text)
}

// beginResults switches to the results view for query and returns the
// Cmd that fetches its summary and results.
func (c *Controller) beginResults(query string) Cmd {
	c.mode = ViewResults
	c.loading = true
	c.query = query
	c.addressText = query
	c.summary = ""
	c.results = nil
	c.searchGen++

	gen := c.searchGen
	search := c.search
	assistant := c.assistant
	log := c.log

	return func() Event {
		ctx := context.Background()
		var (
			summary string
			results []Result
			wg      sync.WaitGroup
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			summary = assistant.Summarize(ctx, query)
		}()
		go func() {
			defer wg.Done()
			r, err := search.Search(ctx, query)
			if err != nil {
				// Search failure degrades to an empty result list.
				log.Warn("search failed", zap.String("query", query), zap.Error(err))
				return
			}
			results = r
		}()
		wg.Wait()
		return ResultsLoaded{Gen: gen, Query: query, Summary: summary, Results: results}
	}
}

// NavigateTo pushes a page entry and asks the engine to load it.
func (c *Controller) NavigateTo(url string) {
	if c.assistantOpen {
		c.closeAssistant()
	}
	c.history.Push(PageEntry(url))
	c.mode = ViewPage
	c.addressText = url
	c.loading = false
	c.searchGen++ // a pending search no longer owns the screen
	c.log.Debug("navigating", zap.String("url", url))
	c.engine.Load(url)
}

// GoBack steps back in history and resolves the landed-on entry to a
// view. Stepping back into a search re-runs its remote calls.
func (c *Controller) GoBack() Cmd {
	entry, ok := c.history.Back()
	if !ok {
		return nil
	}
	return c.showEntry(entry)
}

// GoForward steps forward in history.
func (c *Controller) GoForward() Cmd {
	entry, ok := c.history.Forward()
	if !ok {
		return nil
	}
	return c.showEntry(entry)
}

func (c *Controller) showEntry(e Entry) Cmd {
	switch e.Kind {
	case KindSearch:
		c.lastQuery = e.Query
		return c.beginResults(e.Query)
	case KindPage:
		c.mode = ViewPage
		c.addressText = e.URL
		c.loading = false
		c.searchGen++
		c.engine.Load(e.URL)
		return nil
	default:
		c.mode = ViewStartup
		c.addressText = ""
		c.loading = false
		c.searchGen++
		return nil
	}
}

// Reload reloads the current page when the page view is showing.
func (c *Controller) Reload() {
	if c.engine.IsShowing() {
		c.engine.Reload()
	}
}

// OnEngineURLChanged handles the engine reporting a URL change. Loads
// the controller initiated only refresh the address text; navigation
// the user performed inside the page is recorded as an implicit page
// push.
func (c *Controller) OnEngineURLChanged(url string, origin Origin) {
	if origin == OriginProgrammatic {
		if c.mode == ViewPage {
			c.addressText = url
		}
		return
	}
	if cur, err := c.history.Current(); err == nil && cur.Kind == KindPage && cur.URL == url {
		c.addressText = url
		return
	}
	c.history.Push(PageEntry(url))
	c.mode = ViewPage
	c.addressText = url
}

// ToggleAssistant opens or closes the chat panel. Opening always starts
// a fresh conversation; viaContextCard additionally seeds it with the
// last search query as context.
func (c *Controller) ToggleAssistant(viaContextCard bool) {
	if c.assistantOpen {
		c.closeAssistant()
		return
	}
	last := ""
	if viaContextCard {
		last = c.lastQuery
	}
	c.assistantOpen = true
	c.working = false
	c.conversation = NewConversation(last)
}

func (c *Controller) closeAssistant() {
	c.assistantOpen = false
	c.working = false
	c.conversation = nil
	c.chatGen++
}

// SendAssistantMessage appends a user turn and returns the Cmd that
// fetches the completion.
func (c *Controller) SendAssistantMessage(text string) Cmd {
	text = strings.TrimSpace(text)
	if text == "" || !c.assistantOpen {
		return nil
	}
	c.conversation.Append(RoleUser, text)
	c.working = true
	c.chatGen++

	gen := c.chatGen
	prompt := c.conversation.Serialize()
	assistant := c.assistant

	return func() Event {
		reply := strings.TrimSpace(assistant.Complete(context.Background(), prompt))
		return AssistantReplied{Gen: gen, Reply: reply}
	}
}

// ClearAll resets history to a lone startup entry and shows the startup
// screen. Calling it twice is the same as calling it once.
func (c *Controller) ClearAll() {
	c.history.Clear()
	c.mode = ViewStartup
	c.addressText = ""
	c.loading = false
	c.query = ""
	c.summary = ""
	c.results = nil
	c.searchGen++
}

// Apply folds a completed Event back into the session. Stale events,
// recognized by generation or by the view having moved on, are dropped.
func (c *Controller) Apply(ev Event) {
	switch ev := ev.(type) {
	case ResultsLoaded:
		if ev.Gen != c.searchGen || c.mode != ViewResults {
			c.log.Debug("dropping stale results", zap.String("query", ev.Query))
			return
		}
		c.loading = false
		c.summary = ev.Summary
		c.results = ev.Results

	case AssistantReplied:
		if !c.assistantOpen || ev.Gen != c.chatGen {
			return
		}
		c.working = false
		if url, ok := ParseNavigationIntent(ev.Reply); ok {
			c.conversation.Append(RoleAssistant, ev.Reply)
			c.closeAssistant()
			c.NavigateTo(url)
			return
		}
		c.conversation.Append(RoleAssistant, ev.Reply)
	}
}

// Mode returns the current view mode.
func (c *Controller) Mode() ViewMode { return c.mode }

// Loading reports whether the results view is waiting on remote calls.
func (c *Controller) Loading() bool { return c.loading }

// AddressText is what the address bar should display.
func (c *Controller) AddressText() string { return c.addressText }

// Query is the query the results view is showing.
func (c *Controller) Query() string { return c.query }

// Summary is the AI blurb for the current results view.
func (c *Controller) Summary() string { return c.summary }

// Results are the hits for the current results view.
func (c *Controller) Results() []Result { return c.results }

// LastQuery is the most recent search query, kept as assistant context.
func (c *Controller) LastQuery() string { return c.lastQuery }

// HasSearched reports whether any search ran this session.
func (c *Controller) HasSearched() bool { return c.hasSearched }

// AssistantOpen reports whether the chat panel overlay is open.
func (c *Controller) AssistantOpen() bool { return c.assistantOpen }

// AssistantWorking reports whether a completion is in flight.
func (c *Controller) AssistantWorking() bool { return c.working }

// Conversation returns the chat messages, or nil when the panel is
// closed.
func (c *Controller) Conversation() []Message {
	if c.conversation == nil {
		return nil
	}
	return c.conversation.Messages()
}

// CanGoBack reports whether back navigation is possible.
func (c *Controller) CanGoBack() bool { return c.history.CanGoBack() }

// CanGoForward reports whether forward navigation is possible.
func (c *Controller) CanGoForward() bool { return c.history.CanGoForward() }

// History exposes the underlying stack for display purposes.
func (c *Controller) History() *History { return c.history }
