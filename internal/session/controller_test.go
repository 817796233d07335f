package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearch struct {
	results []Result
	err     error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string) ([]Result, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

type fakeAssistant struct {
	summary string
	reply   string
	prompts []string
}

func (f *fakeAssistant) Summarize(_ context.Context, _ string) string {
	return f.summary
}

func (f *fakeAssistant) Complete(_ context.Context, prompt string) string {
	f.prompts = append(f.prompts, prompt)
	return f.reply
}

type fakeEngine struct {
	loaded  []string
	reloads int
	showing bool
}

func (f *fakeEngine) Load(url string) { f.loaded = append(f.loaded, url) }
func (f *fakeEngine) Reload()         { f.reloads++ }
func (f *fakeEngine) IsShowing() bool { return f.showing }

func newTestController() (*Controller, *fakeSearch, *fakeAssistant, *fakeEngine) {
	s := &fakeSearch{results: []Result{{Title: "Go", URL: "https://go.dev"}}}
	a := &fakeAssistant{summary: "a short blurb", reply: "hello"}
	e := &fakeEngine{}
	c := NewController(Deps{Search: s, Assistant: a, Engine: e})
	return c, s, a, e
}

func TestLooksLikeURL(t *testing.T) {
	assert.True(t, LooksLikeURL("openai.com"))
	assert.True(t, LooksLikeURL("https://go.dev/doc"))
	assert.False(t, LooksLikeURL("best pizza near me"))
	assert.False(t, LooksLikeURL("search://cats"))
	assert.False(t, LooksLikeURL("startup://"))
	assert.False(t, LooksLikeURL("nodots"))
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://openai.com", NormalizeURL("openai.com"))
	assert.Equal(t, "http://a.com", NormalizeURL("http://a.com"))
	assert.Equal(t, "https://a.com", NormalizeURL("https://a.com"))
}

func TestSubmitSearchWithURLNavigates(t *testing.T) {
	c, _, _, e := newTestController()

	cmd := c.SubmitSearch("openai.com")
	assert.Nil(t, cmd)
	assert.Equal(t, ViewPage, c.Mode())
	assert.Equal(t, []string{"https://openai.com"}, e.loaded)

	cur, err := c.History().Current()
	require.NoError(t, err)
	assert.Equal(t, PageEntry("https://openai.com"), cur)
}

func TestSubmitSearchWithQueryFetches(t *testing.T) {
	c, s, a, _ := newTestController()
	a.summary = "pizza is flat bread"

	cmd := c.SubmitSearch("best pizza near me")
	require.NotNil(t, cmd)
	assert.Equal(t, ViewResults, c.Mode())
	assert.True(t, c.Loading())
	assert.Equal(t, "best pizza near me", c.AddressText())

	cur, err := c.History().Current()
	require.NoError(t, err)
	assert.Equal(t, SearchEntry("best pizza near me"), cur)

	c.Apply(cmd())
	assert.False(t, c.Loading())
	assert.Equal(t, "pizza is flat bread", c.Summary())
	assert.Equal(t, []Result{{Title: "Go", URL: "https://go.dev"}}, c.Results())
	assert.Equal(t, []string{"best pizza near me"}, s.queries)
}

func TestSubmitSearchEmptyIsNoop(t *testing.T) {
	c, _, _, _ := newTestController()
	assert.Nil(t, c.SubmitSearch("   "))
	assert.Equal(t, ViewStartup, c.Mode())
}

func TestSearchFailureDegradesToEmptyResults(t *testing.T) {
	c, s, a, _ := newTestController()
	s.err = errors.New("network down")
	s.results = nil
	a.summary = "GlidrAI response failed."

	cmd := c.SubmitSearch("cats")
	c.Apply(cmd())

	// The session stays in the results view showing the fallback text,
	// not an error view.
	assert.Equal(t, ViewResults, c.Mode())
	assert.False(t, c.Loading())
	assert.Equal(t, "GlidrAI response failed.", c.Summary())
	assert.Empty(t, c.Results())
}

func TestStaleResultsDropped(t *testing.T) {
	c, _, a, _ := newTestController()

	a.summary = "about cats"
	first := c.SubmitSearch("cats")
	firstEvent := first()

	a.summary = "about dogs"
	second := c.SubmitSearch("dogs")
	c.Apply(second())

	// The older completion must not overwrite the newer view.
	c.Apply(firstEvent)
	assert.Equal(t, "about dogs", c.Summary())
	assert.Equal(t, "dogs", c.Query())
}

func TestResultsAfterNavigationDropped(t *testing.T) {
	c, _, _, _ := newTestController()

	cmd := c.SubmitSearch("cats")
	ev := cmd()
	c.NavigateTo("https://a.com")

	c.Apply(ev)
	assert.Equal(t, ViewPage, c.Mode())
	assert.Empty(t, c.Summary())
}

func TestBackIntoSearchRefetches(t *testing.T) {
	c, s, _, _ := newTestController()

	first := c.SubmitSearch("cats")
	c.Apply(first())
	c.NavigateTo("https://a.com")

	cmd := c.GoBack()
	require.NotNil(t, cmd)
	assert.Equal(t, ViewResults, c.Mode())
	assert.True(t, c.Loading())

	c.Apply(cmd())
	assert.Equal(t, []string{"cats", "cats"}, s.queries)
}

func TestBackToStartup(t *testing.T) {
	c, _, _, _ := newTestController()

	c.NavigateTo("https://a.com")
	cmd := c.GoBack()
	assert.Nil(t, cmd)
	assert.Equal(t, ViewStartup, c.Mode())
	assert.Equal(t, "", c.AddressText())
}

func TestForwardToPage(t *testing.T) {
	c, _, _, e := newTestController()

	c.NavigateTo("https://a.com")
	c.GoBack()
	cmd := c.GoForward()
	assert.Nil(t, cmd)
	assert.Equal(t, ViewPage, c.Mode())
	assert.Equal(t, "https://a.com", c.AddressText())
	// Initial load plus the forward re-load.
	assert.Equal(t, []string{"https://a.com", "https://a.com"}, e.loaded)
}

func TestReloadOnlyWhenShowing(t *testing.T) {
	c, _, _, e := newTestController()

	c.Reload()
	assert.Equal(t, 0, e.reloads)

	e.showing = true
	c.Reload()
	assert.Equal(t, 1, e.reloads)
}

func TestOnEngineURLChangedProgrammatic(t *testing.T) {
	c, _, _, _ := newTestController()
	c.NavigateTo("https://a.com")
	before := c.History().Len()

	c.OnEngineURLChanged("https://a.com/final", OriginProgrammatic)
	assert.Equal(t, before, c.History().Len())
	assert.Equal(t, "https://a.com/final", c.AddressText())
}

func TestOnEngineURLChangedUserInPage(t *testing.T) {
	c, _, _, _ := newTestController()
	c.NavigateTo("https://a.com")

	c.OnEngineURLChanged("https://a.com/next", OriginUserInPage)
	cur, err := c.History().Current()
	require.NoError(t, err)
	assert.Equal(t, PageEntry("https://a.com/next"), cur)

	// Reporting the same URL again must not duplicate the entry.
	before := c.History().Len()
	c.OnEngineURLChanged("https://a.com/next", OriginUserInPage)
	assert.Equal(t, before, c.History().Len())
}

func TestToggleAssistant(t *testing.T) {
	c, _, _, _ := newTestController()

	c.ToggleAssistant(false)
	assert.True(t, c.AssistantOpen())
	require.Len(t, c.Conversation(), 1)

	c.ToggleAssistant(false)
	assert.False(t, c.AssistantOpen())
	assert.Nil(t, c.Conversation())
}

func TestToggleAssistantViaContextCard(t *testing.T) {
	c, _, _, _ := newTestController()
	cmd := c.SubmitSearch("gophers")
	c.Apply(cmd())

	c.ToggleAssistant(true)
	msgs := c.Conversation()
	require.Len(t, msgs, 2)
	assert.Equal(t, RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "gophers")
}

func TestSendAssistantMessage(t *testing.T) {
	c, _, a, _ := newTestController()
	a.reply = "hi, how can I help?"

	c.ToggleAssistant(false)
	cmd := c.SendAssistantMessage("hello there")
	require.NotNil(t, cmd)
	assert.True(t, c.AssistantWorking())

	c.Apply(cmd())
	assert.False(t, c.AssistantWorking())

	msgs := c.Conversation()
	require.Len(t, msgs, 3)
	assert.Equal(t, "hello there", msgs[1].Content)
	assert.Equal(t, "hi, how can I help?", msgs[2].Content)

	// The serialized prompt carries the whole conversation.
	require.Len(t, a.prompts, 1)
	assert.Contains(t, a.prompts[0], "[User]: hello there")
}

func TestAssistantNavigationIntent(t *testing.T) {
	c, _, a, e := newTestController()
	a.reply = "__GLIDR_NAVIGATE__(github.com)"

	c.ToggleAssistant(false)
	cmd := c.SendAssistantMessage("open github")
	c.Apply(cmd())

	assert.False(t, c.AssistantOpen())
	assert.Equal(t, ViewPage, c.Mode())
	assert.Equal(t, []string{"https://github.com"}, e.loaded)
}

func TestStaleAssistantReplyDropped(t *testing.T) {
	c, _, a, _ := newTestController()
	a.reply = "late answer"

	c.ToggleAssistant(false)
	cmd := c.SendAssistantMessage("hello")
	ev := cmd()

	// Closing the panel abandons the in-flight completion.
	c.ToggleAssistant(false)
	c.Apply(ev)
	assert.False(t, c.AssistantOpen())
	assert.Nil(t, c.Conversation())
}

func TestNavigateToClosesAssistant(t *testing.T) {
	c, _, _, _ := newTestController()
	c.ToggleAssistant(false)

	c.NavigateTo("https://a.com")
	assert.False(t, c.AssistantOpen())
}

func TestClearAllIdempotent(t *testing.T) {
	c, _, _, _ := newTestController()
	cmd := c.SubmitSearch("cats")
	c.Apply(cmd())
	c.NavigateTo("https://a.com")

	c.ClearAll()
	c.ClearAll()

	assert.Equal(t, ViewStartup, c.Mode())
	assert.Equal(t, 1, c.History().Len())
	assert.Equal(t, "", c.AddressText())
	assert.Empty(t, c.Results())
	assert.False(t, c.Loading())
}
