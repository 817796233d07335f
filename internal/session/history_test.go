package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryPushAndCurrent(t *testing.T) {
	h := NewHistory()
	h.EnsureStartup()

	cur, err := h.Current()
	require.NoError(t, err)
	assert.Equal(t, KindStartup, cur.Kind)

	h.Push(SearchEntry("cats"))
	cur, err = h.Current()
	require.NoError(t, err)
	assert.Equal(t, SearchEntry("cats"), cur)
	assert.Equal(t, 2, h.Len())
}

func TestHistoryEmptyCurrent(t *testing.T) {
	h := NewHistory()
	_, err := h.Current()
	assert.ErrorIs(t, err, ErrEmptyHistory)
}

func TestHistoryPushDuplicateIsNoop(t *testing.T) {
	h := NewHistory()
	h.EnsureStartup()
	h.Push(SearchEntry("cats"))
	h.Push(SearchEntry("cats"))

	assert.Equal(t, 2, h.Len())
}

func TestHistoryPushTruncatesForwardBranch(t *testing.T) {
	h := NewHistory()
	h.EnsureStartup()
	h.Push(PageEntry("https://a.com"))
	h.Push(PageEntry("https://b.com"))

	_, ok := h.Back()
	require.True(t, ok)

	h.Push(PageEntry("https://c.com"))

	assert.Equal(t, 3, h.Len())
	assert.False(t, h.CanGoForward())
	cur, err := h.Current()
	require.NoError(t, err)
	assert.Equal(t, "https://c.com", cur.URL)
}

func TestHistoryBackForward(t *testing.T) {
	h := NewHistory()
	h.EnsureStartup()
	h.Push(PageEntry("https://a.com"))

	assert.True(t, h.CanGoBack())
	assert.False(t, h.CanGoForward())

	entry, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, KindStartup, entry.Kind)
	assert.True(t, h.CanGoForward())

	entry, ok = h.Forward()
	require.True(t, ok)
	assert.Equal(t, "https://a.com", entry.URL)

	_, ok = h.Forward()
	assert.False(t, ok)
}

func TestHistoryBackAtStart(t *testing.T) {
	h := NewHistory()
	h.EnsureStartup()

	_, ok := h.Back()
	assert.False(t, ok)
}

func TestHistoryBackCollapsesSearches(t *testing.T) {
	h := NewHistory()
	h.EnsureStartup()
	h.Push(SearchEntry("cats"))
	h.Push(SearchEntry("dogs"))
	h.Push(PageEntry("https://a.com"))

	// First step back lands on the last search.
	entry, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, SearchEntry("dogs"), entry)

	// Second step back collapses past the intermediate search straight
	// to the startup entry.
	entry, ok = h.Back()
	require.True(t, ok)
	assert.Equal(t, KindStartup, entry.Kind)
	assert.False(t, h.CanGoBack())
}

func TestHistoryBackFromFirstSearchIsNormal(t *testing.T) {
	h := NewHistory()
	h.EnsureStartup()
	h.Push(SearchEntry("cats"))

	entry, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, KindStartup, entry.Kind)
}

func TestHistoryForwardBackInverse(t *testing.T) {
	h := NewHistory()
	h.EnsureStartup()
	h.Push(PageEntry("https://a.com"))
	h.Push(PageEntry("https://b.com"))

	h.Back()
	before, err := h.Current()
	require.NoError(t, err)

	h.Forward()
	h.Back()
	after, err := h.Current()
	require.NoError(t, err)

	assert.True(t, before.Equal(after))
}

func TestHistoryClearReseeds(t *testing.T) {
	h := NewHistory()
	h.EnsureStartup()
	h.Push(SearchEntry("cats"))
	h.Push(PageEntry("https://a.com"))

	h.Clear()
	assert.Equal(t, 1, h.Len())
	cur, err := h.Current()
	require.NoError(t, err)
	assert.Equal(t, KindStartup, cur.Kind)

	// Clearing twice is the same as clearing once.
	h.Clear()
	assert.Equal(t, 1, h.Len())
}

func TestHistoryEnsureStartupIdempotent(t *testing.T) {
	h := NewHistory()
	h.EnsureStartup()
	h.EnsureStartup()
	assert.Equal(t, 1, h.Len())
}

func TestEntryString(t *testing.T) {
	assert.Equal(t, "startup://", StartupEntry().String())
	assert.Equal(t, "search://cats", SearchEntry("cats").String())
	assert.Equal(t, "https://a.com", PageEntry("https://a.com").String())
}
