package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nyvo2010/Glidr-Browser/internal/engine"
	"github.com/Nyvo2010/Glidr-Browser/internal/session"
	"github.com/Nyvo2010/Glidr-Browser/internal/storage"
)

type fakeSearch struct{}

func (fakeSearch) Search(_ context.Context, _ string) ([]session.Result, error) {
	return nil, nil
}

type fakeAssistant struct{}

func (fakeAssistant) Summarize(_ context.Context, _ string) string { return "" }
func (fakeAssistant) Complete(_ context.Context, _ string) string  { return "" }

// fakeLoader stands in for the page loader inside the controller so
// navigation in tests never touches the network.
type fakeLoader struct {
	loaded  []string
	showing bool
}

func (f *fakeLoader) Load(url string) { f.loaded = append(f.loaded, url) }
func (f *fakeLoader) Reload()         {}
func (f *fakeLoader) IsShowing() bool { return f.showing }

func newTestModel(t *testing.T) (Model, *session.Controller, *storage.VisitStore) {
	t.Helper()
	db, err := storage.OpenDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	visits := storage.NewVisitStore(db)

	controller := session.NewController(session.Deps{
		Search:    fakeSearch{},
		Assistant: fakeAssistant{},
		Engine:    &fakeLoader{},
	})
	m := New(Deps{
		Controller: controller,
		Engine:     engine.NewTermEngine(nil),
		Visits:     visits,
	})
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return mm.(Model), controller, visits
}

func pageReady(url, title string) PageReadyMsg {
	return PageReadyMsg{Ready: engine.PageReady{
		URL:      url,
		FinalURL: url,
		Page:     &engine.RenderedPage{Title: title, Content: title},
	}}
}

func TestPageCompletionRecordsVisit(t *testing.T) {
	m, controller, visits := newTestModel(t)

	controller.NavigateTo("https://go.dev")
	mm, _ := m.Update(pageReady("https://go.dev", "The Go Programming Language"))
	m = mm.(Model)

	recent, err := visits.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, storage.VisitPage, recent[0].Kind)
	assert.Equal(t, "https://go.dev", recent[0].Target)
	assert.Equal(t, "The Go Programming Language", recent[0].Title)
	assert.NotNil(t, m.page)
}

func TestStalePageCompletionDropped(t *testing.T) {
	m, controller, visits := newTestModel(t)

	// The load finishes after the user has already left the page view.
	controller.NavigateTo("https://go.dev")
	controller.ClearAll()

	mm, _ := m.Update(pageReady("https://go.dev", "The Go Programming Language"))
	m = mm.(Model)

	n, err := visits.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, session.ViewStartup, controller.Mode())
	assert.Equal(t, "", controller.AddressText())
	assert.Nil(t, m.page)
	assert.False(t, controller.CanGoForward())
}

func TestVisitsPanelOpenAndClose(t *testing.T) {
	m, _, visits := newTestModel(t)
	require.NoError(t, visits.Add(storage.VisitPage, "https://go.dev", "Go"))

	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	m = mm.(Model)
	assert.Equal(t, ModeVisits, m.mode)
	assert.True(t, m.visitsPanel.IsVisible())
	assert.Equal(t, 1, m.visitsPanel.Len())

	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mm.(Model)
	assert.Equal(t, ModeBrowse, m.mode)
	assert.False(t, m.visitsPanel.IsVisible())
}

func TestVisitsPanelOpenSelectedPage(t *testing.T) {
	m, controller, visits := newTestModel(t)
	require.NoError(t, visits.Add(storage.VisitPage, "https://go.dev", "Go"))

	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	m = mm.(Model)
	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mm.(Model)

	assert.Equal(t, ModeBrowse, m.mode)
	assert.Equal(t, session.ViewPage, controller.Mode())
	assert.Equal(t, "https://go.dev", controller.AddressText())
}

func TestVisitsPanelDeleteEntry(t *testing.T) {
	m, _, visits := newTestModel(t)
	require.NoError(t, visits.Add(storage.VisitPage, "https://a.com", "A"))
	require.NoError(t, visits.Add(storage.VisitPage, "https://b.com", "B"))

	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	m = mm.(Model)
	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = mm.(Model)

	assert.Equal(t, 1, m.visitsPanel.Len())
	n, err := visits.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)

	mm, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = mm.(Model)
	assert.True(t, m.showHelp)
	assert.True(t, m.helpView.ShowAll)

	mm, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = mm.(Model)
	assert.False(t, m.showHelp)
	assert.False(t, m.helpView.ShowAll)
}
