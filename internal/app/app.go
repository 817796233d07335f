package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/Nyvo2010/Glidr-Browser/internal/engine"
	"github.com/Nyvo2010/Glidr-Browser/internal/session"
	"github.com/Nyvo2010/Glidr-Browser/internal/storage"
	"github.com/Nyvo2010/Glidr-Browser/internal/theme"
	"github.com/Nyvo2010/Glidr-Browser/internal/ui"
)

// Mode represents the current input mode.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeType        // address bar focused
	ModeChat        // assistant panel focused
	ModeFollow      // typing a link number
	ModeVisits      // visit log panel active
)

// Deps are the collaborators the app model drives. Controller and
// Engine are required; Visits and Log may be nil.
type Deps struct {
	Controller *session.Controller
	Engine     *engine.TermEngine
	Visits     *storage.VisitStore
	Log        *zap.Logger
}

// Model is the top-level bubbletea model for glidr.
type Model struct {
	controller *session.Controller
	engine     *engine.TermEngine
	visits     *storage.VisitStore
	log        *zap.Logger

	// UI components
	topBar      ui.TopBar
	viewport    ui.PageViewport
	startup     ui.StartupView
	results     ui.ResultsView
	chatPanel   ui.ChatPanel
	statusBar   ui.StatusBar
	visitsPanel ui.VisitsPanel
	helpView    help.Model

	keymap   KeyMap
	mode     Mode
	width    int
	height   int
	ready    bool
	lastGKey bool // for "gg" detection
	showHelp bool

	page         *engine.RenderedPage
	followBuffer string
	startText    string
}

// SessionMsg carries a completed session event back onto the loop.
type SessionMsg struct {
	Event session.Event
}

// PageReadyMsg wraps an engine completion. Main wires the engine
// notifier to program.Send with this type.
type PageReadyMsg struct {
	Ready engine.PageReady
}

// New creates the glidr Model.
func New(d Deps) Model {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return Model{
		controller:  d.Controller,
		engine:      d.Engine,
		visits:      d.Visits,
		log:         d.Log,
		topBar:      ui.NewTopBar(),
		viewport:    ui.NewPageViewport(),
		startup:     ui.NewStartupView(),
		results:     ui.NewResultsView(),
		chatPanel:   ui.NewChatPanel(),
		statusBar:   ui.NewStatusBar(),
		visitsPanel: ui.NewVisitsPanel(),
		helpView:    help.New(),
		keymap:      DefaultKeyMap(),
		mode:        ModeBrowse,
	}
}

// SetStartText seeds the address bar with a command-line argument. It
// is submitted once the first WindowSizeMsg arrives.
func (m *Model) SetStartText(text string) {
	m.startText = text
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// runSession lifts a session.Cmd onto the bubbletea loop.
func runSession(cmd session.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		return SessionMsg{Event: cmd()}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if !m.ready {
			m.ready = true
			if m.startText != "" {
				text := m.startText
				m.startText = ""
				cmds = append(cmds, m.submit(text))
			}
		}
		m.refreshContent()
		return m, tea.Batch(cmds...)

	case SessionMsg:
		m.controller.Apply(msg.Event)
		m.syncAfterSession()
		m.refreshContent()
		return m, nil

	case PageReadyMsg:
		return m.handlePageReady(msg.Ready)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.mode == ModeBrowse {
			vp, cmd := m.viewport.Update(msg)
			m.viewport = *vp
			return m, cmd
		}
	}

	return m, nil
}

// layout recomputes component sizes from the window size.
func (m *Model) layout() {
	m.topBar.SetWidth(m.width)
	m.statusBar.SetWidth(m.width)
	m.helpView.Width = m.width

	m.viewport.SetSize(m.contentWidth(), m.contentHeight())
	m.chatPanel.SetSize(m.panelWidth(), m.contentHeight())
	m.visitsPanel.SetSize(m.panelWidth(), m.contentHeight())
	m.engine.SetWidth(m.contentWidth() - 4)
}

func (m *Model) panelWidth() int {
	w := m.width / 2
	if w > 60 {
		w = 60
	}
	if w < 30 {
		w = 30
	}
	return w
}

// contentWidth is the width left for the main view once any side panel
// is accounted for.
func (m *Model) contentWidth() int {
	w := m.width
	if m.controller.AssistantOpen() || m.visitsPanel.IsVisible() {
		w -= m.panelWidth()
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (m *Model) contentHeight() int {
	h := m.height - lipgloss.Height(m.topBar.View()) - 1
	if m.showHelp {
		h -= lipgloss.Height(m.helpView.View(m.keymap))
	}
	if h < 1 {
		h = 1
	}
	return h
}

// submit routes address-bar text through the controller and records
// the visit when it is a search.
func (m *Model) submit(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	isURL := session.LooksLikeURL(text)
	cmd := m.controller.SubmitSearch(text)
	if !isURL && m.visits != nil {
		if err := m.visits.Add(storage.VisitSearch, text, ""); err != nil {
			m.log.Warn("recording search visit", zap.Error(err))
		}
	}
	m.syncAfterSession()
	m.refreshContent()
	return runSession(cmd)
}

// syncAfterSession reconciles the UI components with controller state
// after any controller mutation.
func (m *Model) syncAfterSession() {
	m.engine.SetShowing(m.controller.Mode() == session.ViewPage)
	if m.controller.Mode() != session.ViewPage {
		m.page = nil
	}
	if !m.controller.AssistantOpen() && m.mode == ModeChat {
		m.chatPanel.Close()
		m.mode = ModeBrowse
	}
	m.topBar.SetValue(m.controller.AddressText())
	m.layout()
}

func (m Model) handlePageReady(ready engine.PageReady) (tea.Model, tea.Cmd) {
	// A load that completes after the session moved off the page view
	// is stale: it must not touch history or the visit log.
	if m.controller.Mode() != session.ViewPage {
		return m, nil
	}

	if ready.Err != nil {
		m.statusBar.SetMessage(fmt.Sprintf("Failed to load %s: %v", ready.URL, ready.Err))
		m.refreshContent()
		return m, nil
	}

	origin := session.OriginProgrammatic
	if ready.UserInitiated {
		origin = session.OriginUserInPage
	}
	m.controller.OnEngineURLChanged(ready.FinalURL, origin)

	m.page = ready.Page
	m.statusBar.SetMessage("")
	if m.visits != nil {
		if err := m.visits.Add(storage.VisitPage, ready.FinalURL, ready.Page.Title); err != nil {
			m.log.Warn("recording page visit", zap.Error(err))
		}
	}
	m.syncAfterSession()
	m.refreshContent()
	m.viewport.GotoTop()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeType:
		return m.handleTypeKey(msg)
	case ModeChat:
		return m.handleChatKey(msg)
	case ModeFollow:
		return m.handleFollowKey(msg)
	case ModeVisits:
		return m.handleVisitsKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handleTypeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.topBar.Blur()
		m.topBar.SetValue(m.controller.AddressText())
		m.mode = ModeBrowse
		return m, nil
	case "enter":
		text := m.topBar.Value()
		m.topBar.Blur()
		m.mode = ModeBrowse
		return m, m.submit(text)
	}
	tb, cmd := m.topBar.Update(msg)
	m.topBar = *tb
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.controller.ToggleAssistant(false)
		m.syncAfterSession()
		m.refreshContent()
		return m, nil
	case "enter":
		text := m.chatPanel.Value()
		m.chatPanel.Reset()
		return m, runSession(m.controller.SendAssistantMessage(text))
	case "up":
		m.chatPanel.ScrollUp()
		return m, nil
	case "down":
		m.chatPanel.ScrollDown()
		return m, nil
	}
	cp, cmd := m.chatPanel.Update(msg)
	m.chatPanel = *cp
	return m, cmd
}

func (m Model) handleFollowKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	switch {
	case s == "esc":
		m.followBuffer = ""
		m.mode = ModeBrowse
		m.statusBar.SetMessage("")
		return m, nil
	case s == "enter":
		return m.followLink()
	case s == "backspace" && m.followBuffer != "":
		m.followBuffer = m.followBuffer[:len(m.followBuffer)-1]
		m.statusBar.SetMessage("Follow: " + m.followBuffer)
		return m, nil
	case len(s) == 1 && s >= "0" && s <= "9":
		m.followBuffer += s
		m.statusBar.SetMessage("Follow: " + m.followBuffer)
		// Open immediately when no more digits can match.
		n, _ := strconv.Atoi(m.followBuffer)
		if m.page != nil && n*10 > len(m.page.Links) {
			return m.followLink()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) followLink() (tea.Model, tea.Cmd) {
	n, err := strconv.Atoi(m.followBuffer)
	m.followBuffer = ""
	m.mode = ModeBrowse
	if err != nil || m.page == nil || n < 1 || n > len(m.page.Links) {
		m.statusBar.SetMessage("No such link")
		return m, nil
	}
	link := m.page.Links[n-1]
	m.statusBar.SetMessage("")
	m.engine.LoadUserInitiated(link.URL)
	return m, nil
}

// handleVisitsKey processes keys while the visit log panel is active.
func (m Model) handleVisitsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.visitsPanel.ResetGKey()
		m.visitsPanel.CursorDown()
		return m, nil

	case "k", "up":
		m.visitsPanel.ResetGKey()
		m.visitsPanel.CursorUp()
		return m, nil

	case "g":
		m.visitsPanel.HandleGKey()
		return m, nil

	case "G":
		m.visitsPanel.ResetGKey()
		m.visitsPanel.GotoBottom()
		return m, nil

	case "ctrl+d":
		m.visitsPanel.ResetGKey()
		m.visitsPanel.HalfPageDown()
		return m, nil

	case "ctrl+u":
		m.visitsPanel.ResetGKey()
		m.visitsPanel.HalfPageUp()
		return m, nil

	case "d":
		m.visitsPanel.ResetGKey()
		sel := m.visitsPanel.Selected()
		m.visitsPanel.RemoveSelected()
		if sel != nil && m.visits != nil {
			if err := m.visits.Delete(sel.ID); err != nil {
				m.log.Warn("deleting visit", zap.Error(err))
			}
		}
		return m, nil

	case "enter":
		m.visitsPanel.ResetGKey()
		sel := m.visitsPanel.Selected()
		m.closeVisitsPanel()
		if sel == nil {
			return m, nil
		}
		if sel.Kind == storage.VisitSearch {
			return m, m.submit(sel.Target)
		}
		m.controller.NavigateTo(sel.Target)
		m.syncAfterSession()
		m.refreshContent()
		return m, nil

	case "esc", "ctrl+h", "q":
		m.closeVisitsPanel()
		return m, nil
	}
	return m, nil
}

func (m *Model) closeVisitsPanel() {
	m.visitsPanel.Hide()
	m.mode = ModeBrowse
	m.layout()
	m.refreshContent()
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap

	// Any key other than g breaks a pending "gg".
	if msg.String() != "g" {
		m.lastGKey = false
	}

	// Results view: a bare digit opens that result.
	if m.controller.Mode() == session.ViewResults && !m.controller.Loading() {
		s := msg.String()
		if len(s) == 1 && s >= "1" && s <= "9" {
			idx := int(s[0] - '1')
			results := m.controller.Results()
			if idx < len(results) {
				m.controller.NavigateTo(results[idx].URL)
				m.syncAfterSession()
				m.refreshContent()
			}
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Type):
		m.mode = ModeType
		m.topBar.Reset()
		return m, m.topBar.Focus()

	case key.Matches(msg, k.Back):
		cmd := m.controller.GoBack()
		m.syncAfterSession()
		m.refreshContent()
		return m, runSession(cmd)

	case key.Matches(msg, k.Forward):
		cmd := m.controller.GoForward()
		m.syncAfterSession()
		m.refreshContent()
		return m, runSession(cmd)

	case key.Matches(msg, k.Reload):
		m.controller.Reload()
		return m, nil

	case key.Matches(msg, k.Chat):
		viaCard := m.controller.Mode() == session.ViewResults && m.controller.HasSearched()
		m.controller.ToggleAssistant(viaCard)
		if m.controller.AssistantOpen() {
			m.mode = ModeChat
			m.layout()
			m.refreshContent()
			about := ""
			if viaCard {
				about = m.controller.LastQuery()
			}
			return m, m.chatPanel.Open(about)
		}
		m.chatPanel.Close()
		m.mode = ModeBrowse
		m.layout()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, k.VisitsToggle):
		if m.visits == nil {
			m.statusBar.SetMessage("Visit log unavailable")
			return m, nil
		}
		visits, err := m.visits.Recent(100)
		if err != nil {
			m.log.Warn("listing visits", zap.Error(err))
			m.statusBar.SetMessage("Visit log unavailable")
			return m, nil
		}
		m.visitsPanel.SetVisits(visits)
		m.visitsPanel.Show()
		m.mode = ModeVisits
		m.layout()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, k.FollowLink):
		if m.controller.Mode() == session.ViewPage && m.page != nil && len(m.page.Links) > 0 {
			m.mode = ModeFollow
			m.followBuffer = ""
			m.statusBar.SetMessage("Follow: ")
		}
		return m, nil

	case key.Matches(msg, k.ClearAll):
		m.controller.ClearAll()
		m.startup.Refresh()
		m.page = nil
		m.syncAfterSession()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		m.helpView.ShowAll = m.showHelp
		m.layout()
		m.refreshContent()
		return m, nil

	case key.Matches(msg, k.GotoTop):
		if m.lastGKey {
			m.viewport.GotoTop()
			m.lastGKey = false
		} else {
			m.lastGKey = true
		}
		return m, nil

	case key.Matches(msg, k.GotoBottom):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, k.ScrollDown):
		m.viewport.LineDown(1)
		return m, nil

	case key.Matches(msg, k.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil

	case key.Matches(msg, k.HalfPageDown):
		m.viewport.HalfPageDown()
		return m, nil

	case key.Matches(msg, k.HalfPageUp):
		m.viewport.HalfPageUp()
		return m, nil
	}

	return m, nil
}

// refreshContent rebuilds the viewport content for the current view.
func (m *Model) refreshContent() {
	switch m.controller.Mode() {
	case session.ViewResults:
		if m.controller.Loading() {
			m.viewport.SetContent(m.results.RenderLoading(m.contentWidth(), m.contentHeight()))
		} else {
			m.viewport.SetContent(m.results.Render(
				m.controller.Query(),
				m.controller.Summary(),
				m.controller.Results(),
				m.contentWidth(),
			))
		}
	case session.ViewPage:
		if m.page != nil {
			m.viewport.SetContent(m.page.Content)
		} else {
			m.viewport.SetContent("\n  Loading page...")
		}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "\n  Starting Glidr..."
	}

	m.statusBar.SetMode(m.modeLabel())
	m.statusBar.SetLoading(m.controller.Loading())
	m.statusBar.SetScrollInfo(m.viewport.ScrollInfo())
	if m.controller.Mode() == session.ViewPage && m.page != nil {
		m.statusBar.SetTitle(m.page.Title)
		m.statusBar.SetLinkCount(len(m.page.Links))
	} else {
		m.statusBar.SetTitle("")
		m.statusBar.SetLinkCount(0)
	}

	var content string
	switch m.controller.Mode() {
	case session.ViewStartup:
		content = m.startup.View(m.contentWidth(), m.contentHeight())
	default:
		content = m.viewport.View()
	}

	if m.visitsPanel.IsVisible() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.visitsPanel.View(), content)
	}
	if m.controller.AssistantOpen() {
		panel := m.chatPanel.View(m.controller.Conversation(), m.controller.AssistantWorking())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	m.topBar.SetNavState(
		m.controller.CanGoBack(),
		m.controller.CanGoForward(),
		m.controller.Mode() == session.ViewPage,
	)

	bg := lipgloss.NewStyle().Background(theme.Current.Background)
	sections := []string{
		m.topBar.View(),
		bg.Height(m.contentHeight()).Width(m.width).Render(content),
	}
	if m.showHelp {
		sections = append(sections, m.helpView.View(m.keymap))
	}
	sections = append(sections, m.statusBar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) modeLabel() string {
	switch m.mode {
	case ModeType:
		return "TYPE"
	case ModeChat:
		return "CHAT"
	case ModeFollow:
		return "FOLLOW"
	case ModeVisits:
		return "VISITS"
	default:
		return "BROWSE"
	}
}
