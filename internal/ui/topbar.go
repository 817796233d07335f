package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nyvo2010/Glidr-Browser/internal/theme"
)

// TopBar is the address/search bar with the nav button cluster.
type TopBar struct {
	input   textinput.Model
	active  bool
	width   int
	canBack bool
	canFwd  bool
	canRld  bool
}

// NewTopBar creates the top bar.
func NewTopBar() TopBar {
	ti := textinput.New()
	ti.Placeholder = "Search"
	ti.CharLimit = 2048
	ti.Width = 60

	return TopBar{input: ti}
}

// SetWidth updates the bar width.
func (t *TopBar) SetWidth(w int) {
	t.width = w
	// Room for the logo, nav cluster and padding.
	t.input.Width = w - 30
	if t.input.Width < 10 {
		t.input.Width = 10
	}
}

// SetNavState updates which nav buttons render as enabled.
func (t *TopBar) SetNavState(back, forward, reload bool) {
	t.canBack = back
	t.canFwd = forward
	t.canRld = reload
}

// Focus activates the address input.
func (t *TopBar) Focus() tea.Cmd {
	t.active = true
	return t.input.Focus()
}

// Blur deactivates the address input.
func (t *TopBar) Blur() {
	t.active = false
	t.input.Blur()
}

// IsActive reports whether the input is focused.
func (t *TopBar) IsActive() bool {
	return t.active
}

// Value returns the current input text.
func (t *TopBar) Value() string {
	return t.input.Value()
}

// SetValue sets the input text.
func (t *TopBar) SetValue(s string) {
	t.input.SetValue(s)
	t.input.CursorEnd()
}

// Reset clears the input.
func (t *TopBar) Reset() {
	t.input.Reset()
}

// Update handles messages for the input.
func (t *TopBar) Update(msg tea.Msg) (*TopBar, tea.Cmd) {
	if !t.active {
		return t, nil
	}
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// View renders the bar: logo, address input, nav cluster.
func (t *TopBar) View() string {
	th := theme.Current

	logoStyle := lipgloss.NewStyle().
		Foreground(th.TextBright).
		Background(th.Surface).
		Bold(true).
		Padding(0, 1)
	logo := logoStyle.Render("✳︎ Glidr")

	borderColor := th.Border
	if t.active {
		borderColor = th.BorderFocus
	}
	inputStyle := lipgloss.NewStyle().
		Foreground(th.Text).
		Background(th.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	nav := t.renderButton("↺", t.canRld) +
		t.renderButton("←", t.canBack) +
		t.renderButton("→", t.canFwd) +
		t.renderButton("✳︎", true)

	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		logo,
		inputStyle.Render(t.input.View()),
		nav,
	)

	pad := t.width - lipgloss.Width(bar)
	if pad > 0 {
		filler := lipgloss.NewStyle().Background(th.Background).Render(strings.Repeat(" ", pad))
		bar += filler
	}
	return bar
}

func (t *TopBar) renderButton(glyph string, enabled bool) string {
	th := theme.Current
	color := th.Text
	if !enabled {
		color = th.TextDim
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Background(th.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(0, 1).
		Render(glyph)
}
