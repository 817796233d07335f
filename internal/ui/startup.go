package ui

import (
	"math/rand"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nyvo2010/Glidr-Browser/internal/theme"
)

// startupTitlePrompts are rotated on the startup screen.
var startupTitlePrompts = []string{
	"What are you looking for?",
	"Explore the internet.",
	"Find what you are looking for.",
	"What do you want to find?",
}

// StartupView is the centered home screen shown before any navigation.
type StartupView struct {
	title string
}

// NewStartupView picks a fresh title prompt.
func NewStartupView() StartupView {
	return StartupView{
		title: startupTitlePrompts[rand.Intn(len(startupTitlePrompts))],
	}
}

// Refresh picks a new title prompt for the next showing.
func (s *StartupView) Refresh() {
	s.title = startupTitlePrompts[rand.Intn(len(startupTitlePrompts))]
}

// View renders the startup screen centered in the given area.
func (s *StartupView) View(width, height int) string {
	th := theme.Current

	titleStyle := lipgloss.NewStyle().
		Foreground(th.TextBright).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(th.TextDim)

	content := titleStyle.Render(s.title) + "\n\n" +
		subtitleStyle.Render("Just start typing...")

	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		content,
		lipgloss.WithWhitespaceBackground(th.Background),
	)
}
