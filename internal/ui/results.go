package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Nyvo2010/Glidr-Browser/internal/session"
	"github.com/Nyvo2010/Glidr-Browser/internal/theme"
)

// ResultsView renders the AI summary box and the numbered result cards
// for a search query.
type ResultsView struct{}

// NewResultsView creates the results renderer.
func NewResultsView() ResultsView {
	return ResultsView{}
}

// LoadingText is shown while the remote calls are in flight.
const LoadingText = "✳︎ Glidr is working..."

// RenderLoading renders the working overlay centered in the area.
func (r *ResultsView) RenderLoading(width, height int) string {
	th := theme.Current
	style := lipgloss.NewStyle().Foreground(th.Text)
	return lipgloss.Place(width, height,
		lipgloss.Center, lipgloss.Center,
		style.Render(LoadingText),
		lipgloss.WithWhitespaceBackground(th.Background),
	)
}

// Render formats the loaded results view. The caller feeds the output
// into the shared page viewport.
func (r *ResultsView) Render(query, summary string, results []session.Result, width int) string {
	th := theme.Current

	contentWidth := width - 4
	if contentWidth > 100 {
		contentWidth = 100
	}
	if contentWidth < 20 {
		contentWidth = 20
	}

	boxStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(1, 2).
		Width(contentWidth)

	boxTitleStyle := lipgloss.NewStyle().
		Foreground(th.TextBright).
		Bold(true)

	bodyStyle := lipgloss.NewStyle().
		Foreground(th.Text)

	titleStyle := lipgloss.NewStyle().
		Foreground(th.TextBright).
		Bold(true)

	urlStyle := lipgloss.NewStyle().
		Foreground(th.TextDim)

	indexStyle := lipgloss.NewStyle().
		Foreground(th.Accent).
		Bold(true)

	var sb strings.Builder

	// AI summary box with the assistant affordance.
	aiBox := boxTitleStyle.Render("AI Result") + "  " +
		lipgloss.NewStyle().Foreground(th.Accent).Render("✳︎ press a to chat") + "\n\n" +
		bodyStyle.Render(summary)
	sb.WriteString(boxStyle.Render(aiBox))
	sb.WriteString("\n\n")

	if len(results) == 0 {
		sb.WriteString(urlStyle.Render("  No results found for \"" + query + "\"."))
		sb.WriteString("\n")
		return sb.String()
	}

	for i, res := range results {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			indexStyle.Render(fmt.Sprintf("[%d]", i+1)),
			titleStyle.Render(res.Title)))
		sb.WriteString("      " + urlStyle.Render(res.URL) + "\n\n")
	}

	sb.WriteString(urlStyle.Render(fmt.Sprintf("  %d results | press 1-%d to open", len(results), len(results))))
	sb.WriteString("\n")

	return sb.String()
}
