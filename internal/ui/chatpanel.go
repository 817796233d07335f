package ui

import (
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Nyvo2010/Glidr-Browser/internal/session"
	"github.com/Nyvo2010/Glidr-Browser/internal/theme"
)

// aiInputPrompts are rotated as the chat input placeholder.
var aiInputPrompts = []string{
	"What's on your mind?",
	"Ask me anything!",
	"How can I assist you today?",
	"What would you like to know?",
	"Need help with something? Just ask.",
}

// WorkingText is the pending bubble shown while a completion is in
// flight.
const WorkingText = "✳︎ GlidrAI is working..."

// ChatPanel is the GlidrAI conversation overlay.
type ChatPanel struct {
	input      textinput.Model
	width      int
	height     int
	aboutQuery string
	scroll     int
}

// NewChatPanel creates the panel with a fresh placeholder prompt.
func NewChatPanel() ChatPanel {
	ti := textinput.New()
	ti.Placeholder = aiInputPrompts[rand.Intn(len(aiInputPrompts))]
	ti.CharLimit = 4096
	ti.Width = 40

	return ChatPanel{input: ti}
}

// SetSize updates the panel dimensions.
func (p *ChatPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = width - 10
	if p.input.Width < 10 {
		p.input.Width = 10
	}
}

// Open prepares the panel for a new conversation. aboutQuery is shown
// in the header when the panel was opened from a result card.
func (p *ChatPanel) Open(aboutQuery string) tea.Cmd {
	p.aboutQuery = aboutQuery
	p.scroll = 0
	p.input.Placeholder = aiInputPrompts[rand.Intn(len(aiInputPrompts))]
	p.input.Reset()
	return p.input.Focus()
}

// Close blurs and clears the panel input.
func (p *ChatPanel) Close() {
	p.input.Blur()
	p.input.Reset()
	p.aboutQuery = ""
	p.scroll = 0
}

// Value returns the current input text.
func (p *ChatPanel) Value() string {
	return p.input.Value()
}

// Reset clears the input after a send.
func (p *ChatPanel) Reset() {
	p.input.Reset()
}

// ScrollUp moves the transcript up.
func (p *ChatPanel) ScrollUp() {
	if p.scroll > 0 {
		p.scroll--
	}
}

// ScrollDown moves the transcript down.
func (p *ChatPanel) ScrollDown() {
	p.scroll++
}

// Update handles messages for the input.
func (p *ChatPanel) Update(msg tea.Msg) (*ChatPanel, tea.Cmd) {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the panel: header, transcript bubbles, input.
func (p *ChatPanel) View(messages []session.Message, working bool) string {
	th := theme.Current

	panelWidth := p.width
	if panelWidth < 30 {
		panelWidth = 30
	}
	innerWidth := panelWidth - 4

	headerStyle := lipgloss.NewStyle().
		Foreground(th.TextBright).
		Bold(true)
	subtitleStyle := lipgloss.NewStyle().
		Foreground(th.TextDim)

	header := "Chat with ✳︎ GlidrAI"
	if p.aboutQuery != "" {
		header += " about \"" + p.aboutQuery + "\""
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(header))
	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render("Ask a question, or say \"open example.com\" to navigate."))
	sb.WriteString("\n\n")

	bubbleWidth := innerWidth - 6
	if bubbleWidth < 16 {
		bubbleWidth = 16
	}

	userBubble := lipgloss.NewStyle().
		Foreground(th.TextBright).
		Background(th.Surface).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocus).
		Padding(0, 1).
		Width(bubbleWidth)

	aiBubble := lipgloss.NewStyle().
		Foreground(th.Text).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(0, 1).
		Width(bubbleWidth)

	// System and context messages stay hidden; the transcript starts at
	// the first real user turn.
	for _, m := range visibleMessages(messages) {
		switch m.Role {
		case session.RoleUser:
			b := userBubble.Render(m.Content)
			sb.WriteString(lipgloss.PlaceHorizontal(innerWidth, lipgloss.Right, b))
		case session.RoleAssistant:
			sb.WriteString(aiBubble.Render(m.Content))
		}
		sb.WriteString("\n")
	}

	if working {
		sb.WriteString(subtitleStyle.Render(WorkingText))
		sb.WriteString("\n")
	}

	transcript := clipLines(sb.String(), p.scroll, p.height-5)

	inputStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocus).
		Padding(0, 1).
		Width(innerWidth)

	body := transcript + "\n" + inputStyle.Render(p.input.View())

	panelStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Background(th.Background).
		Padding(0, 1).
		Width(panelWidth)

	return panelStyle.Render(body)
}

// visibleMessages drops the system instruction and the context seed so
// the transcript only shows real turns.
func visibleMessages(messages []session.Message) []session.Message {
	out := make([]session.Message, 0, len(messages))
	for i, m := range messages {
		if m.Role == session.RoleSystem {
			continue
		}
		if m.Role == session.RoleUser && i == 1 && strings.HasPrefix(m.Content, "Context: My previous search query") {
			continue
		}
		out = append(out, m)
	}
	return out
}

// clipLines keeps at most max lines of s, skipping the first skip
// lines. The tail is preferred when the transcript overflows.
func clipLines(s string, skip, max int) string {
	if max <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if skip > 0 && skip < len(lines) {
		lines = lines[skip:]
	}
	if len(lines) > max {
		lines = lines[len(lines)-max:]
	}
	return strings.Join(lines, "\n")
}
