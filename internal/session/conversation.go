package session

import (
	"fmt"
	"strings"
)

// NavigateMarker is the literal the system prompt instructs GlidrAI to
// use when a chat turn should navigate instead of answering.
const NavigateMarker = "__GLIDR_NAVIGATE__"

// Role identifies who authored a conversation message.
type Role int

const (
	RoleSystem Role = iota
	RoleUser
	RoleAssistant
)

// Message is one turn of the assistant conversation.
type Message struct {
	Role    Role
	Content string
}

// Conversation holds the assistant chat memory. It is rebuilt every
// time the panel is opened; closing the panel discards it.
type Conversation struct {
	messages []Message
}

// NewConversation seeds a conversation with the GlidrAI system
// instruction. When lastQuery is non-empty the caller opened the panel
// from a result card, and one user context message referencing the
// query is added as well.
func NewConversation(lastQuery string) *Conversation {
	c := &Conversation{}
	c.Append(RoleSystem, fmt.Sprintf(
		"You are GlidrAI, a web browser AI assistant. Help users browse and answer questions. "+
			"No markdown formatting. "+
			"For navigation requests, respond ONLY with: %s(URL) "+
			"Example: %s(https://www.google.com)",
		NavigateMarker, NavigateMarker))
	if lastQuery != "" {
		c.Append(RoleUser, fmt.Sprintf(
			"Context: My previous search query was '%s'. This may be relevant to my current request.",
			lastQuery))
	}
	return c
}

// Append adds a message to the conversation.
func (c *Conversation) Append(role Role, content string) {
	c.messages = append(c.messages, Message{Role: role, Content: content})
}

// Messages returns a copy of the conversation so far.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Serialize flattens the conversation into the prompt format the
// completion endpoint expects. Assistant turns are emitted bare so the
// model reads them as its own prior output.
func (c *Conversation) Serialize() string {
	var sb strings.Builder
	for _, m := range c.messages {
		switch m.Role {
		case RoleSystem:
			sb.WriteString("[System]: " + m.Content + "\n")
		case RoleUser:
			sb.WriteString("[User]: " + m.Content + "\n")
		case RoleAssistant:
			sb.WriteString(m.Content + "\n")
		}
	}
	return sb.String()
}

// ParseNavigationIntent checks a raw assistant response against the
// navigation-intent protocol. It returns the target URL (https://
// prepended when schemeless) and true on an exact match. Anything
// else, including a marker prefix without the closing paren, is plain
// conversational text.
func ParseNavigationIntent(response string) (string, bool) {
	prefix := NavigateMarker + "("
	if !strings.HasPrefix(response, prefix) || !strings.HasSuffix(response, ")") {
		return "", false
	}
	url := strings.TrimSpace(response[len(prefix) : len(response)-1])
	if url == "" {
		return "", false
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url, true
}
