package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConversationSeedsSystemMessage(t *testing.T) {
	c := NewConversation("")
	require.Equal(t, 1, c.Len())

	msgs := c.Messages()
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "GlidrAI")
	assert.Contains(t, msgs[0].Content, NavigateMarker)
}

func TestNewConversationWithQueryContext(t *testing.T) {
	c := NewConversation("gophers")
	require.Equal(t, 2, c.Len())

	msgs := c.Messages()
	assert.Equal(t, RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "gophers")
}

func TestConversationSerialize(t *testing.T) {
	c := NewConversation("")
	c.Append(RoleUser, "hello")
	c.Append(RoleAssistant, "hi there")
	c.Append(RoleUser, "bye")

	s := c.Serialize()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "[System]: "))
	assert.Equal(t, "[User]: hello", lines[1])
	assert.Equal(t, "hi there", lines[2])
	assert.Equal(t, "[User]: bye", lines[3])
}

func TestParseNavigationIntent(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantURL  string
		wantOK   bool
	}{
		{"full url", "__GLIDR_NAVIGATE__(https://github.com)", "https://github.com", true},
		{"schemeless", "__GLIDR_NAVIGATE__(github.com)", "https://github.com", true},
		{"http kept", "__GLIDR_NAVIGATE__(http://example.com)", "http://example.com", true},
		{"plain text", "Sure, here is what I found.", "", false},
		{"marker mid-text", "Go to __GLIDR_NAVIGATE__(github.com)", "", false},
		{"missing close paren", "__GLIDR_NAVIGATE__(github.com", "", false},
		{"empty url", "__GLIDR_NAVIGATE__()", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, ok := ParseNavigationIntent(tt.response)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantURL, url)
		})
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	c := NewConversation("")
	msgs := c.Messages()
	msgs[0].Content = "mutated"

	assert.NotEqual(t, "mutated", c.Messages()[0].Content)
}
