// Package glidrai talks to the remote GlidrAI text endpoint used for
// both search-result summaries and the assistant chat. Every call
// resolves to a displayable string: network failures and non-200
// statuses degrade to fixed fallback text instead of returning errors.
package glidrai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultBaseURL is the public text completion endpoint.
	DefaultBaseURL = "https://text.pollinations.ai"

	// FallbackNoResponse is shown when the endpoint answers non-200.
	FallbackNoResponse = "No GlidrAI response."
	// FallbackFailed is shown when the request itself fails.
	FallbackFailed = "GlidrAI response failed."

	summaryTimeout = 10 * time.Second
	chatTimeout    = 15 * time.Second

	userAgent = "glidr/0.1 (+https://github.com/Nyvo2010/Glidr-Browser)"
)

// Client is the GlidrAI HTTP client.
type Client struct {
	http *resty.Client
}

// NewClient creates a client against baseURL, or the public endpoint
// when baseURL is empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("User-Agent", userAgent),
	}
}

// Summarize fetches the short informational blurb shown above search
// results. The template asks for an under-50-word, markdown-free text
// that describes the query rather than answering it.
func (c *Client) Summarize(ctx context.Context, query string) string {
	prompt := fmt.Sprintf(
		"%s — no markdown, below 50 words, do not respond to the query, but give a brief info about it",
		query)
	return c.fetch(ctx, prompt, summaryTimeout)
}

// Complete sends a serialized conversation and returns the raw reply.
func (c *Client) Complete(ctx context.Context, prompt string) string {
	return c.fetch(ctx, prompt, chatTimeout)
}

func (c *Client) fetch(ctx context.Context, prompt string, timeout time.Duration) string {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		Get("/" + url.PathEscape(prompt))
	if err != nil {
		return FallbackFailed
	}
	if resp.StatusCode() != http.StatusOK {
		return FallbackNoResponse
	}
	return strings.TrimSpace(string(resp.Body()))
}
