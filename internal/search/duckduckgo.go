// Package search implements the DuckDuckGo HTML search provider.
package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Nyvo2010/Glidr-Browser/internal/engine"
	"github.com/Nyvo2010/Glidr-Browser/internal/session"
)

// DefaultBaseURL is the HTML (no-JS) DuckDuckGo frontend.
const DefaultBaseURL = "https://html.duckduckgo.com"

// maxResults caps how many hits a query returns.
const maxResults = 9

// Client queries DuckDuckGo and parses its HTML results page.
type Client struct {
	fetcher *engine.Fetcher
	baseURL string
}

// NewClient creates a search client. An empty baseURL selects the
// public frontend; the fetcher shares the application transport.
func NewClient(fetcher *engine.Fetcher, baseURL string) *Client {
	if fetcher == nil {
		fetcher = engine.NewFetcher()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{fetcher: fetcher, baseURL: strings.TrimRight(baseURL, "/")}
}

// Search runs a query and returns up to nine results. An empty slice is
// a valid outcome.
func (c *Client) Search(ctx context.Context, query string) ([]session.Result, error) {
	searchURL := c.baseURL + "/html/?q=" + url.QueryEscape(query)

	result, err := c.fetcher.FetchWithContext(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("searching DuckDuckGo: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(result.Body)))
	if err != nil {
		return nil, fmt.Errorf("parsing search results: %w", err)
	}

	var results []session.Result

	doc.Find(".result").EachWithBreak(func(i int, s *goquery.Selection) bool {
		titleEl := s.Find(".result__a")
		title := strings.TrimSpace(titleEl.Text())

		href, exists := titleEl.Attr("href")
		if !exists {
			return true
		}

		// DDG wraps URLs in a redirect. Extract the real URL.
		realURL := extractRedirectURL(href)

		if title != "" && realURL != "" {
			results = append(results, session.Result{Title: title, URL: realURL})
		}
		return len(results) < maxResults
	})

	return results, nil
}

// extractRedirectURL unwraps a DDG redirect link of the form
// //duckduckgo.com/l/?uddg=<encoded_url>&rut=...
func extractRedirectURL(href string) string {
	if strings.Contains(href, "uddg=") {
		if parsed, err := url.Parse(href); err == nil {
			if uddg := parsed.Query().Get("uddg"); uddg != "" {
				return uddg
			}
		}
	}

	// Sometimes they're direct links.
	if strings.HasPrefix(href, "http") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}

	return href
}
