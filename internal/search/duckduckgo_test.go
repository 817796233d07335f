package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nyvo2010/Glidr-Browser/internal/engine"
)

func resultHTML(title, href string) string {
	return fmt.Sprintf(
		`<div class="result"><a class="result__a" href="%s">%s</a></div>`, href, title)
}

func TestSearchParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/html/", r.URL.Path)
		assert.Equal(t, "black holes", r.URL.Query().Get("q"))

		fmt.Fprint(w, "<html><body>")
		fmt.Fprint(w, resultHTML("NASA", "https://nasa.gov/black-holes"))
		fmt.Fprint(w, resultHTML("Wikipedia", "//duckduckgo.com/l/?uddg="+url.QueryEscape("https://en.wikipedia.org/wiki/Black_hole")+"&rut=abc"))
		fmt.Fprint(w, "</body></html>")
	}))
	defer srv.Close()

	c := NewClient(engine.NewFetcher(), srv.URL)
	results, err := c.Search(context.Background(), "black holes")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "NASA", results[0].Title)
	assert.Equal(t, "https://nasa.gov/black-holes", results[0].URL)
	assert.Equal(t, "Wikipedia", results[1].Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Black_hole", results[1].URL)
}

func TestSearchCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sb strings.Builder
		sb.WriteString("<html><body>")
		for i := 0; i < 20; i++ {
			sb.WriteString(resultHTML(fmt.Sprintf("Result %d", i), fmt.Sprintf("https://example.com/%d", i)))
		}
		sb.WriteString("</body></html>")
		fmt.Fprint(w, sb.String())
	}))
	defer srv.Close()

	c := NewClient(engine.NewFetcher(), srv.URL)
	results, err := c.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, results, maxResults)
}

func TestSearchEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body><p>No results.</p></body></html>")
	}))
	defer srv.Close()

	c := NewClient(engine.NewFetcher(), srv.URL)
	results, err := c.Search(context.Background(), "zzzzz")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchSkipsUntitledResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>")
		fmt.Fprint(w, resultHTML("", "https://example.com/untitled"))
		fmt.Fprint(w, resultHTML("Titled", "https://example.com/titled"))
		fmt.Fprint(w, "</body></html>")
	}))
	defer srv.Close()

	c := NewClient(engine.NewFetcher(), srv.URL)
	results, err := c.Search(context.Background(), "q")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Titled", results[0].Title)
}

func TestSearchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(engine.NewFetcher(), srv.URL)
	_, err := c.Search(context.Background(), "q")
	assert.Error(t, err)
}

func TestExtractRedirectURL(t *testing.T) {
	tests := []struct {
		name string
		href string
		want string
	}{
		{"uddg redirect", "//duckduckgo.com/l/?uddg=https%3A%2F%2Fgo.dev%2F&rut=x", "https://go.dev/"},
		{"direct http", "https://go.dev/", "https://go.dev/"},
		{"protocol relative", "//go.dev/", "https://go.dev/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractRedirectURL(tt.href))
		})
	}
}
