package session

import "errors"

// ErrEmptyHistory is returned when the history is read before any entry
// has been seeded. Hitting it indicates a programming error in the caller.
var ErrEmptyHistory = errors.New("session: history is empty")

// EntryKind discriminates the three navigable states.
type EntryKind int

const (
	KindStartup EntryKind = iota
	KindSearch
	KindPage
)

// Entry is one unit of navigable state: the startup screen, a search
// query, or a loaded page URL.
type Entry struct {
	Kind  EntryKind
	Query string // set for KindSearch
	URL   string // set for KindPage
}

// StartupEntry returns the startup-screen entry.
func StartupEntry() Entry {
	return Entry{Kind: KindStartup}
}

// SearchEntry returns an entry for a search query.
func SearchEntry(query string) Entry {
	return Entry{Kind: KindSearch, Query: query}
}

// PageEntry returns an entry for a loaded page URL.
func PageEntry(url string) Entry {
	return Entry{Kind: KindPage, URL: url}
}

// Equal reports whether two entries have the same kind and payload.
func (e Entry) Equal(o Entry) bool {
	return e == o
}

// String renders the entry in its pseudo-scheme form. The startup:// and
// search:// schemes are internal discriminators and are never fetched.
func (e Entry) String() string {
	switch e.Kind {
	case KindStartup:
		return "startup://"
	case KindSearch:
		return "search://" + e.Query
	default:
		return e.URL
	}
}

// History manages the unified back/forward stack over startup, search
// and page entries.
type History struct {
	entries []Entry
	pos     int // current position in the stack
}

// NewHistory creates an empty navigation history.
func NewHistory() *History {
	return &History{
		entries: nil,
		pos:     -1,
	}
}

// Push appends an entry, truncating any forward branch first. Pushing a
// duplicate of the current entry is a no-op.
func (h *History) Push(e Entry) {
	if h.pos >= 0 && h.entries[h.pos].Equal(e) {
		return
	}
	if h.pos < len(h.entries)-1 {
		h.entries = h.entries[:h.pos+1]
	}
	h.entries = append(h.entries, e)
	h.pos = len(h.entries) - 1
}

// Back moves one step back and returns the new current entry. From a
// search entry with the startup screen sitting at the front of the
// stack, it jumps straight to the startup entry so the user is not
// walked through every prior search on the way home.
func (h *History) Back() (Entry, bool) {
	if h.pos <= 0 {
		return Entry{}, false
	}
	if h.pos > 1 && h.entries[h.pos].Kind == KindSearch {
		for i := 0; i <= 1; i++ {
			if h.entries[i].Kind == KindStartup {
				h.pos = i
				return h.entries[h.pos], true
			}
		}
	}
	h.pos--
	return h.entries[h.pos], true
}

// Forward moves one step forward and returns the new current entry.
func (h *History) Forward() (Entry, bool) {
	if h.pos >= len(h.entries)-1 {
		return Entry{}, false
	}
	h.pos++
	return h.entries[h.pos], true
}

// Current returns the entry at the cursor.
func (h *History) Current() (Entry, error) {
	if h.pos < 0 || h.pos >= len(h.entries) {
		return Entry{}, ErrEmptyHistory
	}
	return h.entries[h.pos], nil
}

// CanGoBack reports whether there is a previous entry.
func (h *History) CanGoBack() bool {
	return h.pos > 0
}

// CanGoForward reports whether there is a next entry.
func (h *History) CanGoForward() bool {
	return h.pos < len(h.entries)-1
}

// Len returns the total number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// At returns the entry at index i.
func (h *History) At(i int) (Entry, bool) {
	if i < 0 || i >= len(h.entries) {
		return Entry{}, false
	}
	return h.entries[i], true
}

// EnsureStartup truncates the forward branch and pushes a startup entry
// unless one is already current.
func (h *History) EnsureStartup() {
	if h.pos < len(h.entries)-1 {
		h.entries = h.entries[:h.pos+1]
	}
	if len(h.entries) == 0 || h.entries[len(h.entries)-1].Kind != KindStartup {
		h.entries = append(h.entries, StartupEntry())
	}
	h.pos = len(h.entries) - 1
}

// Clear wipes the stack and reseeds it with a single startup entry.
func (h *History) Clear() {
	h.entries = nil
	h.pos = -1
	h.EnsureStartup()
}
