package storage

import (
	"fmt"
	"time"
)

// Visit kinds recorded in the log.
const (
	VisitPage   = "page"
	VisitSearch = "search"
)

// Visit is one recorded navigation: a completed page load or a
// submitted search.
type Visit struct {
	ID        int64
	Kind      string
	Target    string // URL for pages, query for searches
	Title     string
	VisitedAt time.Time
}

// VisitStore persists the navigation log.
type VisitStore struct {
	db *DB
}

// NewVisitStore creates a store over the shared database.
func NewVisitStore(db *DB) *VisitStore {
	return &VisitStore{db: db}
}

// Add records a visit. If the most recent row already has the same kind
// and target, only its timestamp (and title, when given) is refreshed.
func (vs *VisitStore) Add(kind, target, title string) error {
	if target == "" {
		return nil
	}

	var (
		lastID     int64
		lastKind   string
		lastTarget string
	)
	err := vs.db.conn.QueryRow(
		`SELECT id, kind, target FROM visits ORDER BY visited_at DESC, id DESC LIMIT 1`,
	).Scan(&lastID, &lastKind, &lastTarget)
	if err == nil && lastKind == kind && lastTarget == target {
		if title != "" {
			_, err = vs.db.conn.Exec(
				`UPDATE visits SET visited_at = datetime('now'), title = ? WHERE id = ?`, title, lastID)
		} else {
			_, err = vs.db.conn.Exec(
				`UPDATE visits SET visited_at = datetime('now') WHERE id = ?`, lastID)
		}
		if err != nil {
			return fmt.Errorf("refreshing visit: %w", err)
		}
		return nil
	}

	if _, err := vs.db.conn.Exec(
		`INSERT INTO visits (kind, target, title) VALUES (?, ?, ?)`, kind, target, title); err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// Recent returns up to limit visits, newest first.
func (vs *VisitStore) Recent(limit int) ([]Visit, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := vs.db.conn.Query(
		`SELECT id, kind, target, title, visited_at FROM visits
		 ORDER BY visited_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var visitedAt string
		if err := rows.Scan(&v.ID, &v.Kind, &v.Target, &v.Title, &visitedAt); err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		if t, perr := time.Parse("2006-01-02 15:04:05", visitedAt); perr == nil {
			v.VisitedAt = t
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Delete removes a single visit by id.
func (vs *VisitStore) Delete(id int64) error {
	if _, err := vs.db.conn.Exec(`DELETE FROM visits WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting visit: %w", err)
	}
	return nil
}

// Count returns the number of recorded visits.
func (vs *VisitStore) Count() (int, error) {
	var n int
	if err := vs.db.conn.QueryRow(`SELECT COUNT(*) FROM visits`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting visits: %w", err)
	}
	return n, nil
}

// Clear removes every visit.
func (vs *VisitStore) Clear() error {
	if _, err := vs.db.conn.Exec(`DELETE FROM visits`); err != nil {
		return fmt.Errorf("clearing visits: %w", err)
	}
	return nil
}
