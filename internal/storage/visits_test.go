package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestVisitAddAndRecent(t *testing.T) {
	vs := NewVisitStore(openTestDB(t))

	require.NoError(t, vs.Add(VisitSearch, "black holes", ""))
	require.NoError(t, vs.Add(VisitPage, "https://nasa.gov", "NASA"))

	visits, err := vs.Recent(10)
	require.NoError(t, err)
	require.Len(t, visits, 2)

	// Newest first.
	assert.Equal(t, VisitPage, visits[0].Kind)
	assert.Equal(t, "https://nasa.gov", visits[0].Target)
	assert.Equal(t, "NASA", visits[0].Title)
	assert.Equal(t, VisitSearch, visits[1].Kind)
	assert.Equal(t, "black holes", visits[1].Target)
}

func TestVisitAddEmptyTargetIgnored(t *testing.T) {
	vs := NewVisitStore(openTestDB(t))

	require.NoError(t, vs.Add(VisitPage, "", "title"))
	n, err := vs.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestVisitAddRefreshesDuplicate(t *testing.T) {
	vs := NewVisitStore(openTestDB(t))

	require.NoError(t, vs.Add(VisitPage, "https://a.com", ""))
	require.NoError(t, vs.Add(VisitPage, "https://a.com", "Page A"))

	n, err := vs.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	visits, err := vs.Recent(10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "Page A", visits[0].Title)
}

func TestVisitSameTargetDifferentKind(t *testing.T) {
	vs := NewVisitStore(openTestDB(t))

	require.NoError(t, vs.Add(VisitSearch, "go.dev", ""))
	require.NoError(t, vs.Add(VisitPage, "go.dev", ""))

	n, err := vs.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestVisitDelete(t *testing.T) {
	vs := NewVisitStore(openTestDB(t))

	require.NoError(t, vs.Add(VisitPage, "https://a.com", "A"))
	require.NoError(t, vs.Add(VisitPage, "https://b.com", "B"))

	visits, err := vs.Recent(10)
	require.NoError(t, err)
	require.Len(t, visits, 2)

	require.NoError(t, vs.Delete(visits[0].ID))

	visits, err = vs.Recent(10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "https://a.com", visits[0].Target)
}

func TestVisitClear(t *testing.T) {
	vs := NewVisitStore(openTestDB(t))

	require.NoError(t, vs.Add(VisitPage, "https://a.com", ""))
	require.NoError(t, vs.Clear())

	n, err := vs.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestVisitRecentLimit(t *testing.T) {
	vs := NewVisitStore(openTestDB(t))

	for i := 0; i < 5; i++ {
		require.NoError(t, vs.Add(VisitPage, "https://example.com/"+string(rune('a'+i)), ""))
	}

	visits, err := vs.Recent(3)
	require.NoError(t, err)
	assert.Len(t, visits, 3)
}
