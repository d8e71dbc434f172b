package paginate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/db-scout/internal/types"
)

func makeRows(n int) []types.Row {
	rows := make([]types.Row, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, types.Row{"id": i})
	}

	return rows
}

func TestCursorPagination(t *testing.T) {
	cursor := NewCursor(5)
	cursor.StoreResult(makeRows(7))

	first, err := cursor.NextPage()
	require.NoError(t, err)
	assert.Len(t, first, 5)
	assert.Equal(t, 1, cursor.CurrentPage())
	assert.Equal(t, 1, first[0]["id"])
	assert.Equal(t, 5, first[4]["id"])

	second, err := cursor.NextPage()
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, 2, cursor.CurrentPage())
	assert.Equal(t, 6, second[0]["id"])
	assert.Equal(t, 7, second[1]["id"])

	_, err = cursor.NextPage()
	assert.ErrorIs(t, err, ErrEndOfPages)
	assert.Equal(t, 2, cursor.CurrentPage(), "cursor must not advance past the end")
}

func TestCursorRoundTrip(t *testing.T) {
	// Storing N rows with page size P yields all N rows across ceil(N/P)
	// pages, in order, with no duplicates or omissions.
	const n, p = 23, 4

	cursor := NewCursor(p)
	cursor.StoreResult(makeRows(n))

	var collected []types.Row

	pages := 0

	for {
		page, err := cursor.NextPage()
		if err != nil {
			assert.ErrorIs(t, err, ErrEndOfPages)
			break
		}

		pages++

		collected = append(collected, page...)
	}

	require.Len(t, collected, n)
	assert.Equal(t, (n+p-1)/p, pages)

	for i, row := range collected {
		assert.Equal(t, i+1, row["id"])
	}
}

func TestCursorStoreResetsPage(t *testing.T) {
	cursor := NewCursor(5)
	cursor.StoreResult(makeRows(7))

	_, err := cursor.NextPage()
	require.NoError(t, err)
	assert.Equal(t, 1, cursor.CurrentPage())

	cursor.StoreResult(makeRows(3))
	assert.Equal(t, 0, cursor.CurrentPage())

	page, err := cursor.NextPage()
	require.NoError(t, err)
	assert.Len(t, page, 3)
}

func TestCursorEmptyResult(t *testing.T) {
	cursor := NewCursor(5)
	cursor.StoreResult(nil)

	_, err := cursor.NextPage()
	assert.ErrorIs(t, err, ErrEndOfPages)
	assert.Equal(t, 0, cursor.CurrentPage())
}

func TestCursorConcurrentNextPage(t *testing.T) {
	// Racing NextPage calls must partition the rows without duplicates.
	const n, p = 100, 10

	cursor := NewCursor(p)
	cursor.StoreResult(makeRows(n))

	var (
		mu   sync.Mutex
		seen = make(map[int]bool)
		wg   sync.WaitGroup
	)

	for i := 0; i < n/p; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			page, err := cursor.NextPage()
			if err != nil {
				return
			}

			mu.Lock()
			defer mu.Unlock()

			for _, row := range page {
				id := row["id"].(int)
				assert.False(t, seen[id], "row %d served twice", id)
				seen[id] = true
			}
		}()
	}

	wg.Wait()

	assert.Len(t, seen, n)
	assert.Equal(t, n/p, cursor.CurrentPage())
}

func TestSessionStoreIsolation(t *testing.T) {
	store := NewSessionStore(5)

	a := store.NewSession()
	b := store.NewSession()
	require.NotEqual(t, a, b)

	store.Get(a).StoreResult(makeRows(7))
	store.Get(b).StoreResult(makeRows(2))

	pageA, err := store.Get(a).NextPage()
	require.NoError(t, err)
	assert.Len(t, pageA, 5)

	pageB, err := store.Get(b).NextPage()
	require.NoError(t, err)
	assert.Len(t, pageB, 2)

	assert.Equal(t, 1, store.Get(a).CurrentPage())
	assert.Equal(t, 1, store.Get(b).CurrentPage())
}

func TestSessionStoreCreatesOnDemand(t *testing.T) {
	store := NewSessionStore(5)

	cursor := store.Get("some-session")
	require.NotNil(t, cursor)
	assert.Same(t, cursor, store.Get("some-session"))

	store.Drop("some-session")
	assert.NotSame(t, cursor, store.Get("some-session"))
}
