package paginate

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/kyleking/db-scout/internal/types"
)

// ErrEndOfPages is reported when every stored row has already been served.
var ErrEndOfPages = errors.New("no more pages")

const defaultPageSize = 10

// Cursor holds the last successful result set for one session and serves it
// back in fixed-size pages. Concurrent calls within the session are
// serialized so page advancement stays deterministic.
type Cursor struct {
	mu       sync.Mutex
	rows     []types.Row
	pageSize int
	page     int
}

// NewCursor creates a cursor with the given page size.
func NewCursor(pageSize int) *Cursor {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	return &Cursor{pageSize: pageSize}
}

// StoreResult replaces the stored rows wholesale and resets the cursor to
// the first page.
func (c *Cursor) StoreResult(rows []types.Row) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rows = rows
	c.page = 0
}

// NextPage returns the next page of stored rows, possibly shorter than the
// page size for the final page. The cursor advances only when a non-empty
// slice is served; past the end it reports ErrEndOfPages without advancing.
func (c *Cursor) NextPage() ([]types.Row, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := c.page * c.pageSize
	if start >= len(c.rows) {
		return nil, ErrEndOfPages
	}

	end := start + c.pageSize
	if end > len(c.rows) {
		end = len(c.rows)
	}

	c.page++

	return c.rows[start:end], nil
}

// CurrentPage returns the number of pages served so far.
func (c *Cursor) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.page
}

// PageSize returns the fixed page size of the cursor.
func (c *Cursor) PageSize() int {
	return c.pageSize
}

// SessionStore hands out one cursor per session. Cursors are not shared
// across sessions and carry no identity beyond the session's lifetime.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Cursor
	pageSize int
}

// NewSessionStore creates a store whose cursors use the given page size.
func NewSessionStore(pageSize int) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Cursor),
		pageSize: pageSize,
	}
}

// Get returns the cursor for sessionID, creating it on first use.
func (s *SessionStore) Get(sessionID string) *Cursor {
	s.mu.Lock()
	defer s.mu.Unlock()

	cursor, ok := s.sessions[sessionID]
	if !ok {
		cursor = NewCursor(s.pageSize)
		s.sessions[sessionID] = cursor
	}

	return cursor
}

// NewSession creates a fresh session and returns its identifier.
func (s *SessionStore) NewSession() string {
	id := uuid.New().String()

	s.mu.Lock()
	s.sessions[id] = NewCursor(s.pageSize)
	s.mu.Unlock()

	return id
}

// Drop discards the cursor for sessionID.
func (s *SessionStore) Drop(sessionID string) {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
}
