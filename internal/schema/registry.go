package schema

import (
	"context"
	"database/sql"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/kyleking/db-scout/internal/errors"
	"github.com/kyleking/db-scout/internal/logging"
)

// Provider serves schema snapshots for database identifiers. The Registry is
// the live-database implementation; StaticProvider backs the in-memory mode.
type Provider interface {
	GetSchema(ctx context.Context, databaseID string) (*Database, error)
	ListTables(ctx context.Context, databaseID string) ([]string, error)
}

// ConnectionFactory yields a database connection for a database identifier.
// The caller owns the returned handle and must close it.
type ConnectionFactory interface {
	Connect(databaseID string) (*sql.DB, error)
}

// Introspector reads table and column metadata through a live connection.
// Implementations are driver-specific.
type Introspector interface {
	ListTables(ctx context.Context, db *sql.DB) ([]string, error)
	TableColumns(ctx context.Context, db *sql.DB, table string) ([]Column, error)
	Quote() string
}

// Registry introspects and caches database schemas per database identifier.
// Snapshots are held until Invalidate is called; there is no time-based
// refresh. Concurrent misses for the same identifier are collapsed into a
// single introspection pass.
type Registry struct {
	factory ConnectionFactory
	intro   Introspector

	mu    sync.RWMutex
	cache map[string]*Database
	group singleflight.Group
}

// NewRegistry creates a schema registry over the given connection factory
// and driver introspector.
func NewRegistry(factory ConnectionFactory, intro Introspector) *Registry {
	return &Registry{
		factory: factory,
		intro:   intro,
		cache:   make(map[string]*Database),
	}
}

// GetSchema returns the cached snapshot for databaseID, introspecting on a
// cache miss. Introspection failures do not populate the cache.
func (r *Registry) GetSchema(ctx context.Context, databaseID string) (*Database, error) {
	r.mu.RLock()
	cached := r.cache[databaseID]
	r.mu.RUnlock()

	if cached != nil {
		return cached, nil
	}

	result, err, _ := r.group.Do(databaseID, func() (interface{}, error) {
		// A racing miss may have filled the cache while we waited for the
		// flight lock.
		r.mu.RLock()
		cached := r.cache[databaseID]
		r.mu.RUnlock()

		if cached != nil {
			return cached, nil
		}

		snapshot, err := r.introspect(ctx, databaseID)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.cache[databaseID] = snapshot
		r.mu.Unlock()

		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Database), nil
}

// ListTables returns the sorted table names of the snapshot for databaseID.
func (r *Registry) ListTables(ctx context.Context, databaseID string) ([]string, error) {
	snapshot, err := r.GetSchema(ctx, databaseID)
	if err != nil {
		return nil, err
	}

	return snapshot.TableNames(), nil
}

// Invalidate drops the cached snapshot for databaseID. The next GetSchema
// call re-introspects.
func (r *Registry) Invalidate(databaseID string) {
	r.mu.Lock()
	delete(r.cache, databaseID)
	r.mu.Unlock()

	r.group.Forget(databaseID)
}

// introspect opens a connection, lists all tables and describes each one.
// The connection is released on every exit path.
func (r *Registry) introspect(ctx context.Context, databaseID string) (*Database, error) {
	logger := logging.GetLogger()
	logger.Debugf("Introspecting schema for database %q", databaseID)

	db, err := r.factory.Connect(databaseID)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeSchemaUnavailable,
			"failed to connect to database %q", databaseID)
	}
	defer func() { _ = db.Close() }()

	tableNames, err := r.intro.ListTables(ctx, db)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTypeSchemaUnavailable,
			"failed to list tables for database %q", databaseID)
	}

	tables := make(map[string]Table, len(tableNames))

	for _, name := range tableNames {
		columns, err := r.intro.TableColumns(ctx, db, name)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrTypeSchemaUnavailable,
				"failed to describe table %q", name)
		}

		tables[name] = Table{Name: name, Columns: columns}
	}

	logger.Debugf("Introspected %d tables for database %q", len(tables), databaseID)

	return &Database{
		Name:   databaseID,
		Tables: tables,
		Quote:  r.intro.Quote(),
	}, nil
}

// StaticProvider serves a fixed schema snapshot regardless of database
// identifier. Used with the in-memory backend.
type StaticProvider struct {
	Snapshot *Database
}

func (p *StaticProvider) GetSchema(_ context.Context, _ string) (*Database, error) {
	return p.Snapshot, nil
}

func (p *StaticProvider) ListTables(_ context.Context, _ string) ([]string, error) {
	return p.Snapshot.TableNames(), nil
}
