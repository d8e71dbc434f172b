package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/marcboeker/go-duckdb" // DuckDB driver

	"github.com/kyleking/db-scout/internal/config"
)

// Factory opens database connections from the configured driver settings.
// The database identifier selects the database name (MySQL) or file path
// (DuckDB), so one process can target more than one database.
type Factory struct {
	cfg config.DatabaseConfig
}

// NewFactory creates a connection factory for the given database settings.
func NewFactory(cfg config.DatabaseConfig) *Factory {
	return &Factory{cfg: cfg}
}

// Connect opens a pooled connection handle for databaseID. The caller owns
// the handle and must close it.
func (f *Factory) Connect(databaseID string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch f.cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			f.cfg.User, f.cfg.Password, f.cfg.Host, f.cfg.Port, databaseID)
		db, err = sql.Open("mysql", dsn)
	case "duckdb":
		path := f.cfg.Path
		if databaseID != "" && databaseID != f.cfg.Name {
			path = databaseID
		}
		db, err = sql.Open("duckdb", path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", f.cfg.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(f.cfg.MaxConnections)
	db.SetMaxIdleConns(f.cfg.MaxIdleConns)

	if lifetime, err := time.ParseDuration(f.cfg.ConnMaxLifetime); err == nil {
		db.SetConnMaxLifetime(lifetime)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
