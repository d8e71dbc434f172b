package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// DuckDBIntrospector reads metadata from information_schema and the
// PRAGMA table_info virtual table, which carries nullability, primary-key
// membership and defaults in one pass.
type DuckDBIntrospector struct{}

func NewDuckDBIntrospector() *DuckDBIntrospector {
	return &DuckDBIntrospector{}
}

// Quote returns the DuckDB identifier-quoting character.
func (i *DuckDBIntrospector) Quote() string {
	return `"`
}

// ListTables returns all base table names in the main schema.
func (i *DuckDBIntrospector) ListTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'main' AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}

		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tables: %w", err)
	}

	return tables, nil
}

// TableColumns describes the columns of one table in declaration order.
func (i *DuckDBIntrospector) TableColumns(
	ctx context.Context,
	db *sql.DB,
	table string,
) ([]Column, error) {
	query := fmt.Sprintf("PRAGMA table_info(%s)", i.quoteIdent(table))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to describe table %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var columns []Column

	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    bool
			defaultVal sql.NullString
			pk         bool
		)

		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}

		col := Column{
			Name:     name,
			Type:     colType,
			Nullable: !notNull,
		}

		if pk {
			col.Key = KeyPrimary
		}

		if defaultVal.Valid {
			value := defaultVal.String
			col.Default = &value
		}

		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate columns: %w", err)
	}

	return columns, nil
}

// quoteIdent quotes a DuckDB identifier, doubling embedded quotes.
func (i *DuckDBIntrospector) quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
