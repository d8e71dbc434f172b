package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// MySQLIntrospector reads metadata using SHOW TABLES / SHOW COLUMNS, the
// same shape MySQL reports in the Field/Type/Null/Key/Default/Extra columns.
type MySQLIntrospector struct{}

func NewMySQLIntrospector() *MySQLIntrospector {
	return &MySQLIntrospector{}
}

// Quote returns the MySQL identifier-quoting character.
func (i *MySQLIntrospector) Quote() string {
	return "`"
}

// ListTables returns all table names in the connected database.
func (i *MySQLIntrospector) ListTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SHOW TABLES")
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
func (i *MySQLIntrospector) TableColumns(
	ctx context.Context,
	db *sql.DB,
	table string,
) ([]Column, error) {
	query := fmt.Sprintf("SHOW COLUMNS FROM %s", i.quoteIdent(table))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to describe table %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var columns []Column

	for rows.Next() {
		var (
			field, colType, null, key, extra string
			defaultVal                       sql.NullString
		)

		if err := rows.Scan(&field, &colType, &null, &key, &defaultVal, &extra); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}

		col := Column{
			Name:     field,
			Type:     colType,
			Nullable: strings.EqualFold(null, "YES"),
			Extra:    extra,
		}

		if key == "PRI" {
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

// quoteIdent quotes a MySQL identifier, doubling embedded backticks.
func (i *MySQLIntrospector) quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
