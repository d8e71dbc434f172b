package schema

import (
	"fmt"
	"sort"
	"strings"
)

// KeyRole marks a column's participation in the table key.
type KeyRole string

const (
	KeyNone    KeyRole = ""
	KeyPrimary KeyRole = "PRI"
)

// Column describes one introspected column. Immutable once introspected for
// a given schema snapshot.
type Column struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	Key      KeyRole `json:"key,omitempty"`
	Default  *string `json:"default,omitempty"`
	Extra    string  `json:"extra,omitempty"`
}

// Table is an ordered sequence of columns, keyed by table name.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Database is one introspection snapshot of a database. Quote is the
// identifier-quoting character of the underlying driver, carried so the
// translator can tell the model which convention to use.
type Database struct {
	Name   string           `json:"database"`
	Tables map[string]Table `json:"tables"`
	Quote  string           `json:"-"`
}

// TableNames returns the table names in sorted order.
func (d *Database) TableNames() []string {
	names := make([]string, 0, len(d.Tables))
	for name := range d.Tables {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// HasTable reports whether the snapshot contains the named table.
func (d *Database) HasTable(name string) bool {
	_, ok := d.Tables[name]
	return ok
}

// Render produces the compact textual description embedded into the
// translation prompt: the database name, then one line per column with its
// type and inferred constraints.
func (d *Database) Render() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Database: %s\n", d.Name))

	for _, tableName := range d.TableNames() {
		table := d.Tables[tableName]
		sb.WriteString(fmt.Sprintf("Table: %s\n", table.Name))

		for _, col := range table.Columns {
			sb.WriteString(fmt.Sprintf("  - %s %s", col.Name, col.Type))

			var constraints []string
			if col.Key == KeyPrimary {
				constraints = append(constraints, "primary key")
			}

			if !col.Nullable {
				constraints = append(constraints, "not null")
			}

			if col.Default != nil {
				constraints = append(constraints, "default "+*col.Default)
			}

			if col.Extra != "" {
				constraints = append(constraints, col.Extra)
			}

			if len(constraints) > 0 {
				sb.WriteString(fmt.Sprintf(" [%s]", strings.Join(constraints, ", ")))
			}

			sb.WriteString("\n")
		}
	}

	return sb.String()
}
