package executor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kyleking/db-scout/internal/safety"
	"github.com/kyleking/db-scout/internal/schema"
	"github.com/kyleking/db-scout/internal/types"
)

// MemoryBackend matches simple SELECT statements against an in-memory table
// map. It is a degenerate stand-in for the SQL backend used when no real
// database is attached: only `SELECT * FROM <table>` is understood, with an
// optional LIMIT extracted by naive text search.
type MemoryBackend struct {
	database string
	tables   map[string][]types.Row
	schema   *schema.Database
}

// NewMemoryBackend creates a backend over fixed table data and its schema
// snapshot.
func NewMemoryBackend(
	database string,
	tables map[string][]types.Row,
	snapshot *schema.Database,
) *MemoryBackend {
	return &MemoryBackend{
		database: database,
		tables:   tables,
		schema:   snapshot,
	}
}

// Schema returns the static snapshot describing the in-memory tables.
func (b *MemoryBackend) Schema() *schema.Database {
	return b.schema
}

// Execute gates the request through the safety validator, then resolves the
// table name after FROM and returns its rows, truncated by a LIMIT clause
// when one parses.
func (b *MemoryBackend) Execute(_ context.Context, req types.QueryRequest) types.QueryResult {
	verdict := safety.Classify(req.RawSQL)
	if !verdict.Safe {
		return types.Failed("Potentially unsafe query detected. " + verdict.Reason)
	}

	table, err := parseTableName(req.RawSQL)
	if err != nil {
		return types.Failed(err.Error())
	}

	rows, ok := b.tables[table]
	if !ok {
		return types.Failed(fmt.Sprintf("Table '%s' not found.", table))
	}

	if limit, ok := parseLimit(req.RawSQL); ok && limit < len(rows) {
		rows = rows[:limit]
	}

	// Copy so callers cannot mutate the backing data.
	results := make([]types.Row, len(rows))
	copy(results, rows)

	return types.Succeeded(results)
}

// parseTableName extracts the first token after FROM.
func parseTableName(sqlText string) (string, error) {
	lower := strings.ToLower(sqlText)

	idx := strings.Index(lower, "from")
	if idx < 0 {
		return "", fmt.Errorf("Failed to parse table name from SQL.")
	}

	after := strings.TrimSpace(sqlText[idx+len("from"):])

	fields := strings.Fields(after)
	if len(fields) == 0 {
		return "", fmt.Errorf("Failed to parse table name from SQL.")
	}

	return strings.TrimRight(strings.ToLower(fields[0]), ";"), nil
}

// parseLimit extracts an optional LIMIT value. A malformed limit is ignored
// rather than treated as an error.
func parseLimit(sqlText string) (int, bool) {
	lower := strings.ToLower(sqlText)

	idx := strings.Index(lower, "limit")
	if idx < 0 {
		return 0, false
	}

	fields := strings.Fields(lower[idx+len("limit"):])
	if len(fields) == 0 {
		return 0, false
	}

	limit, err := strconv.Atoi(strings.TrimRight(fields[0], ";"))
	if err != nil || limit < 0 {
		return 0, false
	}

	return limit, true
}

// SampleBackend builds a memory backend seeded with the demo dataset: a
// users table and a products table under the test_db database.
func SampleBackend() *MemoryBackend {
	tables := map[string][]types.Row{
		"users": {
			{"id": 1, "name": "Alice", "age": 30},
			{"id": 2, "name": "Bob", "age": 25},
			{"id": 3, "name": "Charlie", "age": 35},
		},
		"products": {
			{"id": 101, "product_name": "Phone", "price": 699},
			{"id": 102, "product_name": "Laptop", "price": 1299},
		},
	}

	snapshot := &schema.Database{
		Name:  "test_db",
		Quote: "`",
		Tables: map[string]schema.Table{
			"users": {
				Name: "users",
				Columns: []schema.Column{
					{Name: "id", Type: "int", Nullable: false, Key: schema.KeyPrimary},
					{Name: "name", Type: "varchar(255)", Nullable: true},
					{Name: "age", Type: "int", Nullable: true},
				},
			},
			"products": {
				Name: "products",
				Columns: []schema.Column{
					{Name: "id", Type: "int", Nullable: false, Key: schema.KeyPrimary},
					{Name: "product_name", Type: "varchar(255)", Nullable: true},
					{Name: "price", Type: "int", Nullable: true},
				},
			},
		},
	}

	return NewMemoryBackend("test_db", tables, snapshot)
}
