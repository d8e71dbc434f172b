package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDatabase() *Database {
	defaultAge := "18"

	return &Database{
		Name:  "test_db",
		Quote: "`",
		Tables: map[string]Table{
			"users": {
				Name: "users",
				Columns: []Column{
					{Name: "id", Type: "int", Nullable: false, Key: KeyPrimary, Extra: "auto_increment"},
					{Name: "name", Type: "varchar(255)", Nullable: true},
					{Name: "age", Type: "int", Nullable: true, Default: &defaultAge},
				},
			},
			"products": {
				Name: "products",
				Columns: []Column{
					{Name: "id", Type: "int", Nullable: false, Key: KeyPrimary},
					{Name: "price", Type: "int", Nullable: true},
				},
			},
		},
	}
}

func TestTableNamesSorted(t *testing.T) {
	db := sampleDatabase()

	assert.Equal(t, []string{"products", "users"}, db.TableNames())
}

func TestHasTable(t *testing.T) {
	db := sampleDatabase()

	assert.True(t, db.HasTable("users"))
	assert.False(t, db.HasTable("orders"))
}

func TestRender(t *testing.T) {
	rendered := sampleDatabase().Render()

	assert.Contains(t, rendered, "Database: test_db")
	assert.Contains(t, rendered, "Table: users")
	assert.Contains(t, rendered, "Table: products")
	assert.Contains(t, rendered, "  - id int [primary key, not null, auto_increment]")
	assert.Contains(t, rendered, "  - name varchar(255)\n")
	assert.Contains(t, rendered, "  - age int [default 18]")

	// Tables render in sorted order so prompts stay deterministic.
	assert.Less(t,
		strings.Index(rendered, "Table: products"),
		strings.Index(rendered, "Table: users"))
}
