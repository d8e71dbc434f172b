package schema

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLIntrospectorListTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SHOW TABLES").WillReturnRows(
		sqlmock.NewRows([]string{"Tables_in_test_db"}).
			AddRow("users").
			AddRow("products"))

	intro := NewMySQLIntrospector()

	tables, err := intro.ListTables(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "products"}, tables)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLIntrospectorTableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `users`")).WillReturnRows(
		sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
			AddRow("id", "int", "NO", "PRI", nil, "auto_increment").
			AddRow("name", "varchar(255)", "YES", "", nil, "").
			AddRow("age", "int", "YES", "", "18", ""))

	intro := NewMySQLIntrospector()

	columns, err := intro.TableColumns(context.Background(), db, "users")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, Column{
		Name:     "id",
		Type:     "int",
		Nullable: false,
		Key:      KeyPrimary,
		Extra:    "auto_increment",
	}, columns[0])

	assert.Equal(t, "name", columns[1].Name)
	assert.True(t, columns[1].Nullable)
	assert.Equal(t, KeyNone, columns[1].Key)
	assert.Nil(t, columns[1].Default)

	require.NotNil(t, columns[2].Default)
	assert.Equal(t, "18", *columns[2].Default)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLIntrospectorQuote(t *testing.T) {
	intro := NewMySQLIntrospector()

	assert.Equal(t, "`", intro.Quote())
	assert.Equal(t, "`weird``name`", intro.quoteIdent("weird`name"))
}

func TestDuckDBIntrospectorListTables(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	mock.ExpectQuery("SELECT table_name").WillReturnRows(
		sqlmock.NewRows([]string{"table_name"}).
			AddRow("products").
			AddRow("users"))

	intro := NewDuckDBIntrospector()

	tables, err := intro.ListTables(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"products", "users"}, tables)
}

func TestDuckDBIntrospectorTableColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`PRAGMA table_info("users")`)).WillReturnRows(
		sqlmock.NewRows([]string{"cid", "name", "type", "notnull", "dflt_value", "pk"}).
			AddRow(0, "id", "INTEGER", true, nil, true).
			AddRow(1, "name", "VARCHAR", false, nil, false))

	intro := NewDuckDBIntrospector()

	columns, err := intro.TableColumns(context.Background(), db, "users")
	require.NoError(t, err)
	require.Len(t, columns, 2)

	assert.Equal(t, KeyPrimary, columns[0].Key)
	assert.False(t, columns[0].Nullable)
	assert.True(t, columns[1].Nullable)
	assert.Equal(t, KeyNone, columns[1].Key)
}

func TestDuckDBIntrospectorQuote(t *testing.T) {
	intro := NewDuckDBIntrospector()

	assert.Equal(t, `"`, intro.Quote())
	assert.Equal(t, `"weird""name"`, intro.quoteIdent(`weird"name`))
}
