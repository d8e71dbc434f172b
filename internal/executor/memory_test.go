package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/db-scout/internal/types"
)

func TestMemoryBackendSelectAll(t *testing.T) {
	backend := SampleBackend()

	result := backend.Execute(context.Background(), types.QueryRequest{
		RawSQL: "SELECT * FROM users",
		Origin: types.OriginDirect,
	})

	require.True(t, result.Success)
	assert.Empty(t, result.Error)
	assert.Equal(t, 3, result.RowCount)
	assert.Len(t, result.Rows, result.RowCount)
	assert.Equal(t, "Alice", result.Rows[0]["name"])
}

func TestMemoryBackendLimit(t *testing.T) {
	backend := SampleBackend()

	result := backend.Execute(context.Background(), types.QueryRequest{
		RawSQL: "SELECT * FROM users LIMIT 2",
		Origin: types.OriginDirect,
	})

	require.True(t, result.Success)
	assert.Equal(t, 2, result.RowCount)
}

func TestMemoryBackendLimitLargerThanTable(t *testing.T) {
	backend := SampleBackend()

	result := backend.Execute(context.Background(), types.QueryRequest{
		RawSQL: "select * from products limit 50;",
		Origin: types.OriginDirect,
	})

	require.True(t, result.Success)
	assert.Equal(t, 2, result.RowCount)
}

func TestMemoryBackendMalformedLimitIgnored(t *testing.T) {
	backend := SampleBackend()

	result := backend.Execute(context.Background(), types.QueryRequest{
		RawSQL: "SELECT * FROM users LIMIT abc",
		Origin: types.OriginDirect,
	})

	require.True(t, result.Success)
	assert.Equal(t, 3, result.RowCount)
}

func TestMemoryBackendTableNotFound(t *testing.T) {
	backend := SampleBackend()

	result := backend.Execute(context.Background(), types.QueryRequest{
		RawSQL: "SELECT * FROM orders",
		Origin: types.OriginDirect,
	})

	require.False(t, result.Success)
	assert.Empty(t, result.Rows)
	assert.Equal(t, "Table 'orders' not found.", result.Error)
}

func TestMemoryBackendUnsafeRejected(t *testing.T) {
	backend := SampleBackend()

	tests := []string{
		"DROP TABLE users",
		"select * from users; DROP TABLE users",
		"INSERT INTO users VALUES (4, 'Mallory', 99)",
	}

	for _, sqlText := range tests {
		result := backend.Execute(context.Background(), types.QueryRequest{
			RawSQL: sqlText,
			Origin: types.OriginGenerated,
		})

		require.False(t, result.Success, "expected %q to be rejected", sqlText)
		assert.Empty(t, result.Rows)
		assert.Contains(t, result.Error, "Potentially unsafe query detected")
	}
}

func TestMemoryBackendMissingFrom(t *testing.T) {
	backend := SampleBackend()

	result := backend.Execute(context.Background(), types.QueryRequest{
		RawSQL: "SELECT 1",
		Origin: types.OriginDirect,
	})

	require.False(t, result.Success)
	assert.Equal(t, "Failed to parse table name from SQL.", result.Error)
}

func TestMemoryBackendResultIsolation(t *testing.T) {
	backend := SampleBackend()

	first := backend.Execute(context.Background(), types.QueryRequest{
		RawSQL: "SELECT * FROM users",
	})
	require.True(t, first.Success)

	// Mutating a returned slice must not affect later executions.
	first.Rows[0] = types.Row{"id": -1}

	second := backend.Execute(context.Background(), types.QueryRequest{
		RawSQL: "SELECT * FROM users",
	})
	require.True(t, second.Success)
	assert.Equal(t, 1, second.Rows[0]["id"])
}

func TestMemoryBackendSchema(t *testing.T) {
	backend := SampleBackend()

	snapshot := backend.Schema()
	require.NotNil(t, snapshot)
	assert.Equal(t, "test_db", snapshot.Name)
	assert.Equal(t, []string{"products", "users"}, snapshot.TableNames())
}
