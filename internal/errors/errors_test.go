package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrTypeUnsafeQuery, "only SELECT statements are allowed")

	assert.Equal(t, ErrTypeUnsafeQuery, err.Type)
	assert.Equal(t, "unsafe_query: only SELECT statements are allowed", err.Error())
	assert.Nil(t, err.Cause)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrTypeTableNotFound, "table %q not found", "orders")

	assert.Equal(t, `table_not_found: table "orders" not found`, err.Error())
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := Wrap(cause, ErrTypeSchemaUnavailable, "failed to introspect test_db")

	assert.Contains(t, err.Error(), "failed to introspect test_db")
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestWrapf(t *testing.T) {
	cause := stderrors.New("timeout")
	err := Wrapf(cause, ErrTypeNetwork, "request to %s failed", "ollama")

	assert.Contains(t, err.Error(), "request to ollama failed")
	assert.ErrorIs(t, err, cause)
}

func TestIsType(t *testing.T) {
	err := New(ErrTypeExecutionFailed, "boom")

	assert.True(t, IsType(err, ErrTypeExecutionFailed))
	assert.False(t, IsType(err, ErrTypeUnsafeQuery))
	assert.False(t, IsType(stderrors.New("plain"), ErrTypeExecutionFailed))
	assert.False(t, IsType(nil, ErrTypeExecutionFailed))
}

func TestIsTypeThroughWrapping(t *testing.T) {
	inner := New(ErrTypeSchemaUnavailable, "introspection failed")
	outer := fmt.Errorf("loading schema: %w", inner)

	assert.True(t, IsType(outer, ErrTypeSchemaUnavailable))
	assert.Equal(t, ErrTypeSchemaUnavailable, GetType(outer))
}

func TestGetTypeFallsBackToInternal(t *testing.T) {
	assert.Equal(t, ErrTypeInternal, GetType(stderrors.New("plain")))
}

func TestWithSuggestion(t *testing.T) {
	err := New(ErrTypeConfig, "bad page size").
		WithSuggestion("set DB_SCOUT_PAGE_SIZE to a positive integer")

	require.Len(t, err.Suggestions, 1)
	assert.Equal(t, "set DB_SCOUT_PAGE_SIZE to a positive integer", err.Suggestions[0])
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("value out of range", "page_size")

	assert.Equal(t, ErrTypeConfig, err.Type)
	assert.Contains(t, err.Message, "field: page_size")
	assert.NotEmpty(t, err.Suggestions)
}
