package testutil

import (
	"context"
	"sync"

	"github.com/kyleking/db-scout/internal/schema"
	"github.com/kyleking/db-scout/internal/types"
)

// MockLLM implements llm.Service for testing with canned responses and
// error injection.
type MockLLM struct {
	mu sync.Mutex

	response string
	err      error
	prompts  []string
}

// MockLLMOption is a functional option for configuring MockLLM
type MockLLMOption func(*MockLLM)

// WithResponse sets the raw text the mock returns
func WithResponse(response string) MockLLMOption {
	return func(m *MockLLM) {
		m.response = response
	}
}

// WithCompleteError makes every Complete call fail with err
func WithCompleteError(err error) MockLLMOption {
	return func(m *MockLLM) {
		m.err = err
	}
}

// NewMockLLM creates a new mock model service with the given options
func NewMockLLM(opts ...MockLLMOption) *MockLLM {
	mock := &MockLLM{}

	for _, opt := range opts {
		opt(mock)
	}

	return mock
}

// Complete records the prompt and returns the configured response or error.
func (m *MockLLM) Complete(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)

	if m.err != nil {
		return "", m.err
	}

	return m.response, nil
}

// Prompts returns every prompt Complete has seen.
func (m *MockLLM) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	prompts := make([]string, len(m.prompts))
	copy(prompts, m.prompts)

	return prompts
}

// CallCount returns how many times Complete was invoked.
func (m *MockLLM) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.prompts)
}

// MockBackend implements executor.Backend returning a fixed result.
type MockBackend struct {
	mu sync.Mutex

	result   types.QueryResult
	requests []types.QueryRequest
}

// NewMockBackend creates a backend that answers every request with result.
func NewMockBackend(result types.QueryResult) *MockBackend {
	return &MockBackend{result: result}
}

// Execute records the request and returns the canned result.
func (m *MockBackend) Execute(_ context.Context, req types.QueryRequest) types.QueryResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	return m.result
}

// Requests returns every request Execute has seen.
func (m *MockBackend) Requests() []types.QueryRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	requests := make([]types.QueryRequest, len(m.requests))
	copy(requests, m.requests)

	return requests
}

// UsersSchema builds the demo schema snapshot used across tests: a users
// table and a products table under test_db.
func UsersSchema() *schema.Database {
	return &schema.Database{
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
}

// UserRows builds n sequential user rows for pagination tests.
func UserRows(n int) []types.Row {
	rows := make([]types.Row, 0, n)

	for i := 1; i <= n; i++ {
		rows = append(rows, types.Row{"id": i})
	}

	return rows
}
