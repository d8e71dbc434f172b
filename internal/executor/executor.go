package executor

import (
	"context"

	"github.com/kyleking/db-scout/internal/types"
)

// Backend executes a validated query request and reports a structured
// result. Implementations never propagate execution failures as errors;
// every failure becomes a QueryResult with Success=false.
type Backend interface {
	Execute(ctx context.Context, req types.QueryRequest) types.QueryResult
}
