package executor

import (
	"context"
	"database/sql"

	"github.com/kyleking/db-scout/internal/logging"
	"github.com/kyleking/db-scout/internal/safety"
	"github.com/kyleking/db-scout/internal/types"
)

// SQLBackend runs statements against a live database inside a read-only
// transaction. Unsafe statements are rejected before any database access.
type SQLBackend struct {
	db *sql.DB
}

// NewSQLBackend creates a backend over an open database handle. The handle
// stays owned by the caller; per-request connections are acquired from its
// pool and released on every exit path.
func NewSQLBackend(db *sql.DB) *SQLBackend {
	return &SQLBackend{db: db}
}

// Execute gates the request through the safety validator, then runs it in a
// read-only transaction and fetches all rows. Any execution failure rolls
// the transaction back and surfaces as a failed result; no side effects
// survive a rollback. No implicit row limit is applied.
func (b *SQLBackend) Execute(ctx context.Context, req types.QueryRequest) types.QueryResult {
	logger := logging.GetLogger()

	verdict := safety.Classify(req.RawSQL)
	if !verdict.Safe {
		logger.WithField("origin", string(req.Origin)).
			Warnf("Rejected unsafe query: %s", verdict.Reason)

		return types.Failed("Potentially unsafe query detected. " + verdict.Reason)
	}

	conn, err := b.db.Conn(ctx)
	if err != nil {
		return types.Failed(err.Error())
	}
	defer func() { _ = conn.Close() }()

	tx, err := conn.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return types.Failed(err.Error())
	}

	rows, err := tx.QueryContext(ctx, req.RawSQL)
	if err != nil {
		_ = tx.Rollback()
		return types.Failed(err.Error())
	}

	results, err := scanRows(rows)
	_ = rows.Close()

	if err != nil {
		_ = tx.Rollback()
		return types.Failed(err.Error())
	}

	if err := tx.Commit(); err != nil {
		return types.Failed(err.Error())
	}

	logger.Debugf("Executed query (%d rows, origin=%s)", len(results), req.Origin)

	return types.Succeeded(results)
}

// scanRows fetches every row into a name-keyed map, converting []byte
// values to strings for readability.
func scanRows(rows *sql.Rows) ([]types.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []types.Row

	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))

		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(types.Row, len(cols))

		for i, col := range cols {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}

			row[col] = val
		}

		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
