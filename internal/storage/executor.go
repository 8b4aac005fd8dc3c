package storage

import (
	"context"
	"database/sql"
)

// Executor is the query surface the repository needs from the underlying
// store. *sql.DB satisfies it, as do transactions and test doubles.
//
// Parameters are always bound positionally through the driver; query text
// never embeds caller input, so escaping is the driver's job and injection
// is structurally impossible at this layer.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
