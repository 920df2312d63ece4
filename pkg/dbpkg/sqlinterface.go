package dbpkg

import (
	"context"
	"database/sql"
)

// SQLInterface is satisfied by both *sql.DB and *sql.Tx, so queries and
// migrations can run inside or outside a transaction.
type SQLInterface interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}
