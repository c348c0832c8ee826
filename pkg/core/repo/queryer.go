package repo

import "context"

// Queryer runs raw SQL statements. Positional parameters are numbered
// like $1, $2, etc.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows is the result set of a Query. It must be closed by the caller.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}
