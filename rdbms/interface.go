package rdbms

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/pkg/errors"
)

// ErrNoRows is returned by Row.Scan when a query matched nothing.
var ErrNoRows = pgx.ErrNoRows

// Connector abstracts the SQL access both pipeline databases need.
type Connector interface {
	Query(ctx context.Context, sql string, args ...interface{}) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) Row
	Exec(ctx context.Context, sql string, args ...interface{}) error
	Begin(ctx context.Context) (Tx, error)
	Close(ctx context.Context) error
}

type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Close()
	Err() error
}

type Row interface {
	Scan(dest ...interface{}) error
}

type Tx interface {
	Exec(ctx context.Context, sql string, args ...interface{}) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ConnectionError means a database could not be reached at all.
type ConnectionError struct {
	Host string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect to database host %q: %v", e.Host, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// QueryError means a statement failed against an open connection.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v (sql: %v)", e.Err, e.Query)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsUniqueViolation reports whether err is a Postgres unique_violation
// (SQLSTATE 23505), typically a re-applied row hitting a primary key.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
