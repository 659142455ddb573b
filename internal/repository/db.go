package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/guestlens/server/internal/observability"
)

// Driver identifies the SQL dialect in use
type Driver string

const (
	DriverSQLite   Driver = "sqlite3"
	DriverPostgres Driver = "postgres"
)

// DB wraps *sql.DB with the driver's placeholder dialect. Queries are written
// with `?` placeholders and rebound to `$n` for PostgreSQL.
type DB struct {
	*sql.DB
	driver Driver
}

// Driver returns the underlying driver
func (d *DB) Driver() Driver {
	return d.driver
}

// QueryContext runs a query inside a client span
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	var rows *sql.Rows
	var err error
	observability.TraceQuery(ctx, string(d.driver), "Query", query, func(ctx context.Context) error {
		rows, err = d.DB.QueryContext(ctx, query, args...)
		return err
	})
	return rows, err
}

// ExecContext runs a statement inside a client span
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	var result sql.Result
	var err error
	observability.TraceQuery(ctx, string(d.driver), "Exec", query, func(ctx context.Context) error {
		result, err = d.DB.ExecContext(ctx, query, args...)
		return err
	})
	return result, err
}

// QueryRowContext runs a single-row query inside a client span. Scan errors
// surface at the caller, after the span has closed.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	var row *sql.Row
	observability.TraceQuery(ctx, string(d.driver), "QueryRow", query, func(ctx context.Context) error {
		row = d.DB.QueryRowContext(ctx, query, args...)
		return nil
	})
	return row
}

// IsUniqueViolation reports whether an error is a unique constraint failure
// from either driver
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}
	return false
}

// Rebind converts `?` placeholders to the driver's dialect
func (d *DB) Rebind(query string) string {
	if d.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
