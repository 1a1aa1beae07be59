package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

// Dialect names the SQL flavour of a connection. Repositories write queries
// with "?" placeholders; Bind rewrites them for the backend.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Rebind converts "?" placeholders to "$1, $2, ..." for Postgres. Question
// marks inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != Postgres || !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Bind wraps conn so every query is rebound for d. SQLite connections are
// returned unchanged.
func (d Dialect) Bind(conn DBTX) DBTX {
	if d != Postgres {
		return conn
	}
	return reboundDBTX{conn: conn, dialect: d}
}

type reboundDBTX struct {
	conn    DBTX
	dialect Dialect
}

func (r reboundDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return r.conn.ExecContext(ctx, r.dialect.Rebind(query), args...)
}

func (r reboundDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return r.conn.QueryContext(ctx, r.dialect.Rebind(query), args...)
}

func (r reboundDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return r.conn.QueryRowContext(ctx, r.dialect.Rebind(query), args...)
}
