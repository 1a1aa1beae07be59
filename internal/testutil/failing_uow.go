package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/escopo/internal/db"
)

// FailOnNthWriteUoW is a test UoW that injects a failure on the Nth write
// within a transaction, for rollback tests over multi-write operations.
//
// Writes are counted starting at 1: every ExecContext call, plus
// QueryRowContext calls running an INSERT ... RETURNING. A failed ExecContext
// returns Err. A failed QueryRowContext cannot carry Err, so its row is
// produced under a cancelled context and scans as context.Canceled.
type FailOnNthWriteUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
}

func (u *FailOnNthWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	wrapped := &failOnNthWrite{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failOnNthWrite struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (f *failOnNthWrite) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.count.Add(1) == f.failOn {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

func (f *failOnNthWrite) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if !strings.HasPrefix(strings.TrimSpace(strings.ToUpper(query)), "INSERT") {
		return f.DBTX.QueryRowContext(ctx, query, args...)
	}
	if f.count.Add(1) == f.failOn {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		return f.DBTX.QueryRowContext(cancelled, query, args...)
	}
	return f.DBTX.QueryRowContext(ctx, query, args...)
}
