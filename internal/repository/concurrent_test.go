package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/escopo/internal/db"
	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestConcurrentInserts_ReadersSeeConsistentChildren(t *testing.T) {
	database := newConcurrentTestDB(t)
	c := seedChain(t, database)
	ctx := context.Background()
	uow := db.NewUnitOfWork(database, db.SQLite)
	parent := c.nodes[domain.Level3].ID

	const writers = 20
	var wg sync.WaitGroup
	errCh := make(chan error, writers*2)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				leaf := testutil.NewTestNode(domain.Level4, parent, fmt.Sprintf("leaf-%d", i))
				return NewSQLNodeRepo(tx, domain.Level4).Insert(ctx, leaf)
			})
			if err != nil {
				errCh <- err
			}
		}(i)
	}

	reader := NewSQLNodeRepo(database, domain.Level4)
	wg.Add(1)
	go func() {
		defer wg.Done()
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			children, err := reader.FindByParent(ctx, parent)
			if err != nil {
				errCh <- err
				return
			}
			if len(children) == writers+1 {
				return
			}
		}
	}()

	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	children, err := reader.FindByParent(ctx, parent)
	require.NoError(t, err)
	assert.Len(t, children, writers+1)

	seen := map[int]bool{}
	for _, n := range children {
		assert.False(t, seen[n.Seq], "seq %d allocated twice", n.Seq)
		seen[n.Seq] = true
	}
}
