package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/testutil"
	"github.com/stretchr/testify/require"
)

// chain is one node per level under a fresh project.
type chain struct {
	project *domain.Project
	nodes   [domain.MaxLevel + 1]*domain.Node
}

func seedChain(t *testing.T, database *sql.DB) chain {
	t.Helper()
	ctx := context.Background()

	var c chain
	c.project = testutil.NewTestProject("Portal")
	require.NoError(t, NewSQLProjectRepo(database).Create(ctx, c.project))

	stores := NewSQLNodeStores(database)
	parent := c.project.ID
	for _, l := range domain.AllLevels() {
		n := testutil.NewTestNode(l, parent, l.String())
		require.NoError(t, stores.At(l).Insert(ctx, n))
		c.nodes[l] = n
		parent = n.ID
	}
	return c
}
