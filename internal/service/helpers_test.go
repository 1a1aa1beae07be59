package service

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/repository"
	"github.com/alexanderramin/escopo/internal/testutil"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// countingNodeStore counts writes passing through to the wrapped store.
type countingNodeStore struct {
	repository.NodeStore
	writes *atomic.Int32
}

func (c *countingNodeStore) Insert(ctx context.Context, n *domain.Node) error {
	c.writes.Add(1)
	return c.NodeStore.Insert(ctx, n)
}

func (c *countingNodeStore) Update(ctx context.Context, n *domain.Node) error {
	c.writes.Add(1)
	return c.NodeStore.Update(ctx, n)
}

func (c *countingNodeStore) Delete(ctx context.Context, id string) error {
	c.writes.Add(1)
	return c.NodeStore.Delete(ctx, id)
}

type testEnv struct {
	db        *sql.DB
	writes    *atomic.Int32
	projects  repository.ProjectRepo
	types     repository.LevelTypeRepo
	schedule  repository.ScheduleRepo
	hierarchy HierarchyService
}

func setupEnv(t *testing.T, mode domain.UpdateMode, observers ...UseCaseObserver) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)

	env := &testEnv{
		db:       database,
		writes:   &atomic.Int32{},
		projects: repository.NewSQLProjectRepo(database),
		types:    repository.NewSQLLevelTypeRepo(database),
		schedule: repository.NewSQLScheduleRepo(database),
	}
	stores := repository.NewSQLNodeStores(database)
	for _, l := range domain.AllLevels() {
		stores[l] = &countingNodeStore{NodeStore: stores[l], writes: env.writes}
	}
	env.hierarchy = NewHierarchyService(stores, env.projects, env.types,
		HierarchyOptions{UpdateMode: mode, Now: fixedClock}, observers...)
	return env
}

func (e *testEnv) project(t *testing.T, opts ...testutil.ProjectOption) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject("Portal do Cliente", opts...)
	require.NoError(t, e.projects.Create(context.Background(), p))
	return p
}

// create makes a node through the service and fails the test on error.
func (e *testEnv) create(t *testing.T, level domain.Level, parentID string, in domain.NodeInput) *domain.Node {
	t.Helper()
	n, err := e.hierarchy.CreateNode(context.Background(), level, parentID, in)
	require.NoError(t, err)
	return n
}

// chain creates one node per level and returns them indexed by level.
func (e *testEnv) chain(t *testing.T, projectID string) [domain.MaxLevel + 1]*domain.Node {
	t.Helper()
	var nodes [domain.MaxLevel + 1]*domain.Node
	parent := projectID
	for _, l := range domain.AllLevels() {
		nodes[l] = e.create(t, l, parent, input(l, l.String()))
		parent = nodes[l].ID
	}
	return nodes
}

// input builds a minimal valid payload for level. Level1 payloads carry the
// seeded frontend type.
func input(level domain.Level, name string) domain.NodeInput {
	in := domain.NodeInput{Name: &name}
	if level.Spec().Typed {
		in.TypeID = ptr("frontend")
	}
	return in
}

func ptr[T any](v T) *T { return &v }

// withDates returns in with the given range; "" leaves a bound absent.
func withDates(in domain.NodeInput, start, target string) domain.NodeInput {
	if start != "" {
		in.StartDate = testutil.DatePtr(start)
	}
	if target != "" {
		in.TargetDate = testutil.DatePtr(target)
	}
	return in
}
