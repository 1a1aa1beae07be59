package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/repository"
	"github.com/alexanderramin/escopo/internal/service"
	"github.com/alexanderramin/escopo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	now := func() time.Time { return fixedNow }

	projects := repository.NewSQLProjectRepo(database)
	types := repository.NewSQLLevelTypeRepo(database)
	opts := service.HierarchyOptions{UpdateMode: domain.UpdateMerge, Now: now}
	hierarchy := service.NewHierarchyService(repository.NewSQLNodeStores(database), projects, types, opts)

	return &App{
		Projects:  service.NewProjectService(projects, now),
		Hierarchy: hierarchy,
		Schedule:  service.NewScheduleService(repository.NewSQLScheduleRepo(database), projects, now),
		Summary:   service.NewSummaryService(hierarchy, projects, types),
		Types:     service.NewLevelTypeService(types),
		Import:    service.NewImportService(testutil.NewTestUoW(database), opts),
		Now:       now,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// executeJSON runs a command with --json and decodes its output into v.
func executeJSON(t *testing.T, app *App, v any, args ...string) {
	t.Helper()
	out, err := executeCmd(t, app, append([]string{"--json"}, args...)...)
	require.NoError(t, err, out)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

func seedProject(t *testing.T, app *App) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject("Portal do Cliente",
		testutil.WithProjectDates("2024-01-01", "2024-06-30"))
	require.NoError(t, app.Projects.Create(context.Background(), p))
	return p
}

// --- project ---

func TestProjectAdd_ThenList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "project", "add", "--name", "Portal", "--client", "ACME",
		"--start", "2024-01-01", "--due", "2024-06-30")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Portal")

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Portal")
}

func TestProjectAdd_JSON(t *testing.T) {
	app := testApp(t)

	var p domain.Project
	executeJSON(t, app, &p, "project", "add", "--name", "Portal")
	assert.Equal(t, "Portal", p.Name)
	assert.Equal(t, domain.ProjectNaoIniciado, p.Status)
	assert.NotEmpty(t, p.ID)
}

func TestProjectAdd_RejectsInvertedDates(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--name", "Portal", "--start", "2024-06-01", "--due", "2024-01-01")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestProjectAdd_RejectsBadDateFormat(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "add", "--name", "Portal", "--start", "01/06/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--start")
}

func TestProjectShow_ByPrefix(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)

	var detail projectDetail
	executeJSON(t, app, &detail, "project", "show", p.ID[:8])
	assert.Equal(t, p.ID, detail.Project.ID)
	assert.Empty(t, detail.Scopes)
}

func TestProjectUpdate_OnlyChangedFields(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)

	_, err := executeCmd(t, app, "project", "update", p.ID, "--status", "em_andamento")
	require.NoError(t, err)

	got, err := app.Projects.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectEmAndamento, got.Status)
	assert.Equal(t, "Portal do Cliente", got.Name)
	require.NotNil(t, got.TargetDate)
	assert.Equal(t, "2024-06-30", got.TargetDate.Format(domain.DateLayout))
}

func TestProjectRemove_UnknownIsNotFound(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "project", "remove", "nope")
	require.Error(t, err)
	assert.Equal(t, 4, ExitCode(err))
}

// --- scope and node ---

func TestScopeAdd_UnknownProjectIsParentNotFound(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "scope", "add", "--project", "missing", "--name", "Portal")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
	assert.Equal(t, 3, ExitCode(err))
}

func TestNodeAdd_BuildsChainAndTree(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)

	var scope, l1, l2 domain.Node
	executeJSON(t, app, &scope, "scope", "add", "--project", p.ID, "--name", "Portal",
		"--start", "2024-01-01", "--due", "2024-06-30")
	executeJSON(t, app, &l1, "node", "add", "--level", "1", "--parent", scope.ID, "--name", "API", "--type", "Backend")
	assert.Equal(t, "backend", l1.TypeID)
	executeJSON(t, app, &l2, "node", "add", "--level", "2", "--parent", l1.ID, "--name", "Auth")

	out, err := executeCmd(t, app, "scope", "tree", scope.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Portal")
	assert.Contains(t, out, "API")
	assert.Contains(t, out, "Auth")

	var children []domain.Node
	executeJSON(t, app, &children, "node", "children", "--level", "2", l1.ID)
	require.Len(t, children, 1)
	assert.Equal(t, "Auth", children[0].Name)
}

func TestNodeAdd_UnknownParent(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "node", "add", "--level", "3", "--parent", "ghost", "--name", "X")
	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))
}

func TestNodeAdd_UnknownType(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	scope, err := app.Hierarchy.CreateNode(context.Background(), domain.LevelScope, p.ID,
		domain.NodeInput{Name: ptr("Portal")})
	require.NoError(t, err)

	_, err = executeCmd(t, app, "node", "add", "--level", "1", "--parent", scope.ID, "--name", "X", "--type", "Marketing")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestNodeAdd_InvalidLevel(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "node", "add", "--level", "7", "--parent", "x", "--name", "X")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNodeUpdate_MergeClearsDueDate(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	scope, err := app.Hierarchy.CreateNode(context.Background(), domain.LevelScope, p.ID,
		domain.NodeInput{Name: ptr("Portal"), TargetDate: testutil.DatePtr("2024-03-01")})
	require.NoError(t, err)

	var got domain.Node
	executeJSON(t, app, &got, "node", "update", "--level", "0", scope.ID, "--clear-due", "--status", "em_andamento")
	assert.Nil(t, got.TargetDate)
	assert.Equal(t, "Portal", got.Name)
	assert.Equal(t, domain.StatusEmAndamento, got.Status)
}

func TestNodeUpdate_DateAndClearConflict(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "node", "update", "--level", "2", "any",
		"--start", "2024-01-01", "--clear-start")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestNodeShowAndRemove(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	scope, err := app.Hierarchy.CreateNode(context.Background(), domain.LevelScope, p.ID,
		domain.NodeInput{Name: ptr("Portal")})
	require.NoError(t, err)

	out, err := executeCmd(t, app, "node", "show", "--level", "0", scope.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Portal")

	_, err = executeCmd(t, app, "node", "remove", "--level", "0", scope.ID)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "node", "show", "--level", "0", scope.ID)
	assert.Equal(t, 4, ExitCode(err))
}

const importTree = `
escopo:
  nome: Portal
  filhos:
    - nome: API
      tipo: backend
      filhos:
        - nome: Auth
          filhos:
            - nome: Login
              filhos:
                - nome: Endpoint
                  status: concluido
                  horas_estimadas: 8
                  horas_trabalhadas: 6
`

func TestScopeImport_ThenSummary(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(importTree), 0o644))

	out, err := executeCmd(t, app, "scope", "import", "--project", p.ID[:8], path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Imported escopo Portal")
	assert.Contains(t, out, "5 nodes")

	var summaries []*service.ScopeSummary
	executeJSON(t, app, &summaries, "scope", "summary", "--project", p.ID)
	require.Len(t, summaries, 1)
	s := summaries[0].Summary
	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 75, s.Progress)
	assert.Equal(t, 8.0, s.EstimatedHoursTotal)
}

func TestScopeImport_InvalidFileWritesNothing(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("escopo:\n  filhos:\n    - nome: API\n"), 0o644))

	_, err := executeCmd(t, app, "scope", "import", "--project", p.ID, path)
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))

	scopes, err := app.Hierarchy.ListScopes(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, scopes)
}

func TestScopeSummary_NeedsExactlyOneTarget(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "scope", "summary")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// --- schedule ---

func addPhase(t *testing.T, app *App, projectID, phase, start, end string) *domain.ScheduleEntry {
	t.Helper()
	var e domain.ScheduleEntry
	executeJSON(t, app, &e, "schedule", "add", "--project", projectID, "--phase", phase,
		"--start", start, "--end", end, "--owner", "Ana")
	return &e
}

func TestScheduleAdd_ThenShow(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	e := addPhase(t, app, p.ID, "Discovery", "2024-01-01", "2024-01-10")
	assert.Equal(t, domain.StatusNaoIniciado, e.Status)

	var v struct {
		EffectiveStatus domain.Status `json:"status_efetivo"`
		PlannedDays     int           `json:"duracao_planejada_dias"`
	}
	executeJSON(t, app, &v, "schedule", "show", e.ID)
	assert.Equal(t, domain.StatusAtrasado, v.EffectiveStatus, "end date before fixed now")
	assert.Equal(t, 9, v.PlannedDays)
}

func TestScheduleList_FiltersByEffectiveStatus(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	late := addPhase(t, app, p.ID, "Discovery", "2024-01-01", "2024-01-10")
	addPhase(t, app, p.ID, "Build", "2024-01-11", "2024-03-31")

	var views []struct {
		Entry domain.ScheduleEntry `json:"entrada"`
	}
	executeJSON(t, app, &views, "schedule", "list", "--project", p.ID, "--status", "atrasado")
	require.Len(t, views, 1)
	assert.Equal(t, late.ID, views[0].Entry.ID)
}

func TestScheduleList_RejectsUnknownStatus(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "schedule", "list", "--status", "late")
	assert.Equal(t, 2, ExitCode(err))
}

func TestScheduleProgress_CompletesPhase(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	e := addPhase(t, app, p.ID, "Discovery", "2024-01-01", "2024-01-10")

	var got domain.ScheduleEntry
	executeJSON(t, app, &got, "schedule", "progress", e.ID, "100")
	assert.Equal(t, domain.StatusConcluido, got.Status)
	assert.Equal(t, 100, got.PercentComplete)
	require.NotNil(t, got.ActualEnd)
	assert.Equal(t, "2024-01-15", got.ActualEnd.Format(domain.DateLayout))
}

func TestScheduleProgress_RejectsOutOfRange(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	e := addPhase(t, app, p.ID, "Discovery", "2024-01-01", "2024-01-10")

	for _, pct := range []string{"101", "half"} {
		_, err := executeCmd(t, app, "schedule", "progress", e.ID, pct)
		assert.Equal(t, 2, ExitCode(err), "pct=%s", pct)
	}
}

func TestScheduleUpdate_KeepsUnsetFields(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	e := addPhase(t, app, p.ID, "Discovery", "2024-01-01", "2024-01-10")

	var got domain.ScheduleEntry
	executeJSON(t, app, &got, "schedule", "update", e.ID, "--end", "2024-01-31", "--notes", "extended")
	assert.Equal(t, "Discovery", got.Phase)
	assert.Equal(t, "Ana", got.Owner)
	assert.Equal(t, "2024-01-31", got.EndDate.Format(domain.DateLayout))
	assert.Equal(t, "extended", got.Notes)
}

func TestScheduleGanttAndSummary(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	addPhase(t, app, p.ID, "Discovery", "2024-01-01", "2024-01-10")
	addPhase(t, app, p.ID, "Build", "2024-01-11", "2024-01-31")

	out, err := executeCmd(t, app, "schedule", "gantt", "--project", p.ID, "--width", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Discovery")
	assert.Contains(t, out, "Build")

	var s struct {
		Total   int `json:"total"`
		Overdue int `json:"atrasados"`
	}
	executeJSON(t, app, &s, "schedule", "summary", "--project", p.ID)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Overdue)
}

func TestScheduleRemove(t *testing.T) {
	app := testApp(t)
	p := seedProject(t, app)
	e := addPhase(t, app, p.ID, "Discovery", "2024-01-01", "2024-01-10")

	_, err := executeCmd(t, app, "schedule", "remove", e.ID)
	require.NoError(t, err)
	_, err = executeCmd(t, app, "schedule", "show", e.ID)
	assert.Equal(t, 4, ExitCode(err))
}

// --- types ---

func TestTypesList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "types", "list")
	require.NoError(t, err)
	for _, name := range []string{"Frontend", "Backend", "DevOps", "Design", "Integração", "Testes", "Documentação"} {
		assert.Contains(t, out, name)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{domain.Validationf("bad"), 2},
		{fmt.Errorf("x: %w", domain.ErrParentNotFound), 3},
		{fmt.Errorf("x: %w", domain.ErrNotFound), 4},
		{errors.New("boom"), 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, ExitCode(tc.err), "err=%v", tc.err)
	}
}

func ptr[T any](v T) *T { return &v }
