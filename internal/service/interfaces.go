package service

import (
	"context"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/importer"
	"github.com/alexanderramin/escopo/internal/rollup"
	"github.com/alexanderramin/escopo/internal/scheduler"
)

// HierarchyService manages the functional-scope tree. Level-0 nodes hang off a
// project; every other level hangs off the level above it.
type HierarchyService interface {
	CreateNode(ctx context.Context, level domain.Level, parentID string, in domain.NodeInput) (*domain.Node, error)
	UpdateNode(ctx context.Context, level domain.Level, id string, in domain.NodeInput) (*domain.Node, error)
	DeleteNode(ctx context.Context, level domain.Level, id string) error
	GetNode(ctx context.Context, level domain.Level, id string) (*domain.Node, error)
	// ListChildren returns the children of parentID at level, ordered as in GetTree.
	ListChildren(ctx context.Context, level domain.Level, parentID string) ([]*domain.Node, error)
	ListScopes(ctx context.Context, projectID string) ([]*domain.Node, error)
	GetTree(ctx context.Context, scopeID string) (*domain.TreeNode, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// ScheduleFilter narrows a schedule listing. Status matches the effective
// status, so atrasado is a valid filter value.
type ScheduleFilter struct {
	ProjectID string
	Status    domain.Status
}

type ScheduleService interface {
	Create(ctx context.Context, e *domain.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*scheduler.EntryView, error)
	List(ctx context.Context, filter ScheduleFilter) ([]scheduler.EntryView, error)
	Update(ctx context.Context, e *domain.ScheduleEntry) error
	UpdateProgress(ctx context.Context, id string, pct int) (*domain.ScheduleEntry, error)
	Delete(ctx context.Context, id string) error
	Gantt(ctx context.Context, projectID string) ([]scheduler.GanttRecord, error)
	Summary(ctx context.Context, projectID string) (*scheduler.ScheduleSummary, error)
}

// ScopeSummary is the rollup of one functional scope's leaves, grouped by the
// name of the Level1 type each leaf descends from.
type ScopeSummary struct {
	Scope   *domain.Node   `json:"escopo"`
	Summary rollup.Summary `json:"resumo"`
}

type SummaryService interface {
	ScopeSummary(ctx context.Context, scopeID string) (*ScopeSummary, error)
	ProjectSummary(ctx context.Context, projectID string) ([]*ScopeSummary, error)
}

type LevelTypeService interface {
	List(ctx context.Context) ([]*domain.LevelType, error)
}

// ImportResult holds the outcome of a tree import.
type ImportResult struct {
	Scope      *domain.Node             `json:"escopo"`
	NodeCount  int                      `json:"total_nos"`
	LevelCount [domain.MaxLevel + 1]int `json:"por_nivel"`
}

type ImportService interface {
	ImportTree(ctx context.Context, projectID, filePath string) (*ImportResult, error)
	ImportTreeFromSchema(ctx context.Context, projectID string, schema *importer.TreeSchema) (*ImportResult, error)
}
