package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/repository"
	"github.com/alexanderramin/escopo/internal/rollup"
)

type summaryService struct {
	hierarchy HierarchyService
	projects  repository.ProjectRepo
	types     repository.LevelTypeRepo
	observer  UseCaseObserver
}

func NewSummaryService(
	hierarchy HierarchyService,
	projects repository.ProjectRepo,
	types repository.LevelTypeRepo,
	observers ...UseCaseObserver,
) SummaryService {
	return &summaryService{
		hierarchy: hierarchy,
		projects:  projects,
		types:     types,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *summaryService) ScopeSummary(ctx context.Context, scopeID string) (summary *ScopeSummary, err error) {
	defer observe(ctx, s.observer, "scope-summary", time.Now().UTC(), map[string]any{"scope_id": scopeID}, &err)

	tree, err := s.hierarchy.GetTree(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	names, err := s.typeNames(ctx)
	if err != nil {
		return nil, err
	}
	return summarizeTree(tree, names), nil
}

func (s *summaryService) ProjectSummary(ctx context.Context, projectID string) (out []*ScopeSummary, err error) {
	fields := map[string]any{"project_id": projectID}
	defer observe(ctx, s.observer, "project-summary", time.Now().UTC(), fields, &err)

	if _, err = s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	scopes, err := s.hierarchy.ListScopes(ctx, projectID)
	if err != nil {
		return nil, err
	}
	names, err := s.typeNames(ctx)
	if err != nil {
		return nil, err
	}

	out = make([]*ScopeSummary, 0, len(scopes))
	for _, scope := range scopes {
		tree, err := s.hierarchy.GetTree(ctx, scope.ID)
		if err != nil {
			return nil, fmt.Errorf("summarizing scope %q: %w", scope.ID, err)
		}
		out = append(out, summarizeTree(tree, names))
	}
	fields["scopes"] = len(out)
	return out, nil
}

func (s *summaryService) typeNames(ctx context.Context) (map[string]string, error) {
	types, err := s.types.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading nivel1 types: %w", err)
	}
	names := make(map[string]string, len(types))
	for _, t := range types {
		names[t.ID] = t.Name
	}
	return names, nil
}

// summarizeTree rolls up the leaves of a scope, each under the type name of
// its Level1 ancestor. Unknown type ids fall back to the id itself.
func summarizeTree(tree *domain.TreeNode, typeNames map[string]string) *ScopeSummary {
	var items []rollup.Item
	for _, l1 := range tree.Children {
		category := domain.CoalesceStr(typeNames[l1.Node.TypeID], l1.Node.TypeID)
		var leaves []*domain.Node
		l1.Walk(func(tn *domain.TreeNode) {
			if tn.Node.Level == domain.Level4 {
				leaves = append(leaves, tn.Node)
			}
		})
		items = append(items, rollup.FromNodes(leaves, func(*domain.Node) string { return category })...)
	}
	return &ScopeSummary{Scope: tree.Node, Summary: rollup.Summarize(items)}
}

type levelTypeService struct {
	types repository.LevelTypeRepo
}

func NewLevelTypeService(types repository.LevelTypeRepo) LevelTypeService {
	return &levelTypeService{types: types}
}

func (s *levelTypeService) List(ctx context.Context) ([]*domain.LevelType, error) {
	return s.types.List(ctx)
}
