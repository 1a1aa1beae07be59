package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/escopo/internal/db"
	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/importer"
	"github.com/alexanderramin/escopo/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	opts     HierarchyOptions
	observer UseCaseObserver
}

// NewImportService creates scopes from tree files. Every node is created
// through a HierarchyService bound to the import transaction, so a failure
// anywhere leaves nothing behind.
func NewImportService(uow db.UnitOfWork, opts HierarchyOptions, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		opts:     opts.withDefaults(),
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportTree(ctx context.Context, projectID, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadTreeSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading tree file: %w", err)
	}
	return s.ImportTreeFromSchema(ctx, projectID, schema)
}

func (s *importService) ImportTreeFromSchema(ctx context.Context, projectID string, schema *importer.TreeSchema) (result *ImportResult, err error) {
	fields := map[string]any{"project_id": projectID, "scope": schema.Scope.Name}
	defer observe(ctx, s.observer, "import-tree", time.Now().UTC(), fields, &err)

	if errs := importer.ValidateTreeSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	result = &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		hierarchy := NewHierarchyService(
			repository.NewSQLNodeStores(tx),
			repository.NewSQLProjectRepo(tx),
			repository.NewSQLLevelTypeRepo(tx),
			s.opts,
		)
		scope, err := s.createNode(ctx, hierarchy, &schema.Scope, domain.LevelScope, projectID, "escopo", result)
		if err != nil {
			return err
		}
		result.Scope = scope
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["node_count"] = result.NodeCount
	return result, nil
}

func (s *importService) createNode(
	ctx context.Context,
	hierarchy HierarchyService,
	n *importer.NodeImport,
	level domain.Level,
	parentID, path string,
	result *ImportResult,
) (*domain.Node, error) {
	in, err := importer.ToInput(n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	node, err := hierarchy.CreateNode(ctx, level, parentID, in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	result.NodeCount++
	result.LevelCount[level]++

	child, ok := level.Child()
	if !ok {
		return node, nil
	}
	for i := range n.Children {
		childPath := fmt.Sprintf("%s.filhos[%d]", path, i)
		if _, err := s.createNode(ctx, hierarchy, &n.Children[i], child, node.ID, childPath, result); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%w: tree file has %d problems:%s", domain.ErrValidation, len(errs), b.String())
}
