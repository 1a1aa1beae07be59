package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/repository"
)

// HierarchyOptions configures a HierarchyService. Zero values select replace
// updates and the wall clock.
type HierarchyOptions struct {
	UpdateMode domain.UpdateMode
	Now        func() time.Time
}

func (o HierarchyOptions) withDefaults() HierarchyOptions {
	if o.UpdateMode == "" {
		o.UpdateMode = domain.UpdateReplace
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type hierarchyService struct {
	stores   repository.NodeStores
	projects repository.ProjectRepo
	types    repository.LevelTypeRepo
	mode     domain.UpdateMode
	now      func() time.Time
	observer UseCaseObserver
}

func NewHierarchyService(
	stores repository.NodeStores,
	projects repository.ProjectRepo,
	types repository.LevelTypeRepo,
	opts HierarchyOptions,
	observers ...UseCaseObserver,
) HierarchyService {
	opts = opts.withDefaults()
	return &hierarchyService{
		stores:   stores,
		projects: projects,
		types:    types,
		mode:     opts.UpdateMode,
		now:      opts.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *hierarchyService) CreateNode(ctx context.Context, level domain.Level, parentID string, in domain.NodeInput) (node *domain.Node, err error) {
	fields := map[string]any{"level": level.String(), "parent_id": parentID}
	defer observe(ctx, s.observer, "create-node", time.Now().UTC(), fields, &err)

	store, err := s.store(level)
	if err != nil {
		return nil, err
	}
	parentStart, parentEnd, err := s.parentRange(ctx, level, parentID)
	if err != nil {
		return nil, err
	}

	n := domain.NewNode(level, parentID, in)
	if err = s.validate(ctx, n, parentStart, parentEnd); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	n.CreatedAt, n.UpdatedAt = now, now
	if err = store.Insert(ctx, n); err != nil {
		return nil, fmt.Errorf("creating %s: %w", level, err)
	}
	fields["id"] = n.ID
	return n, nil
}

func (s *hierarchyService) UpdateNode(ctx context.Context, level domain.Level, id string, in domain.NodeInput) (node *domain.Node, err error) {
	fields := map[string]any{"level": level.String(), "id": id, "mode": string(s.mode)}
	defer observe(ctx, s.observer, "update-node", time.Now().UTC(), fields, &err)

	store, err := s.store(level)
	if err != nil {
		return nil, err
	}
	current, err := store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := in.Apply(current, s.mode)

	var parentStart, parentEnd *time.Time
	if domain.DatesChanged(current, next) {
		fields["dates_changed"] = true
		parentStart, parentEnd, err = s.parentRange(ctx, level, current.ParentID)
		if err != nil {
			return nil, err
		}
	}
	if err = s.validate(ctx, next, parentStart, parentEnd); err != nil {
		return nil, err
	}

	next.UpdatedAt = s.now().UTC()
	if err = store.Update(ctx, next); err != nil {
		return nil, fmt.Errorf("updating %s: %w", level, err)
	}
	return next, nil
}

func (s *hierarchyService) DeleteNode(ctx context.Context, level domain.Level, id string) (err error) {
	defer observe(ctx, s.observer, "delete-node", time.Now().UTC(), map[string]any{"level": level.String(), "id": id}, &err)

	store, err := s.store(level)
	if err != nil {
		return err
	}
	return store.Delete(ctx, id)
}

func (s *hierarchyService) GetNode(ctx context.Context, level domain.Level, id string) (*domain.Node, error) {
	store, err := s.store(level)
	if err != nil {
		return nil, err
	}
	return store.FindByID(ctx, id)
}

func (s *hierarchyService) ListChildren(ctx context.Context, level domain.Level, parentID string) ([]*domain.Node, error) {
	store, err := s.store(level)
	if err != nil {
		return nil, err
	}
	nodes, err := store.FindByParent(ctx, parentID)
	if err != nil {
		return nil, err
	}
	sortByOrder(nodes)
	return nodes, nil
}

func (s *hierarchyService) ListScopes(ctx context.Context, projectID string) ([]*domain.Node, error) {
	return s.ListChildren(ctx, domain.LevelScope, projectID)
}

func (s *hierarchyService) GetTree(ctx context.Context, scopeID string) (tree *domain.TreeNode, err error) {
	fields := map[string]any{"scope_id": scopeID}
	defer observe(ctx, s.observer, "get-tree", time.Now().UTC(), fields, &err)

	root, err := s.stores.At(domain.LevelScope).FindByID(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	tree = &domain.TreeNode{Node: root}
	count := 1
	if err = s.fillChildren(ctx, tree, &count); err != nil {
		return nil, err
	}
	fields["node_count"] = count
	return tree, nil
}

func (s *hierarchyService) fillChildren(ctx context.Context, parent *domain.TreeNode, count *int) error {
	parent.Children = []*domain.TreeNode{}
	level, ok := parent.Node.Level.Child()
	if !ok {
		return nil
	}
	nodes, err := s.ListChildren(ctx, level, parent.Node.ID)
	if err != nil {
		return fmt.Errorf("loading children of %s %q: %w", parent.Node.Level, parent.Node.ID, err)
	}
	for _, n := range nodes {
		child := &domain.TreeNode{Node: n}
		*count++
		if err := s.fillChildren(ctx, child, count); err != nil {
			return err
		}
		parent.Children = append(parent.Children, child)
	}
	return nil
}

func (s *hierarchyService) store(level domain.Level) (repository.NodeStore, error) {
	if !level.Valid() {
		return nil, domain.Validationf("unknown level %d", int(level))
	}
	return s.stores.At(level), nil
}

// parentRange resolves the parent of a node at level and returns the range a
// child must nest in. Only levels 2 and below are held to their parent's
// range; scopes and Level1 nodes only need the parent to exist.
func (s *hierarchyService) parentRange(ctx context.Context, level domain.Level, parentID string) (start, end *time.Time, err error) {
	if level == domain.LevelScope {
		if _, err := s.projects.GetByID(ctx, parentID); err != nil {
			return nil, nil, parentErr("projeto", parentID, err)
		}
		return nil, nil, nil
	}

	parentLevel := level - 1
	parent, err := s.stores.At(parentLevel).FindByID(ctx, parentID)
	if err != nil {
		return nil, nil, parentErr(parentLevel.String(), parentID, err)
	}
	if level < domain.Level2 {
		return nil, nil, nil
	}
	return parent.StartDate, parent.TargetDate, nil
}

func (s *hierarchyService) validate(ctx context.Context, n *domain.Node, parentStart, parentEnd *time.Time) error {
	if err := n.Validate(); err != nil {
		return err
	}
	if err := domain.ValidateRange(n.StartDate, n.TargetDate, parentStart, parentEnd); err != nil {
		return err
	}
	if !n.Level.Spec().Typed {
		return nil
	}
	exists, err := s.types.TypeExists(ctx, n.TypeID)
	if err != nil {
		return fmt.Errorf("checking nivel1_tipo_id: %w", err)
	}
	if !exists {
		return domain.Validationf("unknown nivel1_tipo_id %q", n.TypeID)
	}
	return nil
}

// parentErr turns a failed parent lookup into ErrParentNotFound so it is never
// mistaken for a missing target.
func parentErr(what, id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("%s %q: %w", what, id, domain.ErrParentNotFound)
	}
	return fmt.Errorf("loading %s %q: %w", what, id, err)
}

// sortByOrder orders nodes by ordem, keeping insertion order among ties.
func sortByOrder(nodes []*domain.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Order < nodes[j].Order
	})
}
