package repository

import (
	"context"

	"github.com/alexanderramin/escopo/internal/domain"
)

// NodeStore persists the nodes of one hierarchy level. Missing ids surface
// as ErrNotFound.
type NodeStore interface {
	Level() domain.Level
	FindByID(ctx context.Context, id string) (*domain.Node, error)
	// FindByParent returns children ordered by ordem, then insertion order.
	FindByParent(ctx context.Context, parentID string) ([]*domain.Node, error)
	// Insert assigns ID (when empty) and Seq, then stores n.
	Insert(ctx context.Context, n *domain.Node) error
	Update(ctx context.Context, n *domain.Node) error
	Delete(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// LevelTypeRepo reads the Level1 type catalog.
type LevelTypeRepo interface {
	TypeExists(ctx context.Context, id string) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.LevelType, error)
	List(ctx context.Context) ([]*domain.LevelType, error)
}

type ScheduleRepo interface {
	Create(ctx context.Context, e *domain.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error)
	// List returns entries ordered by data_inicio. An empty projectID lists all.
	List(ctx context.Context, projectID string) ([]*domain.ScheduleEntry, error)
	Update(ctx context.Context, e *domain.ScheduleEntry) error
	Delete(ctx context.Context, id string) error
}
