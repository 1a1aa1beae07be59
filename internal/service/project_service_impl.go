package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, now func() time.Time, observers ...UseCaseObserver) ProjectService {
	if now == nil {
		now = time.Now
	}
	return &projectService{projects: projects, now: now, observer: useCaseObserverOrNoop(observers)}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) (err error) {
	fields := map[string]any{"name": p.Name}
	defer observe(ctx, s.observer, "create-project", time.Now().UTC(), fields, &err)

	if p.Status == "" {
		p.Status = domain.ProjectNaoIniciado
	}
	if err = p.Validate(); err != nil {
		return err
	}
	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err = s.projects.Create(ctx, p); err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	fields["id"] = p.ID
	return nil
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) (err error) {
	defer observe(ctx, s.observer, "update-project", time.Now().UTC(), map[string]any{"id": p.ID}, &err)

	if err = p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = s.now().UTC()
	return s.projects.Update(ctx, p)
}

// Delete removes the project. Its scopes and schedule go with it through the
// storage foreign keys.
func (s *projectService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-project", time.Now().UTC(), map[string]any{"id": id}, &err)
	return s.projects.Delete(ctx, id)
}
