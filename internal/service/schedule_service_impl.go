package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/alexanderramin/escopo/internal/repository"
	"github.com/alexanderramin/escopo/internal/scheduler"
)

type scheduleService struct {
	entries  repository.ScheduleRepo
	projects repository.ProjectRepo
	now      func() time.Time
	observer UseCaseObserver
}

func NewScheduleService(
	entries repository.ScheduleRepo,
	projects repository.ProjectRepo,
	now func() time.Time,
	observers ...UseCaseObserver,
) ScheduleService {
	if now == nil {
		now = time.Now
	}
	return &scheduleService{
		entries:  entries,
		projects: projects,
		now:      now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scheduleService) Create(ctx context.Context, e *domain.ScheduleEntry) (err error) {
	fields := map[string]any{"project_id": e.ProjectID, "phase": e.Phase}
	defer observe(ctx, s.observer, "create-schedule-entry", time.Now().UTC(), fields, &err)

	if e.Status == "" {
		e.Status = domain.StatusNaoIniciado
	}
	if err = e.Validate(); err != nil {
		return err
	}
	if err = s.requireProject(ctx, e.ProjectID); err != nil {
		return err
	}
	now := s.now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now
	if err = s.entries.Create(ctx, e); err != nil {
		return fmt.Errorf("creating schedule entry: %w", err)
	}
	fields["id"] = e.ID
	return nil
}

func (s *scheduleService) GetByID(ctx context.Context, id string) (*scheduler.EntryView, error) {
	e, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := scheduler.Annotate([]*domain.ScheduleEntry{e}, s.now())[0]
	return &view, nil
}

func (s *scheduleService) List(ctx context.Context, filter ScheduleFilter) ([]scheduler.EntryView, error) {
	if filter.Status != "" && filter.Status != domain.StatusAtrasado && !domain.ValidScheduleStatuses[filter.Status] {
		return nil, domain.Validationf("invalid status filter %q", filter.Status)
	}
	entries, err := s.entries.List(ctx, filter.ProjectID)
	if err != nil {
		return nil, err
	}
	views := scheduler.Annotate(entries, s.now())
	if filter.Status != "" {
		views = scheduler.FilterByStatus(views, filter.Status)
	}
	return views, nil
}

// Update replaces the stored entry. CreatedAt is carried over from storage.
func (s *scheduleService) Update(ctx context.Context, e *domain.ScheduleEntry) (err error) {
	defer observe(ctx, s.observer, "update-schedule-entry", time.Now().UTC(), map[string]any{"id": e.ID}, &err)

	current, err := s.entries.GetByID(ctx, e.ID)
	if err != nil {
		return err
	}
	if err = e.Validate(); err != nil {
		return err
	}
	if e.ProjectID != current.ProjectID {
		if err = s.requireProject(ctx, e.ProjectID); err != nil {
			return err
		}
	}
	e.CreatedAt = current.CreatedAt
	e.UpdatedAt = s.now().UTC()
	return s.entries.Update(ctx, e)
}

func (s *scheduleService) UpdateProgress(ctx context.Context, id string, pct int) (entry *domain.ScheduleEntry, err error) {
	fields := map[string]any{"id": id, "percent": pct}
	defer observe(ctx, s.observer, "update-schedule-progress", time.Now().UTC(), fields, &err)

	entry, err = s.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = entry.ApplyProgress(pct, s.now().UTC()); err != nil {
		return nil, err
	}
	if err = entry.Validate(); err != nil {
		return nil, err
	}
	if err = s.entries.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("saving progress: %w", err)
	}
	fields["status"] = string(entry.Status)
	return entry, nil
}

func (s *scheduleService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-schedule-entry", time.Now().UTC(), map[string]any{"id": id}, &err)
	return s.entries.Delete(ctx, id)
}

// Gantt projects a project's schedule, earliest start first.
func (s *scheduleService) Gantt(ctx context.Context, projectID string) ([]scheduler.GanttRecord, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	entries, err := s.entries.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return scheduler.ProjectGantt(entries, s.now()), nil
}

func (s *scheduleService) Summary(ctx context.Context, projectID string) (*scheduler.ScheduleSummary, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	entries, err := s.entries.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	summary := scheduler.SummarizeSchedule(entries, s.now())
	return &summary, nil
}

func (s *scheduleService) requireProject(ctx context.Context, projectID string) error {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return parentErr("projeto", projectID, err)
	}
	return nil
}
