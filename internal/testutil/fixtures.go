package testutil

import (
	"time"

	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/google/uuid"
)

// Date parses a YYYY-MM-DD literal and panics on malformed input.
func Date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// DatePtr is Date returning a pointer.
func DatePtr(s string) *time.Time {
	t := Date(s)
	return &t
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectDates(start, target string) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = DatePtr(start)
		p.TargetDate = DatePtr(target)
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithClient(c string) ProjectOption {
	return func(p *domain.Project) {
		p.Client = c
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    domain.ProjectEmAndamento,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Node options
type NodeOption func(*domain.Node)

// WithDates sets the node range; an empty string leaves that bound absent.
func WithDates(start, target string) NodeOption {
	return func(n *domain.Node) {
		if start != "" {
			n.StartDate = DatePtr(start)
		}
		if target != "" {
			n.TargetDate = DatePtr(target)
		}
	}
}

func WithOrder(i int) NodeOption {
	return func(n *domain.Node) {
		n.Order = i
	}
}

func WithStatus(s domain.Status) NodeOption {
	return func(n *domain.Node) {
		n.Status = s
	}
}

func WithTypeID(id string) NodeOption {
	return func(n *domain.Node) {
		n.TypeID = id
	}
}

func WithHours(estimated, worked float64) NodeOption {
	return func(n *domain.Node) {
		n.EstimatedHours = &estimated
		n.WorkedHours = &worked
	}
}

// NewTestNode builds a valid node for level. Level1 nodes default to the
// seeded "backend" type.
func NewTestNode(level domain.Level, parentID, name string, opts ...NodeOption) *domain.Node {
	now := time.Now().UTC().Truncate(time.Second)
	n := &domain.Node{
		Level:     level,
		ParentID:  parentID,
		Name:      name,
		Status:    domain.StatusPlanejado,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if level.Spec().Typed {
		n.TypeID = "backend"
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Schedule options
type ScheduleOption func(*domain.ScheduleEntry)

func WithPercent(pct int) ScheduleOption {
	return func(e *domain.ScheduleEntry) {
		e.PercentComplete = pct
	}
}

func WithScheduleStatus(s domain.Status) ScheduleOption {
	return func(e *domain.ScheduleEntry) {
		e.Status = s
	}
}

func WithOwner(o string) ScheduleOption {
	return func(e *domain.ScheduleEntry) {
		e.Owner = o
	}
}

func WithDependencies(deps string) ScheduleOption {
	return func(e *domain.ScheduleEntry) {
		e.Dependencies = deps
	}
}

func WithActualDates(start, end string) ScheduleOption {
	return func(e *domain.ScheduleEntry) {
		if start != "" {
			e.ActualStart = DatePtr(start)
		}
		if end != "" {
			e.ActualEnd = DatePtr(end)
		}
	}
}

func NewTestScheduleEntry(projectID, phase, start, end string, opts ...ScheduleOption) *domain.ScheduleEntry {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.ScheduleEntry{
		ProjectID: projectID,
		Phase:     phase,
		StartDate: Date(start),
		EndDate:   Date(end),
		Status:    domain.StatusNaoIniciado,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
