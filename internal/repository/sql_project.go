package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/escopo/internal/db"
	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/google/uuid"
)

const projectColumns = `id, nome, cliente, status, data_inicio, data_alvo, created_at, updated_at`

// SQLProjectRepo implements ProjectRepo.
type SQLProjectRepo struct {
	db db.DBTX
}

// NewSQLProjectRepo creates a new SQLProjectRepo.
func NewSQLProjectRepo(conn db.DBTX) *SQLProjectRepo {
	return &SQLProjectRepo{db: conn}
}

func (r *SQLProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	stampTimes(&p.CreatedAt, &p.UpdatedAt)

	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Client,
		string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.TargetDate, dateLayout),
		p.CreatedAt.UTC().Format(timestampLayout),
		p.UpdatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return storageErr("inserting project", err)
	}
	return nil
}

func (r *SQLProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	p, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("loading project", err)
	}
	return p, nil
}

func (r *SQLProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at, nome`)
	if err != nil {
		return nil, storageErr("listing projects", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, storageErr("scanning project", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating projects", err)
	}
	return projects, nil
}

func (r *SQLProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	stampTimes(&p.CreatedAt, &p.UpdatedAt)
	query := `UPDATE projects SET nome = ?, cliente = ?, status = ?, data_inicio = ?, data_alvo = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Client,
		string(p.Status),
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.TargetDate, dateLayout),
		p.UpdatedAt.UTC().Format(timestampLayout),
		p.ID,
	)
	if err != nil {
		return storageErr("updating project", err)
	}
	return requireAffected(res, fmt.Sprintf("project %q", p.ID))
}

func (r *SQLProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting project", err)
	}
	return requireAffected(res, fmt.Sprintf("project %q", id))
}

func scanProject(s scanner) (*domain.Project, error) {
	var p domain.Project
	var status, createdAt, updatedAt string
	var start, target sql.NullString

	if err := s.Scan(&p.ID, &p.Name, &p.Client, &status, &start, &target, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Status = domain.ProjectStatus(status)
	p.StartDate = parseNullableTime(start, dateLayout)
	p.TargetDate = parseNullableTime(target, dateLayout)

	var err error
	if p.CreatedAt, p.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
