package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/escopo/internal/db"
	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/google/uuid"
)

const scheduleColumns = `id, projeto_id, fase, descricao, data_inicio, data_fim,
		data_inicio_real, data_fim_real, percentual_concluido, responsavel,
		dependencias, observacoes, status, created_at, updated_at`

// SQLScheduleRepo implements ScheduleRepo over the cronograma table.
type SQLScheduleRepo struct {
	db db.DBTX
}

func NewSQLScheduleRepo(conn db.DBTX) *SQLScheduleRepo {
	return &SQLScheduleRepo{db: conn}
}

func (r *SQLScheduleRepo) Create(ctx context.Context, e *domain.ScheduleEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	stampTimes(&e.CreatedAt, &e.UpdatedAt)

	query := `INSERT INTO cronograma (` + scheduleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.ProjectID,
		e.Phase,
		e.Description,
		e.StartDate.Format(dateLayout),
		e.EndDate.Format(dateLayout),
		nullableTimeToString(e.ActualStart, dateLayout),
		nullableTimeToString(e.ActualEnd, dateLayout),
		e.PercentComplete,
		e.Owner,
		e.Dependencies,
		e.Notes,
		string(e.Status),
		e.CreatedAt.UTC().Format(timestampLayout),
		e.UpdatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return storageErr("inserting schedule entry", err)
	}
	return nil
}

func (r *SQLScheduleRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM cronograma WHERE id = ?`
	e, err := scanScheduleEntry(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("schedule entry %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("loading schedule entry", err)
	}
	return e, nil
}

func (r *SQLScheduleRepo) List(ctx context.Context, projectID string) ([]*domain.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM cronograma`
	var args []any
	if projectID != "" {
		query += ` WHERE projeto_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY data_inicio, created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("listing schedule entries", err)
	}
	defer rows.Close()

	entries := []*domain.ScheduleEntry{}
	for rows.Next() {
		e, err := scanScheduleEntry(rows)
		if err != nil {
			return nil, storageErr("scanning schedule entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating schedule entries", err)
	}
	return entries, nil
}

func (r *SQLScheduleRepo) Update(ctx context.Context, e *domain.ScheduleEntry) error {
	stampTimes(&e.CreatedAt, &e.UpdatedAt)
	query := `UPDATE cronograma SET projeto_id = ?, fase = ?, descricao = ?, data_inicio = ?, data_fim = ?,
		data_inicio_real = ?, data_fim_real = ?, percentual_concluido = ?, responsavel = ?,
		dependencias = ?, observacoes = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.ProjectID,
		e.Phase,
		e.Description,
		e.StartDate.Format(dateLayout),
		e.EndDate.Format(dateLayout),
		nullableTimeToString(e.ActualStart, dateLayout),
		nullableTimeToString(e.ActualEnd, dateLayout),
		e.PercentComplete,
		e.Owner,
		e.Dependencies,
		e.Notes,
		string(e.Status),
		e.UpdatedAt.UTC().Format(timestampLayout),
		e.ID,
	)
	if err != nil {
		return storageErr("updating schedule entry", err)
	}
	return requireAffected(res, fmt.Sprintf("schedule entry %q", e.ID))
}

func (r *SQLScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cronograma WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting schedule entry", err)
	}
	return requireAffected(res, fmt.Sprintf("schedule entry %q", id))
}

func scanScheduleEntry(s scanner) (*domain.ScheduleEntry, error) {
	var e domain.ScheduleEntry
	var start, end, status, createdAt, updatedAt string
	var actualStart, actualEnd sql.NullString

	err := s.Scan(
		&e.ID, &e.ProjectID, &e.Phase, &e.Description, &start, &end,
		&actualStart, &actualEnd, &e.PercentComplete, &e.Owner,
		&e.Dependencies, &e.Notes, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if e.StartDate, err = time.Parse(dateLayout, start); err != nil {
		return nil, fmt.Errorf("parsing data_inicio: %w", err)
	}
	if e.EndDate, err = time.Parse(dateLayout, end); err != nil {
		return nil, fmt.Errorf("parsing data_fim: %w", err)
	}
	e.ActualStart = parseNullableTime(actualStart, dateLayout)
	e.ActualEnd = parseNullableTime(actualEnd, dateLayout)
	e.Status = domain.Status(status)

	if e.CreatedAt, e.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
