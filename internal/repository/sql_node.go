package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/escopo/internal/db"
	"github.com/alexanderramin/escopo/internal/domain"
	"github.com/google/uuid"
)

// SQLNodeRepo implements NodeStore for a single level. The table, parent
// column and optional columns come from the level's LevelSpec, so one type
// serves all five levels.
type SQLNodeRepo struct {
	db      db.DBTX
	spec    domain.LevelSpec
	columns []string
	selects string
}

// NewSQLNodeRepo creates a node store for level over conn.
func NewSQLNodeRepo(conn db.DBTX, level domain.Level) *SQLNodeRepo {
	spec := level.Spec()
	cols := []string{"id", spec.ParentColumn, "nome", "descricao", "status",
		"data_inicio", "data_alvo", "ordem"}
	if spec.Typed {
		cols = append(cols, "nivel1_tipo_id")
	}
	if spec.Hours {
		cols = append(cols, "horas_estimadas", "horas_trabalhadas")
	}
	cols = append(cols, "seq", "created_at", "updated_at")
	return &SQLNodeRepo{
		db:      conn,
		spec:    spec,
		columns: cols,
		selects: strings.Join(cols, ", "),
	}
}

// NodeStores holds one store per level, indexed by domain.Level.
type NodeStores [domain.MaxLevel + 1]NodeStore

// NewSQLNodeStores creates a store for every level over conn.
func NewSQLNodeStores(conn db.DBTX) NodeStores {
	var s NodeStores
	for _, l := range domain.AllLevels() {
		s[l] = NewSQLNodeRepo(conn, l)
	}
	return s
}

// At returns the store for level l.
func (s NodeStores) At(l domain.Level) NodeStore {
	return s[l]
}

func (r *SQLNodeRepo) Level() domain.Level { return r.spec.Level }

func (r *SQLNodeRepo) FindByID(ctx context.Context, id string) (*domain.Node, error) {
	query := `SELECT ` + r.selects + ` FROM ` + r.spec.Table + ` WHERE id = ?`
	n, err := r.scanNode(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %q: %w", r.spec.Name, id, ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("loading "+r.spec.Name, err)
	}
	return n, nil
}

func (r *SQLNodeRepo) FindByParent(ctx context.Context, parentID string) ([]*domain.Node, error) {
	query := `SELECT ` + r.selects + ` FROM ` + r.spec.Table +
		` WHERE ` + r.spec.ParentColumn + ` = ? ORDER BY ordem, seq`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, storageErr("listing "+r.spec.Name, err)
	}
	defer rows.Close()

	nodes := []*domain.Node{}
	for rows.Next() {
		n, err := r.scanNode(rows)
		if err != nil {
			return nil, storageErr("scanning "+r.spec.Name, err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating "+r.spec.Name, err)
	}
	return nodes, nil
}

func (r *SQLNodeRepo) Insert(ctx context.Context, n *domain.Node) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	stampTimes(&n.CreatedAt, &n.UpdatedAt)

	cols := r.columns
	placeholders := make([]string, len(cols))
	for i, c := range cols {
		if c == "seq" {
			placeholders[i] = `(SELECT COALESCE(MAX(seq), 0) + 1 FROM ` + r.spec.Table + `)`
			continue
		}
		placeholders[i] = "?"
	}
	query := `INSERT INTO ` + r.spec.Table + ` (` + r.selects + `) VALUES (` +
		strings.Join(placeholders, ", ") + `) RETURNING seq`

	if err := r.db.QueryRowContext(ctx, query, r.values(n, true)...).Scan(&n.Seq); err != nil {
		return storageErr("inserting "+r.spec.Name, err)
	}
	return nil
}

func (r *SQLNodeRepo) Update(ctx context.Context, n *domain.Node) error {
	stampTimes(&n.CreatedAt, &n.UpdatedAt)

	var sets []string
	for _, c := range r.columns {
		switch c {
		case "id", "seq", "created_at":
			continue
		}
		sets = append(sets, c+" = ?")
	}
	query := `UPDATE ` + r.spec.Table + ` SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	args := append(r.values(n, false), n.ID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return storageErr("updating "+r.spec.Name, err)
	}
	return requireAffected(res, fmt.Sprintf("%s %q", r.spec.Name, n.ID))
}

func (r *SQLNodeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+r.spec.Table+` WHERE id = ?`, id)
	if err != nil {
		return storageErr("deleting "+r.spec.Name, err)
	}
	return requireAffected(res, fmt.Sprintf("%s %q", r.spec.Name, id))
}

// values returns the column values of n in r.columns order. For inserts the
// id and created_at are included; seq is always supplied by SQL.
func (r *SQLNodeRepo) values(n *domain.Node, insert bool) []any {
	var args []any
	for _, c := range r.columns {
		switch c {
		case "id":
			if insert {
				args = append(args, n.ID)
			}
		case r.spec.ParentColumn:
			args = append(args, n.ParentID)
		case "nome":
			args = append(args, n.Name)
		case "descricao":
			args = append(args, n.Description)
		case "status":
			args = append(args, string(n.Status))
		case "data_inicio":
			args = append(args, nullableTimeToString(n.StartDate, dateLayout))
		case "data_alvo":
			args = append(args, nullableTimeToString(n.TargetDate, dateLayout))
		case "ordem":
			args = append(args, n.Order)
		case "nivel1_tipo_id":
			args = append(args, n.TypeID)
		case "horas_estimadas":
			args = append(args, nullableFloatToValue(n.EstimatedHours))
		case "horas_trabalhadas":
			args = append(args, nullableFloatToValue(n.WorkedHours))
		case "created_at":
			if insert {
				args = append(args, n.CreatedAt.UTC().Format(timestampLayout))
			}
		case "updated_at":
			args = append(args, n.UpdatedAt.UTC().Format(timestampLayout))
		}
	}
	return args
}

func (r *SQLNodeRepo) scanNode(s scanner) (*domain.Node, error) {
	n := domain.Node{Level: r.spec.Level}
	var status, createdAt, updatedAt string
	var start, target sql.NullString
	var estimated, worked sql.NullFloat64

	dest := make([]any, 0, len(r.columns))
	for _, c := range r.columns {
		switch c {
		case "id":
			dest = append(dest, &n.ID)
		case r.spec.ParentColumn:
			dest = append(dest, &n.ParentID)
		case "nome":
			dest = append(dest, &n.Name)
		case "descricao":
			dest = append(dest, &n.Description)
		case "status":
			dest = append(dest, &status)
		case "data_inicio":
			dest = append(dest, &start)
		case "data_alvo":
			dest = append(dest, &target)
		case "ordem":
			dest = append(dest, &n.Order)
		case "nivel1_tipo_id":
			dest = append(dest, &n.TypeID)
		case "horas_estimadas":
			dest = append(dest, &estimated)
		case "horas_trabalhadas":
			dest = append(dest, &worked)
		case "seq":
			dest = append(dest, &n.Seq)
		case "created_at":
			dest = append(dest, &createdAt)
		case "updated_at":
			dest = append(dest, &updatedAt)
		}
	}
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}

	n.Status = domain.Status(status)
	n.StartDate = parseNullableTime(start, dateLayout)
	n.TargetDate = parseNullableTime(target, dateLayout)
	n.EstimatedHours = nullFloatPtr(estimated)
	n.WorkedHours = nullFloatPtr(worked)

	var err error
	if n.CreatedAt, n.UpdatedAt, err = parseTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
