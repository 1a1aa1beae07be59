package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/escopo/internal/db"
	"github.com/alexanderramin/escopo/internal/domain"
)

// SQLLevelTypeRepo reads the nivel1_tipos catalog seeded by migrations.
type SQLLevelTypeRepo struct {
	db db.DBTX
}

func NewSQLLevelTypeRepo(conn db.DBTX) *SQLLevelTypeRepo {
	return &SQLLevelTypeRepo{db: conn}
}

func (r *SQLLevelTypeRepo) TypeExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM nivel1_tipos WHERE id = ?`, id).Scan(&n)
	if err != nil {
		return false, storageErr("checking nivel1 type", err)
	}
	return n > 0, nil
}

func (r *SQLLevelTypeRepo) GetByID(ctx context.Context, id string) (*domain.LevelType, error) {
	var t domain.LevelType
	err := r.db.QueryRowContext(ctx,
		`SELECT id, nome, descricao, cor_hex, icon_name FROM nivel1_tipos WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &t.Description, &t.ColorHex, &t.IconName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("nivel1 type %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, storageErr("loading nivel1 type", err)
	}
	return &t, nil
}

func (r *SQLLevelTypeRepo) List(ctx context.Context) ([]*domain.LevelType, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, nome, descricao, cor_hex, icon_name FROM nivel1_tipos ORDER BY nome`)
	if err != nil {
		return nil, storageErr("listing nivel1 types", err)
	}
	defer rows.Close()

	var types []*domain.LevelType
	for rows.Next() {
		var t domain.LevelType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.ColorHex, &t.IconName); err != nil {
			return nil, storageErr("scanning nivel1 type", err)
		}
		types = append(types, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating nivel1 types", err)
	}
	return types, nil
}
