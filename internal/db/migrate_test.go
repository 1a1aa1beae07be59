package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db, SQLite))
	require.NoError(t, Migrate(db, SQLite))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM nivel1_tipos`).Scan(&n))
	assert.Equal(t, len(levelTypeSeeds), n, "seeds must not duplicate on re-run")
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"projects", "nivel1_tipos", "escopos_funcionais", "nivel1", "nivel2", "nivel3", "nivel4", "cronograma"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_escopos_funcionais_projeto",
		"idx_nivel1_escopo",
		"idx_nivel2_parent",
		"idx_nivel3_parent",
		"idx_nivel4_parent",
		"idx_cronograma_projeto",
		"idx_cronograma_inicio",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestOpenDB_ForeignKeysOnEveryPooledConnection(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "escopo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	// Hold several connections at once so the pool has to open new ones.
	var conns []*sql.Conn
	for i := 0; i < 3; i++ {
		conn, err := db.Conn(ctx)
		require.NoError(t, err)
		conns = append(conns, conn)
	}
	for i, conn := range conns {
		var fk int
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		assert.Equal(t, 1, fk, "connection %d", i)
		require.NoError(t, conn.Close())
	}
}

func TestMigrate_SeedsLevelTypes(t *testing.T) {
	db := openTestDB(t)

	var nome, cor string
	err := db.QueryRow(`SELECT nome, cor_hex FROM nivel1_tipos WHERE id = 'backend'`).Scan(&nome, &cor)
	require.NoError(t, err)
	assert.Equal(t, "Backend", nome)
	assert.NotEmpty(t, cor)
}

func TestMigrate_NodeCheckConstraints(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (id, nome, created_at, updated_at)
		VALUES ('p1', 'Portal', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO escopos_funcionais (id, projeto_id, nome, status, created_at, updated_at)
		VALUES ('e1', 'p1', 'Escopo', 'atrasado', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "derived status must be rejected by CHECK constraint")

	_, err = db.Exec(`INSERT INTO escopos_funcionais (id, projeto_id, nome, ordem, created_at, updated_at)
		VALUES ('e1', 'p1', 'Escopo', -1, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	assert.Error(t, err, "negative ordem must be rejected")

	_, err = db.Exec(`INSERT INTO escopos_funcionais (id, projeto_id, nome, created_at, updated_at)
		VALUES ('e1', 'p1', 'Escopo', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	var status string
	require.NoError(t, db.QueryRow(`SELECT status FROM escopos_funcionais WHERE id = 'e1'`).Scan(&status))
	assert.Equal(t, "planejado", status)
}

func TestMigrate_Nivel1RequiresKnownType(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (id, nome, created_at, updated_at) VALUES ('p1', 'P', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO escopos_funcionais (id, projeto_id, nome, created_at, updated_at) VALUES ('e1', 'p1', 'E', 'x', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO nivel1 (id, escopo_funcional_id, nivel1_tipo_id, nome, created_at, updated_at)
		VALUES ('n1', 'e1', 'nope', 'N', 'x', 'x')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO nivel1 (id, escopo_funcional_id, nivel1_tipo_id, nome, created_at, updated_at)
		VALUES ('n1', 'e1', 'frontend', 'N', 'x', 'x')`)
	assert.NoError(t, err)
}

func TestMigrate_CronogramaPercentRange(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO projects (id, nome, created_at, updated_at) VALUES ('p1', 'P', 'x', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO cronograma (id, projeto_id, fase, data_inicio, data_fim, percentual_concluido, created_at, updated_at)
		VALUES ('c1', 'p1', 'Fase', '2024-01-01', '2024-01-10', 101, 'x', 'x')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO cronograma (id, projeto_id, fase, data_inicio, data_fim, percentual_concluido, created_at, updated_at)
		VALUES ('c1', 'p1', 'Fase', '2024-01-01', '2024-01-10', 100, 'x', 'x')`)
	assert.NoError(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(Options{Driver: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mysql")
}

func TestOpen_PostgresRequiresDSN(t *testing.T) {
	_, _, err := Open(Options{Driver: Postgres})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DSN")
}
