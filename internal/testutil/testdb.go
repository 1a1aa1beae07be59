package testutil

import (
	"database/sql"
	"os"
	"testing"

	"github.com/alexanderramin/escopo/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewUnitOfWork(database, db.SQLite)
}

// NewPostgresTestDB connects to ESCOPO_TEST_PG_DSN and skips the test when it
// is unset. Tables are emptied before the test runs.
func NewPostgresTestDB(t *testing.T) db.DBTX {
	t.Helper()
	dsn := os.Getenv("ESCOPO_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("ESCOPO_TEST_PG_DSN not set")
	}
	database, _, err := db.Open(db.Options{Driver: db.Postgres, DSN: dsn})
	if err != nil {
		t.Fatalf("failed to open postgres: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	if _, err := database.Exec(`TRUNCATE cronograma, nivel4, nivel3, nivel2, nivel1, escopos_funcionais, projects`); err != nil {
		t.Fatalf("failed to reset postgres tables: %v", err)
	}
	return db.Postgres.Bind(database)
}
