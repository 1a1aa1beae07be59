package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Options selects the storage backend.
type Options struct {
	Driver Dialect
	// Path is the SQLite file, or ":memory:".
	Path string
	// DSN is the Postgres connection string.
	DSN string
}

// Open connects to the configured backend and runs migrations.
// SQLite databases get WAL mode and foreign key enforcement.
func Open(opts Options) (*sql.DB, Dialect, error) {
	switch opts.Driver {
	case SQLite, "":
		database, err := OpenDB(opts.Path)
		return database, SQLite, err
	case Postgres:
		database, err := openPostgres(opts.DSN)
		return database, Postgres, err
	default:
		return nil, "", fmt.Errorf("unsupported database driver %q", opts.Driver)
	}
}

// sqlitePragmas is applied by the driver to each new connection.
const sqlitePragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database.
// Sets WAL mode. Foreign keys and the busy timeout are DSN pragmas so every
// pooled connection gets them.
// Runs migrations automatically.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+sqlitePragmas)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if err := Migrate(db, SQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

func openPostgres(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres driver requires a DSN")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := Migrate(db, Postgres); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}
