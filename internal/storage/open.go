package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Options controls how Open configures a connection.
type Options struct {
	JournalMode   string // "wal", "delete", ...; empty keeps the SQLite default
	BusyTimeoutMS int
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{JournalMode: "wal", BusyTimeoutMS: 5000}
}

// Open creates the parent directory of path if needed, opens the database,
// applies pragmas, runs all migrations and returns a ready store that owns
// the connection. Callers close it with Close when the operation is done.
func Open(path string, opts Options) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection per store: every operation opens its own short-lived
	// store, and an in-memory database only exists on a single connection.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db, opts); err != nil {
		db.Close()
		return nil, err
	}

	if err := NewMigrationRunner(db).Run(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init store: %w", err)
	}
	store.ownsDB = true
	return store, nil
}

func applyPragmas(db *sql.DB, opts Options) error {
	var pragmas []string
	if opts.BusyTimeoutMS > 0 {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA busy_timeout = %d", opts.BusyTimeoutMS))
	}
	if mode := strings.ToUpper(strings.TrimSpace(opts.JournalMode)); mode != "" {
		switch mode {
		case "DELETE", "TRUNCATE", "PERSIST", "MEMORY", "WAL", "OFF":
		default:
			return fmt.Errorf("unsupported journal mode %q", opts.JournalMode)
		}
		pragmas = append(pragmas, "PRAGMA journal_mode = "+mode)
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}
