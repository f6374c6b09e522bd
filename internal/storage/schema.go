package storage

import (
	"database/sql"
	"fmt"
)

// ensureSchema creates every table, trigger and index the store relies on.
// It runs on each open, so an object dropped by hand or by another tool is
// recreated the next time the database is opened.
func ensureSchema(db *sql.DB) error {
	required := []string{
		// ── Tables ──────────────────────────────────────────────

		`CREATE TABLE IF NOT EXISTS events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			app       TEXT NOT NULL,
			title     TEXT NOT NULL,
			tags      TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS config (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// ── Full-text shadow index ─────────────────────────────

		`CREATE VIRTUAL TABLE IF NOT EXISTS events_fts USING fts5(
			app,
			title,
			content='events',
			content_rowid='id'
		)`,
	}

	for _, stmt := range required {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	// A failure here after the tables exist means the object is already
	// there under an older definition.
	benign := []string{
		// ── Triggers ────────────────────────────────────────────

		`CREATE TRIGGER IF NOT EXISTS events_ai AFTER INSERT ON events BEGIN
			INSERT INTO events_fts(rowid, app, title) VALUES (new.id, new.app, new.title);
		END`,

		// FTS5 external-content tables locate postings by the old values,
		// so a delete has to supply them.
		`CREATE TRIGGER IF NOT EXISTS events_ad AFTER DELETE ON events BEGIN
			INSERT INTO events_fts(events_fts, rowid, app, title) VALUES ('delete', old.id, old.app, old.title);
		END`,

		`CREATE TRIGGER IF NOT EXISTS events_au AFTER UPDATE ON events BEGIN
			INSERT INTO events_fts(events_fts, rowid, app, title) VALUES ('delete', old.id, old.app, old.title);
			INSERT INTO events_fts(rowid, app, title) VALUES (new.id, new.app, new.title);
		END`,

		// ── Indexes ────────────────────────────────────────────

		`CREATE INDEX IF NOT EXISTS idx_timestamp ON events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_app       ON events(app)`,
	}

	for _, stmt := range benign {
		db.Exec(stmt) //nolint:errcheck
	}

	return nil
}
