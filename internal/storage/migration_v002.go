package storage

import (
	"database/sql"
	"strings"
)

// migrateV002 adds the tags column to events tables created before it
// existed. Tables created by v1 already have it, so "duplicate column" is
// the expected outcome on fresh databases and is not an error.
func migrateV002(tx *sql.Tx) error {
	_, err := tx.Exec(`ALTER TABLE events ADD COLUMN tags TEXT`)
	if err != nil && !isDuplicateColumn(err) {
		return err
	}
	return nil
}

func isDuplicateColumn(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate column")
}
