package storage

import "database/sql"

// migrateV001 indexes rows that predate the shadow table. Databases written
// before the index existed carry events the triggers never saw.
func migrateV001(tx *sql.Tx) error {
	_, err := tx.Exec(`INSERT INTO events_fts(events_fts) VALUES ('rebuild')`)
	return err
}
