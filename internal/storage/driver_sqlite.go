//go:build !sqlite_fts5

package storage

import _ "modernc.org/sqlite"

// DriverName is the database/sql driver used by Open. The pure-Go driver
// ships with FTS5 compiled in.
const DriverName = "sqlite"
