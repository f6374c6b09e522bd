//go:build sqlite_fts5

package storage

import _ "github.com/mattn/go-sqlite3"

// DriverName is the database/sql driver used by Open. go-sqlite3 only
// compiles FTS5 in when built with the sqlite_fts5 tag, which is also the
// tag that selects this file.
const DriverName = "sqlite3"
