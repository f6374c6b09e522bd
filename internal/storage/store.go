package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const eventColumns = `id, timestamp, app, title, tags`

// SQLiteStore is the event store backed by a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	ownsDB bool

	// Prepared statements
	insertEvent *sql.Stmt
	getEvent    *sql.Stmt
	latestEvent *sql.Stmt
	setTag      *sql.Stmt
	deleteEvent *sql.Stmt
}

// NewSQLiteStore creates a store from an already-opened and migrated database.
// The *sql.DB stays owned by the caller.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		s.Close()
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertEvent, err = s.db.Prepare(`
		INSERT INTO events (timestamp, app, title) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getEvent, err = s.db.Prepare(`SELECT ` + eventColumns + ` FROM events WHERE id = ?`)
	if err != nil {
		return err
	}

	s.latestEvent, err = s.db.Prepare(`SELECT ` + eventColumns + ` FROM events ORDER BY id DESC LIMIT 1`)
	if err != nil {
		return err
	}

	s.setTag, err = s.db.Prepare(`UPDATE events SET tags = ? WHERE id = ?`)
	if err != nil {
		return err
	}

	s.deleteEvent, err = s.db.Prepare(`DELETE FROM events WHERE id = ?`)
	if err != nil {
		return err
	}

	return nil
}

// DB exposes the underlying connection pool.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// AddEvent appends an event. ID is assigned by the store; a zero Timestamp
// is replaced with the current instant. The stored timestamp is truncated
// to whole seconds, and e.Timestamp is updated to match.
func (s *SQLiteStore) AddEvent(ctx context.Context, e *Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	e.Timestamp = e.Timestamp.UTC().Truncate(time.Second)

	res, err := s.insertEvent.ExecContext(ctx, FormatTimestamp(e.Timestamp), e.App, e.Title)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read event id: %w", err)
	}
	e.ID = id
	e.Tags = ""
	e.HasTags = false
	return nil
}

// GetEvent retrieves a single event by id.
func (s *SQLiteStore) GetEvent(ctx context.Context, id int64) (*Event, error) {
	e, err := scanEvent(s.getEvent.QueryRowContext(ctx, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

// LatestEvent returns the most recently inserted event, or ErrNotFound on
// an empty store.
func (s *SQLiteStore) LatestEvent(ctx context.Context) (*Event, error) {
	e, err := scanEvent(s.latestEvent.QueryRowContext(ctx))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("latest event: %w", err)
	}
	return e, nil
}

// LatestMatching returns the id of the newest event whose app or title
// contains substr, ignoring ASCII case.
func (s *SQLiteStore) LatestMatching(ctx context.Context, substr string) (int64, bool, error) {
	pattern := "%" + escapeLike(substr) + "%"

	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM events
		WHERE app LIKE ? ESCAPE '\' OR title LIKE ? ESCAPE '\'
		ORDER BY id DESC
		LIMIT 1
	`, pattern, pattern).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find anchor: %w", err)
	}
	return id, true, nil
}

// EventsAfter returns up to limit events with id strictly greater than id,
// oldest first.
func (s *SQLiteStore) EventsAfter(ctx context.Context, id int64, limit int) ([]Event, error) {
	return s.scanEvents(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE id > ?
		ORDER BY id ASC
		LIMIT ?
	`, id, limit)
}

// EventsInRange returns up to limit events inside r, newest first.
func (s *SQLiteStore) EventsInRange(ctx context.Context, r Range, limit int) ([]Event, error) {
	return s.queryRange(ctx, r, "DESC", limit)
}

// Timeline returns every event inside r, oldest first.
func (s *SQLiteStore) Timeline(ctx context.Context, r Range) ([]Event, error) {
	return s.queryRange(ctx, r, "ASC", 0)
}

func (s *SQLiteStore) queryRange(ctx context.Context, r Range, order string, limit int) ([]Event, error) {
	var clauses []string
	var args []interface{}

	if !r.Start.IsZero() {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, FormatTimestamp(r.Start))
	}
	if !r.End.IsZero() {
		clauses = append(clauses, "timestamp <= ?")
		args = append(args, FormatTimestamp(r.End))
	}

	q := `SELECT ` + eventColumns + ` FROM events`
	if len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " ORDER BY id " + order
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	return s.scanEvents(ctx, q, args...)
}

// MatchText runs an FTS5 MATCH expression against app and title and returns
// up to limit events, newest first.
func (s *SQLiteStore) MatchText(ctx context.Context, expr string, limit int) ([]Event, error) {
	if strings.TrimSpace(expr) == "" {
		return []Event{}, nil
	}
	return s.scanEvents(ctx, `
		SELECT e.id, e.timestamp, e.app, e.title, e.tags
		FROM events e
		JOIN events_fts ON events_fts.rowid = e.id
		WHERE events_fts MATCH ?
		ORDER BY e.id DESC
		LIMIT ?
	`, expr, limit)
}

// SetTag overwrites the tag of an event.
func (s *SQLiteStore) SetTag(ctx context.Context, id int64, tag string) error {
	res, err := s.setTag.ExecContext(ctx, tag, id)
	if err != nil {
		return fmt.Errorf("set tag: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteEvent removes an event. The shadow index is cleaned by trigger.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id int64) error {
	res, err := s.deleteEvent.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	return nil
}

// AppStats groups events by app, most frequent first.
func (s *SQLiteStore) AppStats(ctx context.Context, limit int) ([]AppStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT app, COUNT(*) AS count, MIN(timestamp) AS first_seen, MAX(timestamp) AS last_seen
		FROM events
		GROUP BY app
		ORDER BY count DESC, app ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("app stats: %w", err)
	}
	defer rows.Close()

	stats := []AppStats{}
	for rows.Next() {
		var st AppStats
		var first, last string
		if err := rows.Scan(&st.App, &st.Count, &first, &last); err != nil {
			continue
		}
		if st.FirstSeen, err = ParseTimestamp(first); err != nil {
			continue
		}
		if st.LastSeen, err = ParseTimestamp(last); err != nil {
			continue
		}
		stats = append(stats, st)
	}

	return stats, rows.Err()
}

// Summary holds store-wide counters.
type Summary struct {
	TotalEvents int64
	OldestEvent time.Time
	NewestEvent time.Time
}

// Summary returns the event count and time span of the store.
func (s *SQLiteStore) Summary(ctx context.Context) (*Summary, error) {
	sum := &Summary{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&sum.TotalEvents)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	if sum.TotalEvents > 0 {
		var oldest, newest string
		err = s.db.QueryRowContext(ctx, "SELECT MIN(timestamp), MAX(timestamp) FROM events").Scan(&oldest, &newest)
		if err != nil {
			return nil, fmt.Errorf("event time range: %w", err)
		}
		sum.OldestEvent, _ = ParseTimestamp(oldest)
		sum.NewestEvent, _ = ParseTimestamp(newest)
	}

	return sum, nil
}

// RebuildIndex reconstructs the full-text shadow index from the events
// table.
func (s *SQLiteStore) RebuildIndex(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `INSERT INTO events_fts(events_fts) VALUES ('rebuild')`); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*Event, error) {
	var e Event
	var ts string
	var tags sql.NullString
	if err := row.Scan(&e.ID, &ts, &e.App, &e.Title, &tags); err != nil {
		return nil, err
	}
	t, err := ParseTimestamp(ts)
	if err != nil {
		return nil, err
	}
	e.Timestamp = t
	if tags.Valid {
		e.Tags = tags.String
		e.HasTags = true
	}
	return &e, nil
}

// scanEvents executes a query and scans results into an Event slice. A row
// that cannot be decoded is dropped; the rest of the result is kept.
func (s *SQLiteStore) scanEvents(ctx context.Context, query string, args ...interface{}) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			continue
		}
		events = append(events, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// escapeLike escapes LIKE wildcards so substr matches literally.
func escapeLike(substr string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(substr)
}

// Close releases prepared statements, and the connection when the store
// was created by Open.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{
		s.insertEvent, s.getEvent, s.latestEvent, s.setTag, s.deleteEvent,
	}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
