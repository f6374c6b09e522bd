package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore creates a migrated store backed by a temp file.
func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "memory.db"), DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func addEvent(t *testing.T, store *SQLiteStore, app, title string, ts time.Time) *Event {
	t.Helper()
	e := &Event{App: app, Title: title, Timestamp: ts}
	require.NoError(t, store.AddEvent(context.Background(), e))
	return e
}

func ids(events []Event) []int64 {
	out := make([]int64, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

// --- AddEvent + GetEvent roundtrip ---

func TestAddEvent_GetEvent_Roundtrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ts := time.Date(2024, 3, 5, 14, 7, 9, 123456789, time.FixedZone("CET", 3600))
	e := addEvent(t, store, "Code", "main.go", ts)

	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, time.Date(2024, 3, 5, 13, 7, 9, 0, time.UTC), e.Timestamp)

	got, err := store.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, *e, *got)
	assert.False(t, got.HasTags)
}

func TestAddEvent_StoresFixedWidthUTC(t *testing.T) {
	store := openTestStore(t)

	addEvent(t, store, "Code", "x", time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("EST", -5*3600)))

	var raw string
	require.NoError(t, store.DB().QueryRow("SELECT timestamp FROM events WHERE id = 1").Scan(&raw))
	assert.Equal(t, "2024-01-02T08:04:05Z", raw)
}

func TestAddEvent_IDsIncrease(t *testing.T) {
	store := openTestStore(t)

	a := addEvent(t, store, "A", "", time.Time{})
	b := addEvent(t, store, "B", "", time.Time{})

	assert.Greater(t, b.ID, a.ID)
	assert.False(t, a.Timestamp.IsZero(), "timestamp should be set")
}

func TestGetEvent_NotFound(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GetEvent(context.Background(), 42)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLatestEvent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	_, err := store.LatestEvent(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))

	addEvent(t, store, "A", "one", time.Time{})
	addEvent(t, store, "B", "two", time.Time{})

	got, err := store.LatestEvent(ctx)
	require.NoError(t, err)
	assert.Equal(t, "B", got.App)
	assert.Equal(t, "two", got.Title)
}

// --- Anchor lookups ---

func TestLatestMatching_CaseInsensitiveAppOrTitle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	addEvent(t, store, "Google Chrome", "Inbox", time.Time{})
	addEvent(t, store, "Notes", "chrome extensions list", time.Time{})
	addEvent(t, store, "Terminal", "bash", time.Time{})

	id, ok, err := store.LatestMatching(ctx, "CHROME")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)

	_, ok, err = store.LatestMatching(ctx, "safari")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLatestMatching_WildcardsAreLiteral(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	addEvent(t, store, "Editor", "report_final", time.Time{})
	addEvent(t, store, "Editor", "reportXfinal", time.Time{})

	id, ok, err := store.LatestMatching(ctx, "report_final")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)

	_, ok, err = store.LatestMatching(ctx, "100%")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEventsAfter_AscendingAndCapped(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		addEvent(t, store, "App", string(rune('a'+i)), time.Time{})
	}

	got, err := store.EventsAfter(ctx, 4, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6, 7}, ids(got))
}

// --- Range queries ---

func TestEventsInRange_Bounds(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)
	addEvent(t, store, "A", "before", base.Add(-time.Second))
	addEvent(t, store, "A", "start", base)
	addEvent(t, store, "A", "end", base.Add(24*time.Hour-time.Second))
	addEvent(t, store, "A", "after", base.Add(24*time.Hour))

	closed, err := store.EventsInRange(ctx, Range{Start: base, End: base.Add(24*time.Hour - time.Second)}, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, ids(closed))

	openEnd, err := store.EventsInRange(ctx, Range{Start: base}, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 3, 2}, ids(openEnd))

	openStart, err := store.EventsInRange(ctx, Range{End: base}, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids(openStart))

	capped, err := store.EventsInRange(ctx, Range{}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{4, 3}, ids(capped))
}

func TestTimeline_OldestFirstUncapped(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 150; i++ {
		addEvent(t, store, "App", "t", day.Add(time.Duration(i)*time.Minute))
	}

	got, err := store.Timeline(ctx, Range{Start: day, End: day.Add(24*time.Hour - time.Second)})
	require.NoError(t, err)
	require.Len(t, got, 150)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(150), got[149].ID)
}

// --- Full text + shadow index consistency ---

func TestMatchText_AppOrTitle(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	addEvent(t, store, "Firefox", "Golang Programming Language", time.Time{})
	addEvent(t, store, "Terminal", "vim", time.Time{})
	addEvent(t, store, "Code", "firefox profile notes", time.Time{})

	got, err := store.MatchText(ctx, `"firefox"`, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, ids(got))

	got, err = store.MatchText(ctx, `"vim" OR "golang"`, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids(got))
}

func TestMatchText_BlankExpressionMatchesNothing(t *testing.T) {
	store := openTestStore(t)
	addEvent(t, store, "Firefox", "x", time.Time{})

	got, err := store.MatchText(context.Background(), "   ", 100)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestShadowIndex_FollowsUpdatesAndDeletes(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	db := store.DB()

	a := addEvent(t, store, "Chrome", "kanban board", time.Time{})
	b := addEvent(t, store, "Chrome", "calendar", time.Time{})
	c := addEvent(t, store, "Slack", "kanban channel", time.Time{})

	got, err := store.MatchText(ctx, `"kanban"`, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID, a.ID}, ids(got))

	// Change a's title away from the token.
	_, err = db.Exec("UPDATE events SET title = 'sprint review' WHERE id = ?", a.ID)
	require.NoError(t, err)

	got, err = store.MatchText(ctx, `"kanban"`, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{c.ID}, ids(got))

	got, err = store.MatchText(ctx, `"sprint"`, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID}, ids(got))

	// Tagging rewrites the row; the index entry must survive intact.
	require.NoError(t, store.SetTag(ctx, b.ID, "planning"))
	got, err = store.MatchText(ctx, `"calendar"`, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID}, ids(got))

	require.NoError(t, store.DeleteEvent(ctx, c.ID))
	got, err = store.MatchText(ctx, `"kanban"`, 100)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = store.MatchText(ctx, `"chrome"`, 100)
	require.NoError(t, err)
	assert.Equal(t, []int64{b.ID, a.ID}, ids(got))

	var indexed int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM events_fts").Scan(&indexed))
	assert.Equal(t, 2, indexed)
}

func TestRebuildIndex(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	addEvent(t, store, "Figma", "mockups", time.Time{})
	_, err := store.DB().Exec("INSERT INTO events_fts(events_fts) VALUES ('delete-all')")
	require.NoError(t, err)

	got, err := store.MatchText(ctx, `"figma"`, 100)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.RebuildIndex(ctx))

	got, err = store.MatchText(ctx, `"figma"`, 100)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// --- Tags ---

func TestSetTag_Overwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	e := addEvent(t, store, "Zoom", "1:1", time.Time{})
	require.NoError(t, store.SetTag(ctx, e.ID, "meeting"))
	require.NoError(t, store.SetTag(ctx, e.ID, "review"))

	got, err := store.GetEvent(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.HasTags)
	assert.Equal(t, "review", got.Tags)
}

func TestSetTag_UnknownEvent(t *testing.T) {
	store := openTestStore(t)

	err := store.SetTag(context.Background(), 99, "x")
	assert.True(t, errors.Is(err, ErrNotFound))
}

// --- Decode failures ---

func TestScanEvents_DropsUndecodableRows(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	addEvent(t, store, "Good", "one", time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	_, err := store.DB().Exec(`INSERT INTO events (timestamp, app, title) VALUES ('not a time', 'Bad', 'two')`)
	require.NoError(t, err)
	addEvent(t, store, "Good", "three", time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC))

	got, err := store.EventsAfter(ctx, 0, 50)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids(got))
}

// --- Aggregation ---

func TestAppStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	addEvent(t, store, "Code", "a", base)
	addEvent(t, store, "Slack", "b", base.Add(time.Minute))
	addEvent(t, store, "Code", "c", base.Add(2*time.Minute))
	addEvent(t, store, "Code", "d", base.Add(3*time.Minute))
	addEvent(t, store, "Slack", "e", base.Add(4*time.Minute))
	addEvent(t, store, "Mail", "f", base.Add(5*time.Minute))

	stats, err := store.AppStats(ctx, 20)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, "Code", stats[0].App)
	assert.Equal(t, int64(3), stats[0].Count)
	assert.Equal(t, base, stats[0].FirstSeen)
	assert.Equal(t, base.Add(3*time.Minute), stats[0].LastSeen)
	assert.Equal(t, "Slack", stats[1].App)
	assert.Equal(t, "Mail", stats[2].App)

	capped, err := store.AppStats(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestSummary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	sum, err := store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum.TotalEvents)
	assert.True(t, sum.OldestEvent.IsZero())

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	addEvent(t, store, "Code", "a", base)
	addEvent(t, store, "Code", "b", base.Add(time.Hour))

	sum, err = store.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.TotalEvents)
	assert.Equal(t, base, sum.OldestEvent)
	assert.Equal(t, base.Add(time.Hour), sum.NewestEvent)
}
