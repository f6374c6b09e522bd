package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/runnerr0/focuslog/internal/recall"
	"github.com/runnerr0/focuslog/internal/storage"
	"github.com/stretchr/testify/require"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

var testNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

// setupService returns a service over a fresh database in a temp dir.
func setupService(t *testing.T) *recall.Service {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memory.db")
	return recall.New(path, storage.DefaultOptions(),
		recall.WithClock(func() time.Time { return testNow }),
		recall.WithLocation(time.UTC),
	)
}

// seedEvents writes events straight into the service's database.
func seedEvents(t *testing.T, svc *recall.Service, events ...storage.Event) {
	t.Helper()
	store, err := storage.Open(svc.Path(), storage.DefaultOptions())
	require.NoError(t, err)
	defer store.Close()
	for i := range events {
		require.NoError(t, store.AddEvent(context.Background(), &events[i]))
	}
}

// sampleEvents is a small morning of activity on 2024-01-15.
func sampleEvents() []storage.Event {
	at := func(h, m int) time.Time { return time.Date(2024, 1, 15, h, m, 0, 0, time.UTC) }
	return []storage.Event{
		{Timestamp: at(9, 0), App: "Code", Title: "main.go"},
		{Timestamp: at(9, 20), App: "Google Chrome", Title: "Go documentation"},
		{Timestamp: at(9, 25), App: "Code", Title: "store.go"},
		{Timestamp: at(10, 0), App: "Slack", Title: "general"},
	}
}

// writeConfig writes a config file into dir and returns its path.
func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}
