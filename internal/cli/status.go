package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/focuslog/internal/recall"
	"github.com/runnerr0/focuslog/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string   `json:"version"`
	DatabasePath      string   `json:"database_path"`
	DatabaseSizeBytes int64    `json:"database_size_bytes"`
	TotalEvents       int64    `json:"total_events"`
	OldestEvent       string   `json:"oldest_event,omitempty"`
	NewestEvent       string   `json:"newest_event,omitempty"`
	Blacklist         []string `json:"blacklist"`
	RecentSearches    int      `json:"recent_searches"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithService(context.Background(), e.svc)
}

// executeWithService runs status against a provided service (for testing).
func (c *StatusCommand) executeWithService(ctx context.Context, svc *recall.Service) error {
	sum, err := svc.Summary(ctx)
	if err != nil {
		return fmt.Errorf("get summary: %w", err)
	}
	blacklist, err := svc.Blacklist(ctx)
	if err != nil {
		return fmt.Errorf("load blacklist: %w", err)
	}
	recent, err := svc.RecentSearches(ctx)
	if err != nil {
		return fmt.Errorf("load recent searches: %w", err)
	}

	dbPath := svc.Path()
	dbSize := getDatabaseSize(dbPath)

	if wantJSON(c.globals) {
		out := statusJSON{
			Version:           c.version,
			DatabasePath:      dbPath,
			DatabaseSizeBytes: dbSize,
			TotalEvents:       sum.TotalEvents,
			Blacklist:         blacklist,
			RecentSearches:    len(recent),
		}
		if sum.TotalEvents > 0 {
			out.OldestEvent = storage.FormatTimestamp(sum.OldestEvent)
			out.NewestEvent = storage.FormatTimestamp(sum.NewestEvent)
		}
		return printJSON(out)
	}

	fmt.Println(headerStyle.Render("focuslog status"))
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Events:        %s\n", formatNumber(sum.TotalEvents))
	if sum.TotalEvents > 0 {
		fmt.Printf("Oldest:        %s\n", sum.OldestEvent.Local().Format(displayTimeLayout))
		fmt.Printf("Newest:        %s\n", sum.NewestEvent.Local().Format(displayTimeLayout))
	}
	fmt.Printf("Blacklist:     %d %s\n", len(blacklist), plural(len(blacklist), "entry", "entries"))
	fmt.Printf("Recent:        %d %s\n", len(recent), plural(len(recent), "search", "searches"))
	return nil
}
