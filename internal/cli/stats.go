package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/focuslog/internal/recall"
	"github.com/runnerr0/focuslog/internal/storage"
)

type appStatsJSON struct {
	App       string `json:"app"`
	Count     int64  `json:"count"`
	FirstSeen string `json:"first_seen"`
	LastSeen  string `json:"last_seen"`
}

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithService(context.Background(), e.svc)
}

// executeWithService prints app statistics from a provided service (for testing).
func (c *StatsCommand) executeWithService(ctx context.Context, svc *recall.Service) error {
	stats, err := svc.Statistics(ctx)
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	if wantJSON(c.globals) {
		out := make([]appStatsJSON, len(stats))
		for i, s := range stats {
			out[i] = appStatsJSON{
				App:       s.App,
				Count:     s.Count,
				FirstSeen: storage.FormatTimestamp(s.FirstSeen),
				LastSeen:  storage.FormatTimestamp(s.LastSeen),
			}
		}
		return printJSON(out)
	}

	if len(stats) == 0 {
		fmt.Println("No activity recorded yet.")
		return nil
	}

	fmt.Println(headerStyle.Render("Top Applications"))
	fmt.Println()
	for _, s := range stats {
		fmt.Println(formatStatsLine(s))
	}
	return nil
}

// formatStatsLine pads the app name before styling it; padding a rendered
// string would count its escape codes as columns.
func formatStatsLine(s storage.AppStats) string {
	return fmt.Sprintf("  %s %8s   %s → %s",
		appStyle.Render(fmt.Sprintf("%-28s", s.App)),
		formatNumber(s.Count),
		dimStyle.Render(s.FirstSeen.Local().Format(displayTimeLayout)),
		dimStyle.Render(s.LastSeen.Local().Format(displayTimeLayout)),
	)
}
