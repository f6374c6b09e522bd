package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/focuslog/internal/recall"
)

// Execute implements the go-flags Commander interface for RecentCommand.
func (c *RecentCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithService(context.Background(), e.svc)
}

// executeWithService lists or saves recent searches through a provided
// service (for testing).
func (c *RecentCommand) executeWithService(ctx context.Context, svc *recall.Service) error {
	if c.Save != "" {
		if err := svc.SaveRecentSearch(ctx, c.Save); err != nil {
			return fmt.Errorf("save recent search: %w", err)
		}
	}

	recent, err := svc.RecentSearches(ctx)
	if err != nil {
		return fmt.Errorf("load recent searches: %w", err)
	}

	if wantJSON(c.globals) {
		if recent == nil {
			recent = []string{}
		}
		return printJSON(map[string][]string{"recent_searches": recent})
	}

	if len(recent) == 0 {
		fmt.Println("No recent searches.")
		return nil
	}
	for i, q := range recent {
		fmt.Printf("%2d. %s\n", i+1, q)
	}
	return nil
}
