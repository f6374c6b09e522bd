package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/focuslog/internal/recall"
)

// Execute implements the go-flags Commander interface for ReindexCommand.
func (c *ReindexCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithService(context.Background(), e.svc)
}

func (c *ReindexCommand) executeWithService(ctx context.Context, svc *recall.Service) error {
	if err := svc.RebuildIndex(ctx); err != nil {
		return err
	}
	if wantJSON(c.globals) {
		return printJSON(map[string]bool{"reindexed": true})
	}
	fmt.Println("Search index rebuilt.")
	return nil
}
