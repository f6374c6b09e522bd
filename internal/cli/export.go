package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/focuslog/internal/recall"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithService(context.Background(), e.svc, args)
}

// executeWithService runs the export against a provided service (for testing).
func (c *ExportCommand) executeWithService(ctx context.Context, svc *recall.Service, args []string) error {
	query := strings.Join(args, " ")

	data, err := svc.ExportCSV(ctx, query)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if c.Output == "" {
		fmt.Print(data)
		return nil
	}

	if err := os.WriteFile(c.Output, []byte(data), 0644); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s to %s\n", formatBytes(int64(len(data))), c.Output)
	return nil
}
