package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/runnerr0/focuslog/internal/recall"
	"github.com/runnerr0/focuslog/internal/storage"
)

// Execute implements the go-flags Commander interface for TagCommand.
func (c *TagCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithService(context.Background(), e.svc, args)
}

// executeWithService tags an event through a provided service (for testing).
func (c *TagCommand) executeWithService(ctx context.Context, svc *recall.Service, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: tag <event-id> <tag>")
	}
	id, err := parseEventID(args[0])
	if err != nil {
		return err
	}
	tag := strings.Join(args[1:], " ")

	if err := svc.AddTag(ctx, id, tag); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no event with id %d", id)
		}
		return fmt.Errorf("tag event: %w", err)
	}

	if wantJSON(c.globals) {
		return printJSON(map[string]interface{}{"id": id, "tags": tag})
	}
	fmt.Printf("Tagged event %d: %s\n", id, tag)
	return nil
}
