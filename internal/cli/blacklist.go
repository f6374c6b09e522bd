package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/runnerr0/focuslog/internal/recall"
)

// Execute implements the go-flags Commander interface for BlacklistCommand.
func (c *BlacklistCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithService(context.Background(), e.svc)
}

func (c *BlacklistCommand) edits() bool {
	return c.Clear || len(c.Set) > 0 || len(c.Add) > 0 || len(c.Remove) > 0
}

// executeWithService shows or edits the blacklist through a provided
// service (for testing). --clear and --set replace the list, then --add
// and --remove apply in that order.
func (c *BlacklistCommand) executeWithService(ctx context.Context, svc *recall.Service) error {
	list, err := svc.Blacklist(ctx)
	if err != nil {
		return fmt.Errorf("load blacklist: %w", err)
	}

	if c.edits() {
		list = c.apply(list)
		if err := svc.SetBlacklist(ctx, list); err != nil {
			return fmt.Errorf("save blacklist: %w", err)
		}
	}

	if wantJSON(c.globals) {
		if list == nil {
			list = []string{}
		}
		return printJSON(map[string][]string{"blacklist": list})
	}

	if len(list) == 0 {
		fmt.Println("Blacklist is empty; every application is recorded.")
		return nil
	}
	fmt.Println(headerStyle.Render("Never recorded (app name contains):"))
	for _, entry := range list {
		fmt.Printf("  %s\n", entry)
	}
	return nil
}

func (c *BlacklistCommand) apply(list []string) []string {
	if c.Clear {
		list = []string{}
	}
	if len(c.Set) > 0 {
		list = append([]string{}, c.Set...)
	}

	for _, entry := range c.Add {
		entry = strings.TrimSpace(entry)
		if entry == "" || containsFold(list, entry) {
			continue
		}
		list = append(list, entry)
	}

	if len(c.Remove) > 0 {
		kept := make([]string, 0, len(list))
		for _, entry := range list {
			if !containsFold(c.Remove, entry) {
				kept = append(kept, entry)
			}
		}
		list = kept
	}
	return list
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}
