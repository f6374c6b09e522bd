package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/runnerr0/focuslog/internal/recall"
	"github.com/runnerr0/focuslog/internal/storage"
)

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithService(context.Background(), e.svc, args)
}

// executeWithService runs the search against a provided service (for testing).
func (c *SearchCommand) executeWithService(ctx context.Context, svc *recall.Service, args []string) error {
	query := strings.Join(args, " ")

	results, err := svc.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.Save {
		if err := svc.SaveRecentSearch(ctx, query); err != nil {
			return fmt.Errorf("save recent search: %w", err)
		}
	}

	if wantJSON(c.globals) {
		return c.printJSON(query, results)
	}
	c.printHuman(query, results)
	return nil
}

func (c *SearchCommand) printHuman(query string, results []storage.Event) {
	if len(results) == 0 {
		fmt.Printf("No results found for %q\n", query)
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Found %d %s for %q",
		len(results), plural(len(results), "result", "results"), query)))
	fmt.Println()
	printEvents(results)
}

type jsonSearchOutput struct {
	Count   int         `json:"count"`
	Query   string      `json:"query"`
	Results []eventJSON `json:"results"`
}

func (c *SearchCommand) printJSON(query string, results []storage.Event) error {
	return printJSON(jsonSearchOutput{
		Count:   len(results),
		Query:   query,
		Results: toEventJSON(results),
	})
}
