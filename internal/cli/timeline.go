package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/focuslog/internal/recall"
	"github.com/runnerr0/focuslog/internal/storage"
)

// Execute implements the go-flags Commander interface for TimelineCommand.
func (c *TimelineCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithService(context.Background(), e.svc, args)
}

// executeWithService prints a day of events from a provided service (for testing).
func (c *TimelineCommand) executeWithService(ctx context.Context, svc *recall.Service, args []string) error {
	date := time.Now().Format("2006-01-02")
	if len(args) > 0 {
		date = args[0]
	}

	events, err := svc.Timeline(ctx, date)
	if err != nil {
		return err
	}

	if wantJSON(c.globals) {
		return printJSON(struct {
			Date   string      `json:"date"`
			Count  int         `json:"count"`
			Events []eventJSON `json:"events"`
		}{date, len(events), toEventJSON(events)})
	}

	if len(events) == 0 {
		fmt.Printf("No activity on %s\n", date)
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s · %d %s", date, len(events), plural(len(events), "event", "events"))))
	fmt.Println()
	for i, e := range events {
		fmt.Printf("%s  %s\n", formatEventLine(e), dimStyle.Render(spanUntil(events, i)))
	}
	return nil
}

// spanUntil describes how long events[i] stayed focused, measured to the
// next event. The last event of the day has no known end.
func spanUntil(events []storage.Event, i int) string {
	if i+1 >= len(events) {
		return ""
	}
	d := events[i+1].Timestamp.Sub(events[i].Timestamp)
	if d < time.Minute {
		return fmt.Sprintf("(%ds)", int(d.Seconds()))
	}
	return fmt.Sprintf("(%s)", d.Truncate(time.Minute))
}
