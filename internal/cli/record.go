package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/runnerr0/focuslog/internal/config"
	"github.com/runnerr0/focuslog/internal/focus"
	"github.com/runnerr0/focuslog/internal/recall"
	"github.com/runnerr0/focuslog/internal/sampler"
)

// Execute implements the go-flags Commander interface for RecordCommand.
func (c *RecordCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}

	source, err := focus.New(e.cfg.Focus.Provider, e.cfg.Focus.StaticApp, e.cfg.Focus.StaticTitle)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return c.executeWithSource(ctx, e.svc, e.cfg, source)
}

// executeWithSource runs the sampler against a provided service and focus
// source (for testing).
func (c *RecordCommand) executeWithSource(ctx context.Context, svc *recall.Service, cfg *config.Config, source focus.Source) error {
	var seed []string
	if cfg.Sampler.SeedBlacklist {
		seed = config.DefaultBlacklist()
	}
	if err := svc.Init(ctx, seed); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}

	if c.Once {
		outcome, err := svc.SampleOnce(ctx, source)
		if err != nil {
			return err
		}
		if wantJSON(c.globals) {
			return printJSON(map[string]string{"outcome": outcome.String()})
		}
		fmt.Println(outcome.String())
		return nil
	}

	interval := cfg.Sampler.Interval()
	if c.Interval > 0 {
		interval = time.Duration(c.Interval) * time.Second
	}

	if c.For != "" {
		d, err := parseDuration(c.For)
		if err != nil {
			return fmt.Errorf("invalid --for value %q: %w", c.For, err)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	fmt.Fprintf(os.Stderr, "Recording focus changes every %s to %s (Ctrl-C to stop)\n", interval, svc.Path())

	return <-svc.StartSampler(ctx, source, sampler.WithInterval(interval))
}
