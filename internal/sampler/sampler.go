// Package sampler polls the focused window and appends a deduplicated
// timeline of focus changes to the event store.
package sampler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/runnerr0/focuslog/internal/focus"
	"github.com/runnerr0/focuslog/internal/storage"
)

// DefaultInterval is the fixed polling period.
const DefaultInterval = 2 * time.Second

// Store is the subset of the event store the sampler writes through.
type Store interface {
	Blacklist(ctx context.Context) ([]string, error)
	AddEvent(ctx context.Context, e *storage.Event) error
	LatestEvent(ctx context.Context) (*storage.Event, error)
}

// State is the last recorded (app, title) pair, threaded between steps.
type State struct {
	App   string
	Title string
	Seen  bool
}

func (st *State) matches(w focus.Window) bool {
	return st.Seen && st.App == w.App && st.Title == w.Title
}

// Outcome reports what a single step did.
type Outcome int

const (
	OutcomeNoWindow Outcome = iota
	OutcomeBlacklisted
	OutcomeDuplicate
	OutcomeRecorded
	OutcomeWriteFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoWindow:
		return "no-window"
	case OutcomeBlacklisted:
		return "blacklisted"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeRecorded:
		return "recorded"
	case OutcomeWriteFailed:
		return "write-failed"
	default:
		return "unknown"
	}
}

// Sampler records focus changes. It is the only writer of events.
type Sampler struct {
	source   focus.Source
	store    Store
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
	wait     func(ctx context.Context, d time.Duration) error
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(s *Sampler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithLogger sets the diagnostic logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sampler) { s.logger = l }
}

// WithClock replaces time.Now for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) { s.now = now }
}

// WithWait replaces the sleep between steps.
func WithWait(wait func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Sampler) { s.wait = wait }
}

// New creates a Sampler reading from source and writing to store.
func New(source focus.Source, store Store, opts ...Option) *Sampler {
	s := &Sampler{
		source:   source,
		store:    store,
		interval: DefaultInterval,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		wait:     sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed returns the state implied by the newest stored event, so a restarted
// sampler does not write a second copy of the window it last recorded.
func (s *Sampler) Seed(ctx context.Context) State {
	last, err := s.store.LatestEvent(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("seed last-seen state", "error", err)
		}
		return State{}
	}
	return State{App: last.App, Title: last.Title, Seen: true}
}

// Step runs one acquire → filter → dedup → write cycle. st is only
// advanced when the observation passes the blacklist and differs from it.
func (s *Sampler) Step(ctx context.Context, st *State) Outcome {
	blacklist, err := s.store.Blacklist(ctx)
	if err != nil {
		s.logger.Debug("load blacklist", "error", err)
		blacklist = nil
	}

	w, err := s.source.ActiveWindow(ctx)
	if err != nil {
		return OutcomeNoWindow
	}

	if Blacklisted(w.App, blacklist) {
		return OutcomeBlacklisted
	}

	if st.matches(w) {
		return OutcomeDuplicate
	}

	e := &storage.Event{App: w.App, Title: w.Title, Timestamp: s.now()}
	werr := s.store.AddEvent(ctx, e)

	// No retry on failure: the next differing window is recorded on its own.
	st.App, st.Title, st.Seen = w.App, w.Title, true

	if werr != nil {
		s.logger.Warn("record event", "app", w.App, "error", werr)
		return OutcomeWriteFailed
	}
	s.logger.Debug("recorded event", "id", e.ID, "app", e.App, "title", e.Title)
	return OutcomeRecorded
}

// Run seeds the state and then steps once per interval until ctx is done.
// It returns ctx.Err().
func (s *Sampler) Run(ctx context.Context) error {
	st := s.Seed(ctx)
	s.logger.Info("sampler started", "interval", s.interval)

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("sampler stopped")
			return err
		}
		s.Step(ctx, &st)
		if err := s.wait(ctx, s.interval); err != nil {
			s.logger.Info("sampler stopped")
			return err
		}
	}
}

// Blacklisted reports whether app contains any non-blank entry, ignoring
// case.
func Blacklisted(app string, blacklist []string) bool {
	lower := strings.ToLower(app)
	for _, entry := range blacklist {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if strings.Contains(lower, entry) {
			return true
		}
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
