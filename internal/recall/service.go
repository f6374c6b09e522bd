// Package recall exposes the operations offered to the command shell. Each
// call opens its own handle on the database and closes it before returning,
// so the sampler and any number of callers can share one file.
package recall

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/runnerr0/focuslog/internal/export"
	"github.com/runnerr0/focuslog/internal/focus"
	"github.com/runnerr0/focuslog/internal/query"
	"github.com/runnerr0/focuslog/internal/sampler"
	"github.com/runnerr0/focuslog/internal/storage"
)

// StatisticsLimit caps the number of apps returned by Statistics.
const StatisticsLimit = 20

// Service runs boundary operations against the database at Path.
type Service struct {
	path   string
	opts   storage.Options
	logger *slog.Logger
	now    func() time.Time
	loc    *time.Location
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock replaces time.Now as the reference for date phrases.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the zone used for calendar days. Default: time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// New creates a Service for the database file at path.
func New(path string, opts storage.Options, options ...Option) *Service {
	s := &Service{
		path:   path,
		opts:   opts,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		loc:    time.Local,
	}
	for _, o := range options {
		o(s)
	}
	return s
}

// Path returns the database file location.
func (s *Service) Path() string {
	return s.path
}

func (s *Service) withStore(fn func(*storage.SQLiteStore) error) error {
	store, err := storage.Open(s.path, s.opts)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

// clock returns now in the configured zone so day boundaries are local.
func (s *Service) clock() time.Time {
	return s.now().In(s.loc)
}

// Init creates or upgrades the database. When seed is non-empty and no
// blacklist was ever saved, seed becomes the blacklist.
func (s *Service) Init(ctx context.Context, seed []string) error {
	return s.withStore(func(store *storage.SQLiteStore) error {
		if len(seed) == 0 {
			return nil
		}
		ok, err := store.HasBlacklist(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		s.logger.Info("seeding default blacklist", "entries", len(seed))
		return store.SetBlacklist(ctx, seed)
	})
}

// Search interprets q and returns the matching events.
func (s *Service) Search(ctx context.Context, q string) ([]storage.Event, error) {
	var events []storage.Event
	err := s.withStore(func(store *storage.SQLiteStore) error {
		var err error
		events, err = query.NewEngine(store, s.clock).Search(ctx, q)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}
	return events, nil
}

// Statistics returns the most used apps.
func (s *Service) Statistics(ctx context.Context) ([]storage.AppStats, error) {
	var stats []storage.AppStats
	err := s.withStore(func(store *storage.SQLiteStore) error {
		var err error
		stats, err = store.AppStats(ctx, StatisticsLimit)
		return err
	})
	return stats, err
}

// Summary returns store-wide counters.
func (s *Service) Summary(ctx context.Context) (*storage.Summary, error) {
	var sum *storage.Summary
	err := s.withStore(func(store *storage.SQLiteStore) error {
		var err error
		sum, err = store.Summary(ctx)
		return err
	})
	return sum, err
}

// ExportCSV runs q and returns the results as CSV text.
func (s *Service) ExportCSV(ctx context.Context, q string) (string, error) {
	events, err := s.Search(ctx, q)
	if err != nil {
		return "", err
	}
	return export.CSV(events)
}

// AddTag replaces the tag of event id. An unknown id wraps
// storage.ErrNotFound.
func (s *Service) AddTag(ctx context.Context, id int64, tag string) error {
	return s.withStore(func(store *storage.SQLiteStore) error {
		return store.SetTag(ctx, id, tag)
	})
}

// Blacklist returns the saved blacklist.
func (s *Service) Blacklist(ctx context.Context) ([]string, error) {
	var list []string
	err := s.withStore(func(store *storage.SQLiteStore) error {
		var err error
		list, err = store.Blacklist(ctx)
		return err
	})
	return list, err
}

// SetBlacklist replaces the blacklist. A running sampler picks it up on its
// next step.
func (s *Service) SetBlacklist(ctx context.Context, list []string) error {
	if list == nil {
		list = []string{}
	}
	return s.withStore(func(store *storage.SQLiteStore) error {
		return store.SetBlacklist(ctx, list)
	})
}

// RecentSearches returns saved queries, most recent first.
func (s *Service) RecentSearches(ctx context.Context) ([]string, error) {
	var list []string
	err := s.withStore(func(store *storage.SQLiteStore) error {
		var err error
		list, err = store.RecentSearches(ctx)
		return err
	})
	return list, err
}

// SaveRecentSearch records q as the most recent search. Blank queries are
// not saved.
func (s *Service) SaveRecentSearch(ctx context.Context, q string) error {
	if strings.TrimSpace(q) == "" {
		return nil
	}
	return s.withStore(func(store *storage.SQLiteStore) error {
		return store.SaveRecentSearch(ctx, q)
	})
}

// Timeline returns every event of the local calendar day date (YYYY-MM-DD),
// oldest first.
func (s *Service) Timeline(ctx context.Context, date string) ([]storage.Event, error) {
	r, err := query.ParseDay(date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	var events []storage.Event
	err = s.withStore(func(store *storage.SQLiteStore) error {
		var err error
		events, err = store.Timeline(ctx, r)
		return err
	})
	return events, err
}

// RebuildIndex reconstructs the full-text index from the events table.
func (s *Service) RebuildIndex(ctx context.Context) error {
	return s.withStore(func(store *storage.SQLiteStore) error {
		return store.RebuildIndex(ctx)
	})
}

// SampleOnce takes a single sample from source, deduplicated against the
// newest stored event.
func (s *Service) SampleOnce(ctx context.Context, source focus.Source) (sampler.Outcome, error) {
	var outcome sampler.Outcome
	err := s.withStore(func(store *storage.SQLiteStore) error {
		smp := sampler.New(source, store, sampler.WithLogger(s.logger), sampler.WithClock(s.now))
		st := smp.Seed(ctx)
		outcome = smp.Step(ctx, &st)
		return nil
	})
	return outcome, err
}

// StartSampler runs a sampler over source on its own database handle until
// ctx is done. The returned channel receives nil after a clean stop, or the
// error that kept the sampler from starting, and is then closed.
func (s *Service) StartSampler(ctx context.Context, source focus.Source, opts ...sampler.Option) <-chan error {
	done := make(chan error, 1)

	store, err := storage.Open(s.path, s.opts)
	if err != nil {
		s.logger.Error("sampler not started", "path", s.path, "error", err)
		done <- fmt.Errorf("start sampler: %w", err)
		close(done)
		return done
	}

	opts = append([]sampler.Option{sampler.WithLogger(s.logger)}, opts...)
	smp := sampler.New(source, store, opts...)

	go func() {
		defer close(done)
		defer store.Close()

		err := smp.Run(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			err = nil
		}
		done <- err
	}()

	return done
}
