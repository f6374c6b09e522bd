package query

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/focuslog/internal/storage"
)

// Result caps per strategy.
const (
	AnchorLimit = 50
	RangeLimit  = 100
	TextLimit   = 100
)

// Reader is the read side of the event store used by the engine.
type Reader interface {
	LatestMatching(ctx context.Context, substr string) (int64, bool, error)
	EventsAfter(ctx context.Context, id int64, limit int) ([]storage.Event, error)
	EventsInRange(ctx context.Context, r storage.Range, limit int) ([]storage.Event, error)
	MatchText(ctx context.Context, expr string, limit int) ([]storage.Event, error)
}

// Engine executes search queries.
type Engine struct {
	store Reader
	now   func() time.Time
}

// NewEngine creates an Engine. now supplies the reference instant for date
// phrases; nil means time.Now.
func NewEngine(store Reader, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, now: now}
}

// Search parses raw and runs the resulting plan.
func (e *Engine) Search(ctx context.Context, raw string) ([]storage.Event, error) {
	return e.Execute(ctx, Parse(raw, e.now()))
}

// Execute runs a parsed plan. Anchor results are oldest first; everything
// else is newest first.
func (e *Engine) Execute(ctx context.Context, p Plan) ([]storage.Event, error) {
	switch p.Kind {
	case KindAnchor:
		id, ok, err := e.store.LatestMatching(ctx, p.Anchor)
		if err != nil {
			return nil, err
		}
		if !ok {
			if p.Fallback == nil {
				return []storage.Event{}, nil
			}
			return e.Execute(ctx, *p.Fallback)
		}
		return e.store.EventsAfter(ctx, id, AnchorLimit)

	case KindRange:
		return e.store.EventsInRange(ctx, p.Range, RangeLimit)

	case KindText:
		return e.store.MatchText(ctx, p.Match, TextLimit)

	case KindNone:
		return []storage.Event{}, nil

	default:
		return nil, fmt.Errorf("unknown plan kind %d", p.Kind)
	}
}
