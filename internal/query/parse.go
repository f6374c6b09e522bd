// Package query turns a free-form search string into one execution plan
// and runs it against the event store.
//
// Interpretations are tried in a fixed order and the first that applies
// wins:
//
//	after <text>       events since the newest event mentioning <text>
//	date phrase        today, yesterday, last hour, last 24 hours,
//	                   this week, last week, after:YYYY-MM-DD, before:YYYY-MM-DD
//	full text          any whitespace token in app or title
//
// Date phrases are found by substring containment anywhere in the query,
// so "today standup" is a date query, not a text query.
package query

import (
	"strings"
	"time"
	"unicode"

	"github.com/runnerr0/focuslog/internal/storage"
)

// Kind is the execution strategy of a Plan.
type Kind int

const (
	KindNone Kind = iota
	KindAnchor
	KindRange
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindAnchor:
		return "anchor"
	case KindRange:
		return "range"
	case KindText:
		return "text"
	default:
		return "none"
	}
}

// Plan is the parsed form of a query.
type Plan struct {
	Kind Kind

	// KindAnchor: lowercased text to look for, and the plan to run when no
	// event mentions it.
	Anchor   string
	Fallback *Plan

	// KindRange
	Range  storage.Range
	Phrase string

	// KindText: FTS5 MATCH expression.
	Match string
}

// Parse interprets raw relative to now. Day boundaries are computed in
// now's location.
func Parse(raw string, now time.Time) Plan {
	lower := strings.ToLower(raw)
	rest := parseRest(raw, lower, now)

	words := strings.Fields(lower)
	if len(words) >= 2 && words[0] == "after" {
		return Plan{
			Kind:     KindAnchor,
			Anchor:   strings.Join(words[1:], " "),
			Fallback: &rest,
		}
	}
	return rest
}

func parseRest(raw, lower string, now time.Time) Plan {
	if r, phrase, ok := DateRange(lower, now); ok {
		return Plan{Kind: KindRange, Range: r, Phrase: phrase}
	}
	if expr := MatchExpression(raw); expr != "" {
		return Plan{Kind: KindText, Match: expr}
	}
	return Plan{Kind: KindNone}
}

// MatchExpression builds an FTS5 expression matching any whitespace token
// of raw. Each token is quoted so FTS5 operators and punctuation are taken
// literally; a trailing * keeps its prefix meaning. Tokens with no letter
// or digit index to nothing and are dropped. The result is empty when no
// token survives.
func MatchExpression(raw string) string {
	var parts []string
	for _, tok := range strings.Fields(raw) {
		prefix := false
		if len(tok) > 1 && strings.HasSuffix(tok, "*") {
			tok = strings.TrimRight(tok, "*")
			prefix = true
		}
		if !hasWordChar(tok) {
			continue
		}
		part := `"` + strings.ReplaceAll(tok, `"`, `""`) + `"`
		if prefix {
			part += "*"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " OR ")
}

func hasWordChar(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
