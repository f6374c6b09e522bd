package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Settings keys.
const (
	KeyBlacklist      = "blacklist"
	KeyRecentSearches = "recent_searches"
)

// MaxRecentSearches bounds the recent-search list.
const MaxRecentSearches = 10

// Setting reads a raw settings value. The boolean is false when the key has
// never been written.
func (s *SQLiteStore) Setting(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, true, nil
}

// PutSetting writes a raw settings value, replacing any previous one.
func (s *SQLiteStore) PutSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO config (key, value) VALUES (?, ?)", key, value,
	)
	if err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) stringList(ctx context.Context, key string) ([]string, bool, error) {
	raw, ok, err := s.Setting(ctx, key)
	if err != nil || !ok {
		return []string{}, ok, err
	}
	list := []string{}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}, true, fmt.Errorf("decode setting %s: %w", key, err)
	}
	return list, true, nil
}

func (s *SQLiteStore) putStringList(ctx context.Context, key string, list []string) error {
	if list == nil {
		list = []string{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", key, err)
	}
	return s.PutSetting(ctx, key, string(data))
}

// Blacklist returns the stored blacklist in its saved order. A store where
// no blacklist was ever saved yields an empty list.
func (s *SQLiteStore) Blacklist(ctx context.Context) ([]string, error) {
	list, _, err := s.stringList(ctx, KeyBlacklist)
	return list, err
}

// HasBlacklist reports whether a blacklist was ever saved, even an empty one.
func (s *SQLiteStore) HasBlacklist(ctx context.Context) (bool, error) {
	_, ok, err := s.Setting(ctx, KeyBlacklist)
	return ok, err
}

// SetBlacklist replaces the blacklist.
func (s *SQLiteStore) SetBlacklist(ctx context.Context, list []string) error {
	return s.putStringList(ctx, KeyBlacklist, list)
}

// RecentSearches returns saved queries, most recent first.
func (s *SQLiteStore) RecentSearches(ctx context.Context) ([]string, error) {
	list, _, err := s.stringList(ctx, KeyRecentSearches)
	return list, err
}

// SaveRecentSearch moves q to the front of the recent list, dropping any
// earlier identical entry and anything past MaxRecentSearches.
func (s *SQLiteStore) SaveRecentSearch(ctx context.Context, q string) error {
	recent, err := s.RecentSearches(ctx)
	if err != nil {
		// A corrupt list is replaced rather than blocking new saves.
		recent = []string{}
	}

	next := make([]string, 0, MaxRecentSearches)
	next = append(next, q)
	for _, r := range recent {
		if r == q {
			continue
		}
		if len(next) == MaxRecentSearches {
			break
		}
		next = append(next, r)
	}

	return s.putStringList(ctx, KeyRecentSearches, next)
}
