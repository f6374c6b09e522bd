package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/runnerr0/focuslog/internal/config"
	"github.com/runnerr0/focuslog/internal/logging"
	"github.com/runnerr0/focuslog/internal/recall"
	"github.com/runnerr0/focuslog/internal/storage"
)

// env is everything a command needs after config has been resolved.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	svc    *recall.Service
}

// loadEnv reads the config file (creating it with defaults on first use),
// builds the logger, and points a service at the database.
func loadEnv(globals *GlobalFlags) (*env, error) {
	var (
		cfg *config.Config
		err error
	)
	if globals != nil && globals.Config != "" {
		cfg, err = config.LoadOrCreateAt(globals.Config)
	} else {
		cfg, err = config.LoadOrCreate()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	verbose := globals != nil && globals.Verbose
	logger := logging.New(os.Stderr, cfg.Logging, verbose)

	dbPath := ""
	if globals != nil {
		dbPath = globals.DB
	}
	if dbPath == "" {
		dbPath, err = cfg.DatabasePath()
		if err != nil {
			return nil, err
		}
	}

	svc := recall.New(dbPath, storageOptions(cfg), recall.WithLogger(logger))
	return &env{cfg: cfg, logger: logger, svc: svc}, nil
}

func storageOptions(cfg *config.Config) storage.Options {
	opts := storage.DefaultOptions()
	if cfg.Storage.JournalMode != "" {
		opts.JournalMode = cfg.Storage.JournalMode
	}
	if cfg.Storage.BusyTimeoutMS > 0 {
		opts.BusyTimeoutMS = cfg.Storage.BusyTimeoutMS
	}
	return opts
}

func wantJSON(globals *GlobalFlags) bool {
	return globals != nil && globals.JSON
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// eventJSON is the JSON shape of one event.
type eventJSON struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	App       string `json:"app"`
	Title     string `json:"title"`
	Tags      string `json:"tags,omitempty"`
}

func toEventJSON(events []storage.Event) []eventJSON {
	out := make([]eventJSON, len(events))
	for i, e := range events {
		out[i] = eventJSON{
			ID:        e.ID,
			Timestamp: storage.FormatTimestamp(e.Timestamp),
			App:       e.App,
			Title:     e.Title,
			Tags:      e.Tags,
		}
	}
	return out
}

// parseDuration parses a human-friendly duration string like "30m", "8h", "2d".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration string")
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid duration %q: must be positive", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	case 's':
		return time.Duration(n) * time.Second, nil
	default:
		return 0, fmt.Errorf("unknown duration suffix %q in %q", string(suffix), s)
	}
}

// parseEventID parses a positive event id.
func parseEventID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid event id %q", s)
	}
	return id, nil
}

// getDatabaseSize returns the database file size in bytes, including the
// WAL file when present.
func getDatabaseSize(dbPath string) int64 {
	var total int64
	for _, p := range []string{dbPath, dbPath + "-wal"} {
		if info, err := os.Stat(p); err == nil {
			total += info.Size()
		}
	}
	return total
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
