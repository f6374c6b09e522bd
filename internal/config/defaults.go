package config

// Defaults shared with callers that bypass the config file.
const (
	DefaultSQLiteFile      = "memory.db"
	DefaultIntervalSeconds = 2
)

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path:          "",
			SQLiteFile:    DefaultSQLiteFile,
			JournalMode:   "wal",
			BusyTimeoutMS: 5000,
		},
		Sampler: SamplerConfig{
			IntervalSeconds: DefaultIntervalSeconds,
			SeedBlacklist:   true,
		},
		Focus: FocusConfig{
			Provider: "xdotool",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
