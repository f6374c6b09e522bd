package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	DB      string `long:"db" description:"Path to the database file (overrides config)"`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// RecordCommand — run the focus sampler in the foreground.
type RecordCommand struct {
	Interval int    `long:"interval" description:"Seconds between samples (overrides config)"`
	For      string `long:"for" description:"Stop after duration (e.g., 30m, 8h)"`
	Once     bool   `long:"once" description:"Take a single sample and exit"`

	globals *GlobalFlags
	version string
}

// SearchCommand — search recorded activity.
type SearchCommand struct {
	Save bool `long:"save" description:"Add the query to recent searches"`

	globals *GlobalFlags
	version string
}

// ExportCommand — write search results as CSV.
type ExportCommand struct {
	Output string `short:"o" long:"output" description:"Write CSV to file instead of stdout"`

	globals *GlobalFlags
	version string
}

// StatsCommand — show the most used applications.
type StatsCommand struct {
	globals *GlobalFlags
	version string
}

// TagCommand — set the tag of an event.
type TagCommand struct {
	globals *GlobalFlags
	version string
}

// TimelineCommand — list one day of activity.
type TimelineCommand struct {
	globals *GlobalFlags
	version string
}

// BlacklistCommand — show or edit the apps that are never recorded.
type BlacklistCommand struct {
	Set    []string `long:"set" description:"Replace the blacklist (repeatable)"`
	Add    []string `long:"add" description:"Append an entry (repeatable)"`
	Remove []string `long:"remove" description:"Remove an entry (repeatable)"`
	Clear  bool     `long:"clear" description:"Remove every entry"`

	globals *GlobalFlags
	version string
}

// RecentCommand — show or save recent searches.
type RecentCommand struct {
	Save string `long:"save" description:"Save a query as the most recent search"`

	globals *GlobalFlags
	version string
}

// ReindexCommand — rebuild the full-text index.
type ReindexCommand struct {
	globals *GlobalFlags
	version string
}

// StatusCommand — show database location, size, and counters.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}
