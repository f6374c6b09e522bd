package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Record    *RecordCommand
	Search    *SearchCommand
	Export    *ExportCommand
	Stats     *StatsCommand
	Tag       *TagCommand
	Timeline  *TimelineCommand
	Blacklist *BlacklistCommand
	Recent    *RecentCommand
	Reindex   *ReindexCommand
	Status    *StatusCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "focuslog"
	parser.LongDescription = "Local record of which application and window had focus, with natural-language recall."

	cmds := &commands{
		Record:    &RecordCommand{globals: &globals, version: version},
		Search:    &SearchCommand{globals: &globals, version: version},
		Export:    &ExportCommand{globals: &globals, version: version},
		Stats:     &StatsCommand{globals: &globals, version: version},
		Tag:       &TagCommand{globals: &globals, version: version},
		Timeline:  &TimelineCommand{globals: &globals, version: version},
		Blacklist: &BlacklistCommand{globals: &globals, version: version},
		Recent:    &RecentCommand{globals: &globals, version: version},
		Reindex:   &ReindexCommand{globals: &globals, version: version},
		Status:    &StatusCommand{globals: &globals, version: version},
	}

	parser.AddCommand("record", "Record focused windows", "Sample the focused window every interval and record each change until interrupted.", cmds.Record)
	parser.AddCommand("search", "Search recorded activity", `Search recorded activity. Accepts "after <app or title>", date phrases such as "yesterday" or "after:2024-01-01", or free text.`, cmds.Search)
	parser.AddCommand("export", "Export search results as CSV", "Run a search and write the results as CSV with columns ID, Timestamp, App, Title, Tags.", cmds.Export)
	parser.AddCommand("stats", "Show most used applications", "Show the 20 applications with the most recorded events.", cmds.Stats)
	parser.AddCommand("tag", "Tag an event", "Set the tag of an event, replacing any previous tag. Usage: tag <id> <tag>", cmds.Tag)
	parser.AddCommand("timeline", "Show one day of activity", "Show every event of a local calendar day (YYYY-MM-DD, default today), oldest first.", cmds.Timeline)
	parser.AddCommand("blacklist", "Show or edit the blacklist", "Show or edit the application names that are never recorded. Matching is a case-insensitive substring test.", cmds.Blacklist)
	parser.AddCommand("recent", "Show or save recent searches", "Show the 10 most recent searches, or save one.", cmds.Recent)
	parser.AddCommand("reindex", "Rebuild the search index", "Rebuild the full-text index from recorded events.", cmds.Reindex)
	parser.AddCommand("status", "Show database statistics", "Show database location, size, event counts, and settings summary.", cmds.Status)

	return parser, &globals, cmds
}

// Run is the main entry point for the focuslog CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("focuslog %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
