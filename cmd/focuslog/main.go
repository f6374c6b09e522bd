// Command focuslog records which application and window have focus and
// answers questions about that history.
//
// Usage:
//
//	focuslog record               Sample the focused window until interrupted
//	focuslog search <query>       Search recorded activity
//	focuslog timeline [date]      Show one day of activity
//	focuslog stats                Show most used applications
package main

import (
	"os"

	"github.com/runnerr0/focuslog/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		os.Exit(1)
	}
}
