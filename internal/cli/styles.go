package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/runnerr0/focuslog/internal/storage"
)

var (
	colorText     = lipgloss.Color("#e0def4")
	colorSubtext  = lipgloss.Color("#908caa")
	colorLavender = lipgloss.Color("#c4a7e7")
	colorGreen    = lipgloss.Color("#9ccfd8")
	colorPeach    = lipgloss.Color("#f6c177")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	idStyle     = lipgloss.NewStyle().Foreground(colorSubtext)
	timeStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	appStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	tagStyle    = lipgloss.NewStyle().Foreground(colorPeach)
	dimStyle    = lipgloss.NewStyle().Foreground(colorSubtext)
)

const displayTimeLayout = "2006-01-02 15:04:05"

// formatEventLine renders one event for terminal output, in local time.
func formatEventLine(e storage.Event) string {
	var b strings.Builder
	b.WriteString(idStyle.Render(fmt.Sprintf("#%-6d", e.ID)))
	b.WriteString(" ")
	b.WriteString(timeStyle.Render(e.Timestamp.Local().Format(displayTimeLayout)))
	b.WriteString("  ")
	b.WriteString(appStyle.Render(e.App))
	if e.Title != "" {
		b.WriteString(dimStyle.Render(" · "))
		b.WriteString(e.Title)
	}
	if e.Tags != "" {
		b.WriteString(" ")
		b.WriteString(tagStyle.Render("[" + e.Tags + "]"))
	}
	return b.String()
}

func printEvents(events []storage.Event) {
	for _, e := range events {
		fmt.Println(formatEventLine(e))
	}
}
