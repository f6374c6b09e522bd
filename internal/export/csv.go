// Package export serializes events for use outside the store.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/runnerr0/focuslog/internal/storage"
)

// Header is the first CSV row.
var Header = []string{"ID", "Timestamp", "App", "Title", "Tags"}

// WriteCSV writes a header row followed by one row per event. An event
// without a tag gets an empty Tags field.
func WriteCSV(w io.Writer, events []storage.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, e := range events {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			storage.FormatTimestamp(e.Timestamp),
			e.App,
			e.Title,
			e.Tags,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSV returns the events as CSV text.
func CSV(events []storage.Event) (string, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, events); err != nil {
		return "", err
	}
	return buf.String(), nil
}
