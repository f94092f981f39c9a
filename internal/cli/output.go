package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/course-events/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time      `json:"checked_at"`
	NewEvents  []*event.Event `json:"new_events"`
	EventCount int            `json:"event_count"`
	DryRun     bool           `json:"dry_run,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text, in page order
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.EventCount == 0 {
		fmt.Fprintln(w, "No new events found.")
		return nil
	}

	for _, evt := range result.NewEvents {
		fmt.Fprintf(w, "NEW: %s (%s)\n", evt.Title, evt.Date)
		fmt.Fprintf(w, "     %s\n", evt.Link)
		if verbose {
			fmt.Fprintf(w, "     ID: %s\n", evt.ID)
		}
	}

	label := "new event"
	if result.EventCount != 1 {
		label = "new events"
	}
	fmt.Fprintf(w, "\nTotal: %d %s\n", result.EventCount, label)
	return nil
}
