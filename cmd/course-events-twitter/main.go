// Command course-events-twitter posts tweets for new course events.
//
// It consumes the JSON output of a course-events check run, either from a
// file or stdin, so scheduled jobs can pipe the two commands together.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/course-events/internal/event"
	"github.com/pfrederiksen/course-events/internal/notifier"
)

var (
	eventsFile = flag.String("events-file", "", "Path to check-run JSON output (or read from stdin)")
	dryRun     = flag.Bool("dry-run", false, "Print tweets without posting")
	maxTweets  = flag.Int("max-tweets", 10, "Maximum number of tweets to post")
)

func main() {
	flag.Parse()

	var reader io.Reader
	if *eventsFile != "" {
		f, err := os.Open(*eventsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening events file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		reader = f
	} else {
		reader = os.Stdin
	}

	var result struct {
		NewEvents []*event.Event `json:"new_events"`
	}
	if err := json.NewDecoder(reader).Decode(&result); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	events := result.NewEvents
	if len(events) == 0 {
		fmt.Println("No new events to tweet")
		os.Exit(0)
	}

	if len(events) > *maxTweets {
		events = events[:*maxTweets]
	}

	var tw notifier.Notifier
	if *dryRun {
		tw = notifier.NewDryRunNotifier()
		fmt.Printf("DRY RUN MODE - Would tweet %d events:\n\n", len(events))
	} else {
		client, err := notifier.NewTwitterNotifier()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Twitter client: %v\n", err)
			os.Exit(1)
		}
		tw = client
	}

	if err := tw.Notify(events); err != nil {
		fmt.Fprintf(os.Stderr, "Error posting tweets: %v\n", err)
		os.Exit(1)
	}

	if !*dryRun {
		fmt.Printf("Successfully posted %d tweets\n", len(events))
	}
}
