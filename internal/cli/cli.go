package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/course-events/internal/config"
	"github.com/pfrederiksen/course-events/internal/event"
	"github.com/pfrederiksen/course-events/internal/feed"
	"github.com/pfrederiksen/course-events/internal/logger"
	"github.com/pfrederiksen/course-events/internal/notifier"
	"github.com/pfrederiksen/course-events/internal/scraper"
	"github.com/pfrederiksen/course-events/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagTargetURL  string
	flagStateFile  string
	flagFeedFile   string
	flagWebhookURL string
	flagFormat     string
	flagDryRun     bool
	flagVerbose    bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course-events",
		Short: "Check for newly opened course registrations",
		Long: `Checks a course listing page for newly opened registrations.
New events are deduplicated against a persisted seen-set, prepended to an
RSS feed, and optionally posted to a webhook. Configuration comes from
environment variables (TARGET_URL, REG_LINK_SELECTOR, TITLE_SELECTOR,
DATE_SELECTOR, STATE_FILE, FEED_FILE, WEBHOOK_URL, USER_AGENT,
REQUEST_TIMEOUT); flags override the environment.`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&flagTargetURL, "target-url", "", "Course listing page URL (overrides TARGET_URL)")
	cmd.Flags().StringVar(&flagStateFile, "state-file", "", "Seen-set state file path (overrides STATE_FILE)")
	cmd.Flags().StringVar(&flagFeedFile, "feed-file", "", "RSS feed file path (overrides FEED_FILE)")
	cmd.Flags().StringVar(&flagWebhookURL, "webhook-url", "", "Webhook URL for new events (overrides WEBHOOK_URL)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report new events without notifying, publishing, or saving state")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runCheck is the main command logic
func runCheck(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("Starting course events check", logger.Fields{
		"target_url":    cfg.TargetURL,
		"link_selector": cfg.Selectors.Link,
		"state_file":    cfg.StateFile,
		"feed_file":     cfg.FeedFile,
		"webhook":       cfg.WebhookURL != "",
		"dry_run":       flagDryRun,
	})

	sc, err := scraper.New(cfg)
	if err != nil {
		return fmt.Errorf("initializing scraper: %w", err)
	}

	events, err := sc.FetchEvents(context.Background())
	if err != nil {
		return fmt.Errorf("fetching events: %w", err)
	}

	store := storage.New(cfg.StateFile)
	seen := store.Load()
	logger.Debug("Loaded seen-set", logger.Fields{"size": len(seen)})

	newEvents := event.Diff(events, seen)
	logger.Info("Diff complete", logger.Fields{
		"extracted": len(events),
		"new":       len(newEvents),
	})
	logger.AddCounter("events.new", int64(len(newEvents)))

	if flagDryRun {
		if len(newEvents) > 0 {
			_ = notifier.NewDryRunNotifier().Notify(newEvents)
		}
		return writeResult(newEvents, format, true)
	}

	// Notifications fire before the feed and seen-set writes, so a fatal
	// write aborts after some may have been sent: at-least-once delivery.
	if cfg.WebhookURL != "" && len(newEvents) > 0 {
		wh := notifier.NewWebhookNotifier(cfg.WebhookURL, cfg.Timeout)
		if err := wh.Notify(newEvents); err != nil {
			return fmt.Errorf("notifying webhook: %w", err)
		}
	}

	publisher := feed.New(cfg)
	if err := publisher.Publish(newEvents); err != nil {
		return fmt.Errorf("publishing feed: %w", err)
	}

	for _, evt := range newEvents {
		seen.Add(evt.ID)
	}
	// Saved even with zero new events so the state file always exists and
	// is well-formed for the next run.
	if err := store.Save(seen); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}

	logger.Debug("Run metrics", logger.Fields{"metrics": logger.MetricsSnapshot()})

	return writeResult(newEvents, format, false)
}

func writeResult(newEvents []*event.Event, format OutputFormat, dryRun bool) error {
	result := &OutputResult{
		CheckedAt:  time.Now().UTC(),
		NewEvents:  newEvents,
		EventCount: len(newEvents),
		DryRun:     dryRun,
	}
	if err := WriteOutput(os.Stdout, result, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func applyFlagOverrides(cfg *config.Config) {
	if flagTargetURL != "" {
		cfg.TargetURL = flagTargetURL
	}
	if flagStateFile != "" {
		cfg.StateFile = flagStateFile
	}
	if flagFeedFile != "" {
		cfg.FeedFile = flagFeedFile
	}
	if flagWebhookURL != "" {
		cfg.WebhookURL = flagWebhookURL
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
