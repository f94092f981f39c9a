package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/joho/godotenv"
)

// Defaults match the public EUGLOH course listing this tool was built for.
const (
	DefaultTargetURL = "https://www.eugloh.eu/courses-trainings/?openRegistrations=%5Byes%5D"

	// DefaultLinkSelector locates registration link buttons on the listing page.
	DefaultLinkSelector  = "div.buttons-wrap:nth-child(3) > div:nth-child(1) > p:nth-child(1) > a:nth-child(1)"
	DefaultTitleSelector = "h5.headline"
	DefaultDateSelector  = "time, .date"

	DefaultStateFile       = "seen.json"
	DefaultFeedFile        = "feed.xml"
	DefaultUserAgent       = "Mozilla/5.0 (compatible; Course-Events-Bot/1.0)"
	DefaultTimeout         = 30 * time.Second
	DefaultFeedTitle       = "EUGLOH Course Events"
	DefaultFeedDescription = "New course registration opportunities from EUGLOH"
)

// Selectors holds the three structural queries interpreted against the page.
// They are data, not code: externally supplied strings validated only for
// non-emptiness and CSS syntax.
type Selectors struct {
	Link  string
	Title string
	Date  string
}

// Config is the immutable per-run configuration, loaded once at startup and
// passed to the core components.
type Config struct {
	TargetURL string
	Selectors Selectors

	StateFile  string
	FeedFile   string
	WebhookURL string

	UserAgent string
	Timeout   time.Duration

	FeedTitle       string
	FeedDescription string
}

// Load builds a Config from environment variables, falling back to defaults.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	// Best effort; absence of a .env file is the normal case.
	_ = godotenv.Load()

	c := &Config{
		TargetURL: getEnv("TARGET_URL", DefaultTargetURL),
		Selectors: Selectors{
			Link:  getEnv("REG_LINK_SELECTOR", DefaultLinkSelector),
			Title: getEnv("TITLE_SELECTOR", DefaultTitleSelector),
			Date:  getEnv("DATE_SELECTOR", DefaultDateSelector),
		},
		StateFile:       getEnv("STATE_FILE", DefaultStateFile),
		FeedFile:        getEnv("FEED_FILE", DefaultFeedFile),
		WebhookURL:      os.Getenv("WEBHOOK_URL"),
		UserAgent:       getEnv("USER_AGENT", DefaultUserAgent),
		Timeout:         DefaultTimeout,
		FeedTitle:       getEnv("FEED_TITLE", DefaultFeedTitle),
		FeedDescription: getEnv("FEED_DESCRIPTION", DefaultFeedDescription),
	}

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT %q: must be a positive number of seconds", v)
		}
		c.Timeout = time.Duration(secs) * time.Second
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks that required fields are present and that the structural
// selectors compile. An invalid selector fails the run at startup rather
// than on every candidate node.
func (c *Config) Validate() error {
	if c.TargetURL == "" {
		return fmt.Errorf("target URL must not be empty")
	}
	for _, sel := range []struct {
		name, value string
	}{
		{"link", c.Selectors.Link},
		{"title", c.Selectors.Title},
		{"date", c.Selectors.Date},
	} {
		if sel.value == "" {
			return fmt.Errorf("%s selector must not be empty", sel.name)
		}
		if _, err := cascadia.Compile(sel.value); err != nil {
			return fmt.Errorf("invalid %s selector %q: %w", sel.name, sel.value, err)
		}
	}
	if c.StateFile == "" {
		return fmt.Errorf("state file path must not be empty")
	}
	if c.FeedFile == "" {
		return fmt.Errorf("feed file path must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
