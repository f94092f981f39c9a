package notifier

import (
	"strings"
	"testing"

	"github.com/pfrederiksen/course-events/internal/event"
)

func TestFormatTweet(t *testing.T) {
	t.Run("includes title, date and link", func(t *testing.T) {
		evt := event.NewEvent("https://x.org/reg", "https://x.org/reg?s=1", "Intro Bio", "2025-05-01")

		tweet := formatTweet(evt)
		if !strings.Contains(tweet, "Intro Bio") {
			t.Error("expected tweet to contain the title")
		}
		if !strings.Contains(tweet, "2025-05-01") {
			t.Error("expected tweet to contain the date")
		}
		if !strings.Contains(tweet, "https://x.org/reg?s=1") {
			t.Error("expected tweet to contain the link")
		}
	})

	t.Run("omits placeholder date", func(t *testing.T) {
		evt := event.NewEvent("https://x.org/reg", "https://x.org/reg", "Intro Bio", "")

		tweet := formatTweet(evt)
		if strings.Contains(tweet, event.DateTBD) {
			t.Error("expected tweet to omit the date placeholder")
		}
	})

	t.Run("stays within the character limit", func(t *testing.T) {
		evt := event.NewEvent(
			"https://x.org/reg",
			"https://x.org/reg",
			strings.Repeat("Very Long Course Title ", 20),
			"2025-05-01",
		)

		tweet := formatTweet(evt)
		if len(tweet) > 280 {
			t.Errorf("tweet length %d exceeds 280", len(tweet))
		}
	})
}

func TestNewTwitterNotifierMissingCredentials(t *testing.T) {
	for _, key := range []string{
		"TWITTER_API_KEY", "TWITTER_API_SECRET",
		"TWITTER_ACCESS_TOKEN", "TWITTER_ACCESS_SECRET",
	} {
		t.Setenv(key, "")
	}

	if _, err := NewTwitterNotifier(); err == nil {
		t.Error("expected error when credentials are missing")
	}
}
