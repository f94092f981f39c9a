package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TARGET_URL", "REG_LINK_SELECTOR", "TITLE_SELECTOR", "DATE_SELECTOR",
		"STATE_FILE", "FEED_FILE", "WEBHOOK_URL", "USER_AGENT",
		"REQUEST_TIMEOUT", "FEED_TITLE", "FEED_DESCRIPTION",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TargetURL != DefaultTargetURL {
		t.Errorf("TargetURL = %q, expected default", cfg.TargetURL)
	}
	if cfg.Selectors.Link != DefaultLinkSelector {
		t.Errorf("link selector = %q, expected default", cfg.Selectors.Link)
	}
	if cfg.StateFile != DefaultStateFile {
		t.Errorf("StateFile = %q, expected %q", cfg.StateFile, DefaultStateFile)
	}
	if cfg.FeedFile != DefaultFeedFile {
		t.Errorf("FeedFile = %q, expected %q", cfg.FeedFile, DefaultFeedFile)
	}
	if cfg.WebhookURL != "" {
		t.Errorf("WebhookURL = %q, expected empty", cfg.WebhookURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, expected %v", cfg.Timeout, DefaultTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TARGET_URL", "https://x.org/courses/")
	t.Setenv("REG_LINK_SELECTOR", "a.register")
	t.Setenv("TITLE_SELECTOR", "h2.title")
	t.Setenv("DATE_SELECTOR", "time")
	t.Setenv("STATE_FILE", "/tmp/state.json")
	t.Setenv("FEED_FILE", "/tmp/feed.xml")
	t.Setenv("WEBHOOK_URL", "https://hooks.example.org/x")
	t.Setenv("REQUEST_TIMEOUT", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TargetURL != "https://x.org/courses/" {
		t.Errorf("TargetURL = %q", cfg.TargetURL)
	}
	if cfg.Selectors.Link != "a.register" {
		t.Errorf("link selector = %q", cfg.Selectors.Link)
	}
	if cfg.Selectors.Title != "h2.title" {
		t.Errorf("title selector = %q", cfg.Selectors.Title)
	}
	if cfg.WebhookURL != "https://hooks.example.org/x" {
		t.Errorf("WebhookURL = %q", cfg.WebhookURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, expected 10s", cfg.Timeout)
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	for _, bad := range []string{"abc", "-5", "0"} {
		t.Run(bad, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("REQUEST_TIMEOUT", bad)

			if _, err := Load(); err == nil {
				t.Errorf("expected error for REQUEST_TIMEOUT=%q", bad)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			TargetURL: "https://x.org/courses/",
			Selectors: Selectors{
				Link:  "a.register",
				Title: "h2.title",
				Date:  "time, .date",
			},
			StateFile: "seen.json",
			FeedFile:  "feed.xml",
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("Validate failed: %v", err)
		}
	})

	t.Run("empty selector is rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Selectors.Title = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for empty title selector")
		}
	})

	t.Run("malformed selector is rejected", func(t *testing.T) {
		cfg := valid()
		cfg.Selectors.Link = "a[unclosed"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for malformed link selector")
		}
	})

	t.Run("empty target URL is rejected", func(t *testing.T) {
		cfg := valid()
		cfg.TargetURL = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for empty target URL")
		}
	})

	t.Run("empty state file path is rejected", func(t *testing.T) {
		cfg := valid()
		cfg.StateFile = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for empty state file path")
		}
	})
}
