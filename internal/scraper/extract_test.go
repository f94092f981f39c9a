package scraper

import (
	"strings"
	"testing"

	"github.com/pfrederiksen/course-events/internal/event"
)

func parseOne(t *testing.T, html string) *event.Event {
	t.Helper()

	s := newTestScraper(t, "https://x.org/courses/")
	events, err := s.Parse(strings.NewReader(html), "https://x.org/courses/")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	return events[0]
}

func TestTitleFallsBackToLinkText(t *testing.T) {
	evt := parseOne(t, `
		<html><body>
		<div><p><a class="register" href="/reg">  Sign up here  </a></p></div>
		</body></html>`)

	if evt.Title != "Sign up here" {
		t.Errorf("Title = %q, expected trimmed link text %q", evt.Title, "Sign up here")
	}
	if evt.Date != event.DateTBD {
		t.Errorf("Date = %q, expected %q", evt.Date, event.DateTBD)
	}
}

func TestTitleAndDateFallBackToPlaceholders(t *testing.T) {
	// No title anywhere in the ancestors and an empty link text.
	evt := parseOne(t, `
		<html><body>
		<div><a class="register" href="/reg"></a></div>
		</body></html>`)

	if evt.Title != event.UntitledTitle {
		t.Errorf("Title = %q, expected %q", evt.Title, event.UntitledTitle)
	}
	if evt.Date != event.DateTBD {
		t.Errorf("Date = %q, expected %q", evt.Date, event.DateTBD)
	}
}

func TestNearestAncestorWins(t *testing.T) {
	// Both the card and the page carry a headline; the card's is nearer.
	evt := parseOne(t, `
		<html><body>
		<h5 class="headline">Page Banner</h5>
		<div class="card">
			<h5 class="headline">Card Title</h5>
			<p><a class="register" href="/reg">Register</a></p>
		</div>
		</body></html>`)

	if evt.Title != "Card Title" {
		t.Errorf("Title = %q, expected nearest ancestor match %q", evt.Title, "Card Title")
	}
}

func TestDatetimeAttributePreferred(t *testing.T) {
	evt := parseOne(t, `
		<html><body>
		<div>
			<time datetime="2025-05-01">May 1st, 2025</time>
			<a class="register" href="/reg">Register</a>
		</div>
		</body></html>`)

	if evt.Date != "2025-05-01" {
		t.Errorf("Date = %q, expected datetime attribute %q", evt.Date, "2025-05-01")
	}
}

func TestEmptyDatetimeAttributeUsesText(t *testing.T) {
	evt := parseOne(t, `
		<html><body>
		<div>
			<time datetime="">May 1st, 2025</time>
			<a class="register" href="/reg">Register</a>
		</div>
		</body></html>`)

	if evt.Date != "May 1st, 2025" {
		t.Errorf("Date = %q, expected text content %q", evt.Date, "May 1st, 2025")
	}
}

func TestCandidateWithoutHrefIsSkipped(t *testing.T) {
	s := newTestScraper(t, "https://x.org/")
	events, err := s.Parse(strings.NewReader(`
		<html><body>
		<div><a class="register">No href</a></div>
		<div><a class="register" href="">Empty href</a></div>
		<div><a class="register" href="/ok">Good</a></div>
		</body></html>`), "https://x.org/")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID != "https://x.org/ok" {
		t.Errorf("ID = %q, expected %q", events[0].ID, "https://x.org/ok")
	}
}

func TestMalformedCandidateDoesNotAbortRun(t *testing.T) {
	// A href that fails URL parsing drops that candidate only.
	s := newTestScraper(t, "https://x.org/")
	events, err := s.Parse(strings.NewReader(`
		<html><body>
		<div><a class="register" href="https://x.org/a%zz">Broken</a></div>
		<div><a class="register" href="/ok">Good</a></div>
		</body></html>`), "https://x.org/")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID != "https://x.org/ok" {
		t.Errorf("ID = %q, expected %q", events[0].ID, "https://x.org/ok")
	}
}
