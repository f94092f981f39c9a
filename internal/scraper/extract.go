package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/course-events/internal/event"
)

// extract turns one candidate link node into an Event. A nil, nil return
// means the node carries no href and is not an event. Panics from malformed
// markup are converted to errors so one bad candidate cannot abort the run.
func (s *Scraper) extract(sel *goquery.Selection, baseURL string) (evt *event.Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			evt, err = nil, fmt.Errorf("extracting event data: %v", r)
		}
	}()

	href, ok := sel.Attr("href")
	if !ok || href == "" {
		return nil, nil
	}

	id, link, err := event.Normalize(href, baseURL)
	if err != nil {
		return nil, fmt.Errorf("normalizing link: %w", err)
	}

	return event.NewEvent(id, link, s.resolveTitle(sel), s.resolveDate(sel)), nil
}

// resolveTitle tries each title strategy in order, first non-empty wins:
// nearest-ancestor match of the title selector, then the link's own text.
// The fixed placeholder fallback lives in event.NewEvent.
func (s *Scraper) resolveTitle(sel *goquery.Selection) string {
	strategies := []func() string{
		func() string {
			if match := findInAncestors(sel, s.titleSel); match != nil {
				return strings.TrimSpace(match.Text())
			}
			return ""
		},
		func() string {
			return strings.TrimSpace(sel.Text())
		},
	}
	for _, strategy := range strategies {
		if title := strategy(); title != "" {
			return title
		}
	}
	return ""
}

// resolveDate searches ancestors for a date node, preferring a
// machine-readable datetime attribute over display text.
func (s *Scraper) resolveDate(sel *goquery.Selection) string {
	match := findInAncestors(sel, s.dateSel)
	if match == nil {
		return ""
	}
	if dt, ok := match.Attr("datetime"); ok && dt != "" {
		return dt
	}
	return strings.TrimSpace(match.Text())
}

// findInAncestors walks enclosing ancestors from nearest to furthest and
// returns the first match of m inside an ancestor subtree, or nil. Titles
// and dates are assumed to share an enclosing container with the
// registration link rather than living elsewhere on the page.
func findInAncestors(sel *goquery.Selection, m goquery.Matcher) *goquery.Selection {
	var found *goquery.Selection
	sel.Parents().EachWithBreak(func(_ int, ancestor *goquery.Selection) bool {
		match := ancestor.FindMatcher(m).First()
		if match.Length() > 0 {
			found = match
			return false
		}
		return true
	})
	return found
}
