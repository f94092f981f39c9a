package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/pfrederiksen/course-events/internal/config"
	"github.com/pfrederiksen/course-events/internal/event"
	"github.com/pfrederiksen/course-events/internal/logger"
)

// Scraper fetches the course listing page and extracts registration events
type Scraper struct {
	client    *http.Client
	url       string
	userAgent string

	// Selectors are compiled once so an invalid selector fails at
	// construction instead of on every candidate node.
	linkSel  cascadia.Selector
	titleSel cascadia.Selector
	dateSel  cascadia.Selector
}

// New creates a Scraper from the run configuration.
func New(cfg *config.Config) (*Scraper, error) {
	linkSel, err := cascadia.Compile(cfg.Selectors.Link)
	if err != nil {
		return nil, fmt.Errorf("compiling link selector: %w", err)
	}
	titleSel, err := cascadia.Compile(cfg.Selectors.Title)
	if err != nil {
		return nil, fmt.Errorf("compiling title selector: %w", err)
	}
	dateSel, err := cascadia.Compile(cfg.Selectors.Date)
	if err != nil {
		return nil, fmt.Errorf("compiling date selector: %w", err)
	}

	return &Scraper{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		url:       cfg.TargetURL,
		userAgent: cfg.UserAgent,
		linkSel:   linkSel,
		titleSel:  titleSel,
		dateSel:   dateSel,
	}, nil
}

// FetchEvents fetches the target page and extracts all registration events
// in document order. A fetch failure is fatal to the run.
func (s *Scraper) FetchEvents(ctx context.Context) ([]*event.Event, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	logger.RecordTiming("scraper.fetch", time.Since(start))

	return s.Parse(resp.Body, s.url)
}

// Parse extracts registration events from HTML. Candidate link nodes are
// located with the configured link selector in document order; a failure
// extracting one candidate drops that candidate only.
func (s *Scraper) Parse(r io.Reader, baseURL string) ([]*event.Event, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	links := doc.FindMatcher(s.linkSel)
	logger.Info("Located registration links", logger.Fields{
		"count": links.Length(),
		"url":   baseURL,
	})
	logger.AddCounter("scraper.candidates", int64(links.Length()))

	events := make([]*event.Event, 0, links.Length())
	links.Each(func(i int, sel *goquery.Selection) {
		evt, err := s.extract(sel, baseURL)
		if err != nil {
			logger.Warn("Skipping candidate link", logger.Fields{
				"index": i,
				"error": err.Error(),
			})
			return
		}
		if evt == nil {
			// Candidate without an href; not an event.
			return
		}
		events = append(events, evt)
	})

	logger.Info("Extracted events", logger.Fields{"count": len(events)})
	logger.AddCounter("scraper.extracted", int64(len(events)))

	return events, nil
}
