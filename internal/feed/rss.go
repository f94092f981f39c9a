package feed

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/course-events/internal/config"
	"github.com/pfrederiksen/course-events/internal/event"
	"github.com/pfrederiksen/course-events/internal/logger"
)

// rfc822Layout is the RSS 2.0 pubDate format. Timestamps are always UTC,
// so the zone is a literal +0000.
const rfc822Layout = "Mon, 02 Jan 2006 15:04:05 +0000"

// Publisher renders new events as RSS 2.0 items prepended to the existing
// feed file.
type Publisher struct {
	Title       string
	Link        string
	Description string
	Path        string

	// Now is the clock for pubDate/lastBuildDate; defaults to time.Now.
	Now func() time.Time
}

// New creates a Publisher from the run configuration.
func New(cfg *config.Config) *Publisher {
	return &Publisher{
		Title:       cfg.FeedTitle,
		Link:        cfg.TargetURL,
		Description: cfg.FeedDescription,
		Path:        cfg.FeedFile,
	}
}

// Publish prepends newEvents to the feed file. With no new events it does
// nothing: no file is created from nothing and an existing feed is left
// untouched. A write failure must be treated as fatal by the caller.
func (p *Publisher) Publish(newEvents []*event.Event) error {
	if len(newEvents) == 0 {
		return nil
	}

	existing := ""
	data, err := os.ReadFile(p.Path)
	switch {
	case err == nil:
		existing = string(data)
	case !os.IsNotExist(err):
		logger.Warn("Could not read existing feed", logger.Fields{
			"path":  p.Path,
			"error": err.Error(),
		})
	}

	content := p.Render(newEvents, existing)

	if err := os.WriteFile(p.Path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing feed file: %w", err)
	}

	logger.Info("Updated RSS feed", logger.Fields{
		"path":      p.Path,
		"new_items": len(newEvents),
	})
	return nil
}

// Render produces the full feed content: new events as items, most recently
// discovered first, followed by all items recovered from existing.
func (p *Publisher) Render(newEvents []*event.Event, existing string) string {
	now := p.now()
	pubDate := now.UTC().Format(rfc822Layout)

	items := make([]string, 0, len(newEvents))
	for i := len(newEvents) - 1; i >= 0; i-- {
		items = append(items, renderItem(newEvents[i], pubDate))
	}
	items = append(items, extractItems(existing)...)

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<rss version=\"2.0\">\n")
	b.WriteString("  <channel>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", escapeXML(p.Title))
	fmt.Fprintf(&b, "    <link>%s</link>\n", escapeXML(p.Link))
	fmt.Fprintf(&b, "    <description>%s</description>\n", escapeXML(p.Description))
	fmt.Fprintf(&b, "    <lastBuildDate>%s</lastBuildDate>\n", now.UTC().Format(rfc822Layout))
	for _, item := range items {
		b.WriteString(item)
		b.WriteString("\n")
	}
	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")
	return b.String()
}

func (p *Publisher) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// renderItem renders one event as an RSS item. The guid is the event's
// absolute link, which is permanent and globally unique.
func renderItem(evt *event.Event, pubDate string) string {
	var b strings.Builder
	b.WriteString("  <item>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", escapeXML(evt.Title))
	fmt.Fprintf(&b, "    <link>%s</link>\n", escapeXML(evt.Link))
	fmt.Fprintf(&b, "    <description>%s</description>\n", escapeXML("Registration Date: "+evt.Date))
	fmt.Fprintf(&b, "    <pubDate>%s</pubDate>\n", pubDate)
	fmt.Fprintf(&b, "    <guid isPermaLink=\"true\">%s</guid>\n", escapeXML(evt.Link))
	b.WriteString("  </item>")
	return b.String()
}

// extractItems recovers prior item blocks from existing feed content by
// splitting on the closing-tag literal. Deliberately tolerant and lossy:
// malformed or hand-edited content degrades to fewer (or zero) recovered
// items rather than failing the run.
func extractItems(content string) []string {
	if content == "" {
		return nil
	}

	var items []string
	parts := strings.Split(content, "</item>")
	for _, part := range parts[:len(parts)-1] {
		start := strings.Index(part, "<item>")
		if start < 0 {
			continue
		}
		items = append(items, part[start:]+"</item>")
	}
	return items
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
