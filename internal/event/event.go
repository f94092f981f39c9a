package event

import (
	"fmt"
	"net/url"
	"time"
)

// Fallback values used when the page markup yields no usable title or date.
const (
	UntitledTitle = "Untitled Event"
	DateTBD       = "Date TBD"
)

// Event represents a course registration opening discovered on the target page
type Event struct {
	ID        string    `json:"id"`   // canonical absolute URL, query/fragment stripped
	Link      string    `json:"link"` // full absolute URL as found on the page
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	FirstSeen time.Time `json:"first_seen"`
}

// NewEvent creates an Event with FirstSeen populated. Title and Date fall
// back to fixed placeholders so an Event never carries empty display fields.
func NewEvent(id, link, title, date string) *Event {
	if title == "" {
		title = UntitledTitle
	}
	if date == "" {
		date = DateTBD
	}
	return &Event{
		ID:        id,
		Link:      link,
		Title:     title,
		Date:      date,
		FirstSeen: time.Now().UTC(),
	}
}

// Normalize resolves rawHref against baseURL and derives the event identity.
// The identity is the absolute URL with query string and fragment removed,
// so two links differing only in query/fragment collapse to one identity.
// The returned link keeps query and fragment for display and navigation.
func Normalize(rawHref, baseURL string) (id, link string, err error) {
	if rawHref == "" {
		return "", "", fmt.Errorf("empty href")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return "", "", fmt.Errorf("parsing base URL: %w", err)
	}

	ref, err := url.Parse(rawHref)
	if err != nil {
		return "", "", fmt.Errorf("parsing href %q: %w", rawHref, err)
	}

	abs := base.ResolveReference(ref)
	link = abs.String()

	stable := *abs
	stable.RawQuery = ""
	stable.Fragment = ""
	stable.RawFragment = ""
	id = stable.String()

	return id, link, nil
}
