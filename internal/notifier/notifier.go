package notifier

import (
	"github.com/pfrederiksen/course-events/internal/event"
)

// Notifier defines the interface for announcing new events
type Notifier interface {
	// Notify announces the given events
	Notify(events []*event.Event) error
}
