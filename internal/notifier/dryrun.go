package notifier

import (
	"fmt"

	"github.com/pfrederiksen/course-events/internal/event"
)

// DryRunNotifier prints what would be announced without sending anything
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the events that would be announced
func (n *DryRunNotifier) Notify(events []*event.Event) error {
	for i, evt := range events {
		fmt.Printf("--- Event %d/%d ---\n", i+1, len(events))
		fmt.Printf("Title: %s\n", evt.Title)
		fmt.Printf("Date: %s\n", evt.Date)
		fmt.Printf("Link: %s\n", evt.Link)
		fmt.Printf("ID: %s\n\n", evt.ID)
	}
	return nil
}
