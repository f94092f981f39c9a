package event

// SeenSet is the set of event identities classified as new in any prior run.
type SeenSet map[string]struct{}

// NewSeenSet creates an empty seen-set.
func NewSeenSet() SeenSet {
	return make(SeenSet)
}

// Add records an identity as seen.
func (s SeenSet) Add(id string) {
	s[id] = struct{}{}
}

// Contains reports whether an identity has been seen before.
func (s SeenSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Diff returns the events whose identity is not in seen, preserving the
// page order of the input. The seen-set is not mutated; the caller adds
// identities only after downstream processing succeeds, so a publish
// failure never silently marks an event as seen.
func Diff(events []*Event, seen SeenSet) []*Event {
	newEvents := make([]*Event, 0, len(events))
	for _, evt := range events {
		if !seen.Contains(evt.ID) {
			newEvents = append(newEvents, evt)
		}
	}
	return newEvents
}
