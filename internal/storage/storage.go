package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/pfrederiksen/course-events/internal/event"
	"github.com/pfrederiksen/course-events/internal/logger"
)

// Store persists the seen-set as a JSON array of identity strings.
type Store struct {
	path string
}

// New creates a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted seen-set. An absent file is the normal first-run
// case and yields an empty set; an unreadable or corrupt file also yields an
// empty set with a warning, never an error. Losing dedup history on read is
// recoverable (events get re-announced once); failing the run is not.
func (s *Store) Load() event.SeenSet {
	seen := event.NewSeenSet()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Could not read state file", logger.Fields{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return seen
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		logger.Warn("Could not parse state file", logger.Fields{
			"path":  s.path,
			"error": err.Error(),
		})
		return seen
	}

	for _, id := range ids {
		seen.Add(id)
	}
	return seen
}

// Save writes the full seen-set, replacing prior content. Identities are
// written sorted for deterministic diffs of the state file. A write failure
// must be treated as fatal by the caller: continuing would silently lose
// dedup history and re-announce every event on the next run.
func (s *Store) Save(seen event.SeenSet) error {
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}

	return nil
}
