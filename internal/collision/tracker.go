// Package collision tracks shape names while a shape set is built.
package collision

import (
	"fmt"

	"github.com/arloliu/polycode/errs"
)

// Tracker records the name behind every shape ID and notices when two names share one.
//
// A collision is not an error: the shape set stores the names payload and lookups by
// name stay exact. Adding the same name twice is.
type Tracker struct {
	ids       map[uint64]struct{}
	seen      map[string]struct{}
	names     []string
	collision bool
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		ids:   make(map[uint64]struct{}),
		seen:  make(map[string]struct{}),
		names: make([]string, 0),
	}
}

// Track records name under id.
//
// Returns:
//   - error: errs.ErrInvalidShapeName for an empty name, errs.ErrShapeAlreadyAdded for
//     a name already tracked
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidShapeName
	}

	if _, ok := t.seen[name]; ok {
		return fmt.Errorf("%w: %q", errs.ErrShapeAlreadyAdded, name)
	}
	if _, ok := t.ids[id]; ok {
		t.collision = true
	}

	t.ids[id] = struct{}{}
	t.seen[name] = struct{}{}
	t.names = append(t.names, name)

	return nil
}

// HasCollision reports whether two tracked names share an ID.
func (t *Tracker) HasCollision() bool {
	return t.collision
}

// Names returns the tracked names in the order they were added.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears the tracker for reuse.
func (t *Tracker) Reset() {
	clear(t.ids)
	clear(t.seen)
	t.names = t.names[:0]
	t.collision = false
}
