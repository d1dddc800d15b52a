package shapeset

import (
	"errors"
	"fmt"
	"iter"

	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/shape"
)

// Collection looks shapes up across several sets.
//
// Sets are searched in the order given, so an ID or name present in more than one set
// resolves to the earliest set. A typical use is a base library followed by overlays.
type Collection struct {
	sets []*Set
}

// NewCollection creates a Collection over sets. It fails when sets is empty.
func NewCollection(sets ...*Set) (*Collection, error) {
	if len(sets) == 0 {
		return nil, errors.New("cannot create Collection with no sets")
	}

	for i, s := range sets {
		if s == nil {
			return nil, fmt.Errorf("set %d is nil", i)
		}
	}

	return &Collection{sets: append([]*Set(nil), sets...)}, nil
}

// Len returns the total number of shapes, counting shadowed ones.
func (c *Collection) Len() int {
	n := 0
	for _, s := range c.sets {
		n += s.Len()
	}

	return n
}

// Has reports whether any set holds id.
func (c *Collection) Has(id uint64) bool {
	_, ok := c.find(id)
	return ok
}

// Shape decodes the shape with id from the first set holding it.
func (c *Collection) Shape(id uint64) ([]shape.Coord, error) {
	s, ok := c.find(id)
	if !ok {
		return nil, fmt.Errorf("%w: id 0x%016x", errs.ErrShapeNotFound, id)
	}

	return s.Shape(id)
}

// ShapeByName decodes the shape named name from the first set holding it.
func (c *Collection) ShapeByName(name string) ([]shape.Coord, error) {
	for _, s := range c.sets {
		if s.HasName(name) {
			return s.ShapeByName(name)
		}
	}

	return nil, fmt.Errorf("%w: %q", errs.ErrShapeNotFound, name)
}

// All iterates over (ID, encoded bytes) of every set in order, skipping IDs already
// yielded by an earlier set.
func (c *Collection) All() iter.Seq2[uint64, []byte] {
	return func(yield func(uint64, []byte) bool) {
		seen := make(map[uint64]struct{})
		for _, s := range c.sets {
			for id, data := range s.All() {
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				if !yield(id, data) {
					return
				}
			}
		}
	}
}

func (c *Collection) find(id uint64) (*Set, bool) {
	for _, s := range c.sets {
		if s.Has(id) {
			return s, true
		}
	}

	return nil, false
}
