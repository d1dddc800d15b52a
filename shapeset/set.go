package shapeset

import (
	"fmt"
	"iter"

	"github.com/arloliu/polycode/chaincode"
	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/section"
	"github.com/arloliu/polycode/shape"
)

// Set is a decoded shape set.
//
// Lookups by ID return the first shape added under that ID; in name mode two names may
// share an ID, and ShapeByName tells them apart.
type Set struct {
	entries    []section.ShapeIndexEntry
	names      []string
	byID       map[uint64]int
	byName     map[string]int
	payload    []byte
	decodeOpts []chaincode.DecodeOption
}

func newSet(entries []section.ShapeIndexEntry, names []string, payload []byte, decodeOpts []chaincode.DecodeOption) *Set {
	s := &Set{
		entries:    entries,
		names:      names,
		byID:       make(map[uint64]int, len(entries)),
		payload:    payload,
		decodeOpts: decodeOpts,
	}

	for i := range entries {
		if _, ok := s.byID[entries[i].ShapeID]; !ok {
			s.byID[entries[i].ShapeID] = i
		}
	}

	if names != nil {
		s.byName = make(map[string]int, len(names))
		for i, name := range names {
			s.byName[name] = i
		}
	}

	return s
}

// Len returns the number of shapes.
func (s *Set) Len() int {
	return len(s.entries)
}

// IDs returns the shape IDs in the order the shapes were added.
func (s *Set) IDs() []uint64 {
	ids := make([]uint64, len(s.entries))
	for i := range s.entries {
		ids[i] = s.entries[i].ShapeID
	}

	return ids
}

// Names returns the shape names in the order the shapes were added, or nil for a set
// built with IDs.
func (s *Set) Names() []string {
	return s.names
}

// HasNames reports whether the set was built with names.
func (s *Set) HasNames() bool {
	return s.names != nil
}

// Has reports whether a shape with id exists.
func (s *Set) Has(id uint64) bool {
	_, ok := s.byID[id]
	return ok
}

// HasName reports whether a shape named name exists.
func (s *Set) HasName(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// CellCount returns the cell count recorded for id.
func (s *Set) CellCount(id uint64) (int, bool) {
	i, ok := s.byID[id]
	if !ok {
		return 0, false
	}

	return int(s.entries[i].CellCount), true
}

// Encoded returns the encoded bytes of the shape with id.
// The slice aliases the set's payload and must not be modified.
func (s *Set) Encoded(id uint64) ([]byte, bool) {
	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}

	return s.encodedAt(i), true
}

// Shape decodes the shape with id.
//
// Returns:
//   - []shape.Coord: normalized cells
//   - error: errs.ErrShapeNotFound, a decode error, or errs.ErrCellCountMismatch when the
//     decoded cells disagree with the index
func (s *Set) Shape(id uint64) ([]shape.Coord, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id 0x%016x", errs.ErrShapeNotFound, id)
	}

	return s.shapeAt(i)
}

// ShapeByName decodes the shape named name.
func (s *Set) ShapeByName(name string) ([]shape.Coord, error) {
	i, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrShapeNotFound, name)
	}

	return s.shapeAt(i)
}

// All iterates over (ID, encoded bytes) in the order the shapes were added.
func (s *Set) All() iter.Seq2[uint64, []byte] {
	return func(yield func(uint64, []byte) bool) {
		for i := range s.entries {
			if !yield(s.entries[i].ShapeID, s.encodedAt(i)) {
				return
			}
		}
	}
}

// Shapes iterates over (ID, decoded cells), stopping at the first decode error.
func (s *Set) Shapes() iter.Seq2[uint64, []shape.Coord] {
	return func(yield func(uint64, []shape.Coord) bool) {
		for i := range s.entries {
			cells, err := s.shapeAt(i)
			if err != nil {
				return
			}
			if !yield(s.entries[i].ShapeID, cells) {
				return
			}
		}
	}
}

// Verify decodes every shape and checks it against its index entry.
func (s *Set) Verify() error {
	for i := range s.entries {
		if _, err := s.shapeAt(i); err != nil {
			return err
		}
	}

	return nil
}

func (s *Set) encodedAt(i int) []byte {
	e := s.entries[i]
	return s.payload[e.Offset : e.Offset+e.Size : e.Offset+e.Size]
}

func (s *Set) shapeAt(i int) ([]shape.Coord, error) {
	e := s.entries[i]

	cells, err := chaincode.Decode(s.encodedAt(i), s.decodeOpts...)
	if err != nil {
		return nil, fmt.Errorf("shape 0x%016x: %w", e.ShapeID, err)
	}

	if len(cells) != int(e.CellCount) {
		return nil, fmt.Errorf("%w: shape 0x%016x has %d cells, index says %d",
			errs.ErrCellCountMismatch, e.ShapeID, len(cells), e.CellCount)
	}

	return cells, nil
}
