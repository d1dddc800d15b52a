package grid

import "github.com/arloliu/polycode/shape"

// Sparse is an unbounded visited set keyed by row, then column.
type Sparse struct {
	rows  map[int]map[int]struct{}
	count int
}

var _ Occupancy = (*Sparse)(nil)

// NewSparse returns an empty visited set.
func NewSparse() *Sparse {
	return &Sparse{rows: make(map[int]map[int]struct{})}
}

// IsVisited reports whether (x, y) has been marked.
func (s *Sparse) IsVisited(x, y int) bool {
	row, ok := s.rows[y]
	if !ok {
		return false
	}
	_, ok = row[x]

	return ok
}

// MarkVisited marks (x, y). Marking a cell twice has no effect.
func (s *Sparse) MarkVisited(x, y int) {
	row, ok := s.rows[y]
	if !ok {
		row = make(map[int]struct{})
		s.rows[y] = row
	}
	if _, ok := row[x]; ok {
		return
	}
	row[x] = struct{}{}
	s.count++
}

// Len returns the number of visited cells.
func (s *Sparse) Len() int {
	return s.count
}

// Coords flattens the visited set into an unordered cell list.
func (s *Sparse) Coords() []shape.Coord {
	out := make([]shape.Coord, 0, s.count)
	for y, row := range s.rows {
		for x := range row {
			out = append(out, shape.Coord{X: x, Y: y})
		}
	}

	return out
}
