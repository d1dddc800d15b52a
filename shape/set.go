package shape

import "slices"

// Set is a membership set of cells.
type Set map[Coord]struct{}

// NewSet builds a set from cells. Duplicates collapse.
func NewSet(cells []Coord) Set {
	s := make(Set, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}

	return s
}

// Contains reports whether c is a member of the set.
func (s Set) Contains(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Add inserts c into the set.
func (s Set) Add(c Coord) {
	s[c] = struct{}{}
}

// Len returns the number of distinct cells.
func (s Set) Len() int {
	return len(s)
}

// Cells returns the members in normalized order without translating them.
func (s Set) Cells() []Coord {
	out := make([]Coord, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	slices.SortFunc(out, Compare)

	return out
}

// conn4 holds the 4-neighbourhood offsets: up, right, down, left.
var conn4 = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// IsConnected reports whether the cells form a single 4-connected component.
// An empty set is considered connected.
//
// Complexity: O(n) time and memory, breadth-first search over the set.
func IsConnected(cells []Coord) bool {
	s := NewSet(cells)
	if s.Len() <= 1 {
		return true
	}

	start := cells[0]
	seen := Set{start: {}}
	queue := []Coord{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range conn4 {
			n := cur.Add(d[0], d[1])
			if !s.Contains(n) || seen.Contains(n) {
				continue
			}
			seen.Add(n)
			queue = append(queue, n)
		}
	}

	return seen.Len() == s.Len()
}
