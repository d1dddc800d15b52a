package shape

import (
	"cmp"
	"fmt"
	"slices"
)

// Coord is an integer cell position. Y grows upwards.
type Coord struct {
	X int
	Y int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the coordinate translated by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Compare orders coordinates row-major: by Y, then by X.
func Compare(a, b Coord) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}

	return cmp.Compare(a.X, b.X)
}

// Bounds returns the minimum and maximum corners of the cells' bounding box.
// ok is false when cells is empty.
func Bounds(cells []Coord) (minC, maxC Coord, ok bool) {
	if len(cells) == 0 {
		return Coord{}, Coord{}, false
	}

	minC, maxC = cells[0], cells[0]
	for _, c := range cells[1:] {
		minC.X = min(minC.X, c.X)
		minC.Y = min(minC.Y, c.Y)
		maxC.X = max(maxC.X, c.X)
		maxC.Y = max(maxC.Y, c.Y)
	}

	return minC, maxC, true
}

// Normalize returns the canonical form of a cell set.
//
// The result is translated so that its minimum x and minimum y are both 0, contains each
// cell once and is sorted by (y, x). Normalize is idempotent and never modifies its input.
//
// Parameters:
//   - cells: cells in any order, duplicates allowed
//
// Returns:
//   - []Coord: normalized cells; an empty, non-nil slice for empty input
func Normalize(cells []Coord) []Coord {
	minC, _, ok := Bounds(cells)
	if !ok {
		return []Coord{}
	}

	out := make([]Coord, len(cells))
	for i, c := range cells {
		out[i] = Coord{X: c.X - minC.X, Y: c.Y - minC.Y}
	}

	slices.SortFunc(out, Compare)

	return slices.Compact(out)
}

// Equal reports whether a and b contain the same cells, ignoring order and duplicates.
func Equal(a, b []Coord) bool {
	sa := NewSet(a)
	sb := NewSet(b)
	if sa.Len() != sb.Len() {
		return false
	}

	for c := range sa {
		if !sb.Contains(c) {
			return false
		}
	}

	return true
}

// EqualNormalized reports whether a and b are the same shape up to translation.
func EqualNormalized(a, b []Coord) bool {
	return slices.Equal(Normalize(a), Normalize(b))
}
