package grid

import (
	"github.com/arloliu/polycode/format"
	"github.com/arloliu/polycode/shape"
)

// State is the encode-side state of a grid cell.
type State uint8

const (
	Empty     State = iota // Empty is outside the polyomino.
	Filled                 // Filled is part of the polyomino and not yet visited.
	Processed              // Processed is part of the polyomino and already visited.
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Filled:
		return "filled"
	case Processed:
		return "processed"
	default:
		return "unknown"
	}
}

// Occupancy is the visited-cell view shared by the dense and sparse models.
type Occupancy interface {
	IsVisited(x, y int) bool
	MarkVisited(x, y int)
}

// Dense is a row-major width×height grid of cell states.
//
// Row 0 is the bottom row and row Height()-1 is the top row. Cells outside the grid read
// as Empty. The number of remaining Filled cells is tracked so termination is O(1).
type Dense struct {
	cells     []State
	width     int
	height    int
	remaining int
}

var _ Occupancy = (*Dense)(nil)

// NewDense builds a dense grid covering the bounding box of cells.
//
// The cells are translated by their bounding-box minimum, so normalized input maps
// one-to-one onto grid coordinates. Duplicate cells are counted once.
//
// Parameters:
//   - cells: polyomino cells
//
// Returns:
//   - *Dense: grid with every cell Filled; a 0×0 grid for empty input
func NewDense(cells []shape.Coord) *Dense {
	minC, maxC, ok := shape.Bounds(cells)
	if !ok {
		return &Dense{}
	}

	g := &Dense{
		width:  maxC.X - minC.X + 1,
		height: maxC.Y - minC.Y + 1,
	}
	g.cells = make([]State, g.width*g.height)

	for _, c := range cells {
		idx := g.index(c.X-minC.X, c.Y-minC.Y)
		if g.cells[idx] == Filled {
			continue
		}
		g.cells[idx] = Filled
		g.remaining++
	}

	return g
}

// Width returns the number of columns.
func (g *Dense) Width() int { return g.width }

// Height returns the number of rows.
func (g *Dense) Height() int { return g.height }

// Remaining returns the number of Filled cells.
func (g *Dense) Remaining() int { return g.remaining }

// HasFilled reports whether any cell is still Filled.
func (g *Dense) HasFilled() bool {
	return g.remaining > 0
}

// InBounds reports whether (x, y) lies inside the grid.
func (g *Dense) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// State returns the state of (x, y). Coordinates outside the grid are Empty.
func (g *Dense) State(x, y int) State {
	if !g.InBounds(x, y) {
		return Empty
	}

	return g.cells[g.index(x, y)]
}

// MarkProcessed transitions a Filled cell to Processed. Other cells are left unchanged.
func (g *Dense) MarkProcessed(x, y int) {
	if !g.InBounds(x, y) {
		return
	}

	idx := g.index(x, y)
	if g.cells[idx] == Filled {
		g.cells[idx] = Processed
		g.remaining--
	}
}

// IsVisited reports whether (x, y) is Processed.
func (g *Dense) IsVisited(x, y int) bool {
	return g.State(x, y) == Processed
}

// MarkVisited is MarkProcessed under the Occupancy name.
func (g *Dense) MarkVisited(x, y int) {
	g.MarkProcessed(x, y)
}

// Reachable probes from (x, y) along dir for the next Filled cell.
//
// The probe skips Processed cells, stops at the first Filled cell and is blocked by an
// Empty cell or the grid edge. The starting cell itself is not inspected.
//
// Returns:
//   - tx, ty: the Filled cell found
//   - ok: false when the probe is blocked
func (g *Dense) Reachable(x, y int, dir format.Direction) (tx, ty int, ok bool) {
	dx, dy := dir.Vector()
	tx, ty = x+dx, y+dy
	for g.InBounds(tx, ty) {
		switch g.cells[g.index(tx, ty)] {
		case Filled:
			return tx, ty, true
		case Empty:
			return 0, 0, false
		}
		tx += dx
		ty += dy
	}

	return 0, 0, false
}

// Clone returns an independent copy of the grid.
func (g *Dense) Clone() *Dense {
	c := *g
	c.cells = make([]State, len(g.cells))
	copy(c.cells, g.cells)

	return &c
}

// CopyFrom resets g to the contents of src, reusing g's storage when it is large enough.
func (g *Dense) CopyFrom(src *Dense) {
	if cap(g.cells) < len(src.cells) {
		g.cells = make([]State, len(src.cells))
	}
	g.cells = g.cells[:len(src.cells)]
	copy(g.cells, src.cells)
	g.width = src.width
	g.height = src.height
	g.remaining = src.remaining
}

func (g *Dense) index(x, y int) int {
	return y*g.width + x
}
