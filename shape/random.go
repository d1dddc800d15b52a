package shape

import "math/rand"

// Grow generates a random 4-connected polyomino of exactly n cells by cell growth.
//
// Starting from the origin, each step picks a random existing cell and a random
// direction and adds the neighbour if it is not already part of the shape. The same
// rng state always yields the same shape.
//
// Parameters:
//   - rng: random source
//   - n: number of cells; values below 1 return an empty shape
//
// Returns:
//   - []Coord: normalized cells
func Grow(rng *rand.Rand, n int) []Coord {
	if n < 1 {
		return []Coord{}
	}

	cells := make([]Coord, 1, n)
	set := Set{{}: {}}
	for len(cells) < n {
		base := cells[rng.Intn(len(cells))]
		d := conn4[rng.Intn(len(conn4))]
		next := base.Add(d[0], d[1])
		if set.Contains(next) {
			continue
		}
		set.Add(next)
		cells = append(cells, next)
	}

	return Normalize(cells)
}
