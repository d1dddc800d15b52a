package main

import (
	"math/rand"

	"github.com/arloliu/polycode/shape"
)

// GenerateShapes grows cfg.Shapes random polyominoes with cell counts drawn uniformly from
// [cfg.MinCells, cfg.MaxCells]. The same seed always yields the same shapes.
func GenerateShapes(cfg Config) [][]shape.Coord {
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec
	span := cfg.MaxCells - cfg.MinCells + 1

	shapes := make([][]shape.Coord, cfg.Shapes)
	for i := range shapes {
		shapes[i] = shape.Grow(rng, cfg.MinCells+rng.Intn(span))
	}

	return shapes
}
