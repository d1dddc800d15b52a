// Package shape provides the polyomino cell model: integer coordinates, canonical
// normalization and set helpers shared by the encoder and decoder.
//
// A polyomino is treated as a set of cells. Order carries no meaning and duplicates are
// ignored; Normalize produces the canonical form compared by round-trip checks.
package shape
