// Package grid provides the occupancy models used by the traversal engine.
//
// Dense is the encode-side bounded grid with Empty, Filled and Processed cells.
// Sparse is the decode-side visited set over unbounded coordinates.
package grid
