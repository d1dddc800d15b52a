// Package shapeset stores many encoded polyominoes in one binary container.
//
// Shapes are identified either by a caller-chosen 64-bit ID or by a name, which is hashed
// with xxHash64. The two modes cannot be mixed within one set. In name mode the names are
// stored alongside the index, so lookups by name stay exact even when two names share a
// hash.
//
// Encoding:
//
//	enc, err := shapeset.NewEncoder(shapeset.WithCompression(format.CompressionZstd))
//	if err != nil {
//	    return err
//	}
//	_ = enc.AddShape("tetromino.T", []shape.Coord{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 0}})
//	data, err := enc.Finish()
//
// Decoding:
//
//	dec, err := shapeset.NewDecoder(data)
//	if err != nil {
//	    return err
//	}
//	set, err := dec.Decode()
//	cells, err := set.ShapeByName("tetromino.T")
//
// Each index entry carries the cell count of its shape; Shape checks the decoded cells
// against it, and Decode checks the xxHash64 checksum of the whole data payload.
package shapeset
