// Package polycode provides a lossless, compact binary encoding for polyominoes.
//
// A polyomino is a finite set of grid cells connected through shared edges. polycode walks
// the cells with a greedy traversal, records the walk as a stream of 2- and 4-bit commands
// and stores the winning traversal configuration in a leading index byte. Of the 256
// configurations the shortest stream is kept, so typical shapes take a little over two bits
// per cell.
//
// # Core Features
//
//   - Lossless round trip up to translation: decoded cells are normalized
//   - Deterministic output: the same cell set always encodes to the same bytes
//   - Dead-end pruning of branch pushes for shorter streams
//   - Parallel configuration search with a scheduling-independent result
//   - Shape sets: many encoded shapes in one container with optional compression
//     (None, Zstd, S2, LZ4) and xxHash64 name-based identification
//
// # Basic Usage
//
// Encoding and decoding a single shape:
//
//	cells := []polycode.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
//
//	data, err := polycode.Encode(cells)
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := polycode.Decode(data)
//
// Storing many shapes by name:
//
//	encoder, _ := polycode.NewDefaultShapeSetEncoder()
//	encoder.AddShape("tetromino.T", tCells)
//	encoder.AddShape("tetromino.S", sCells)
//	data, _ := encoder.Finish()
//
//	decoder, _ := polycode.NewShapeSetDecoder(data)
//	set, _ := decoder.Decode()
//	cells, _ := set.ShapeByName("tetromino.T")
//
// # Package Structure
//
// This package wraps the chaincode, shape and shapeset packages for the common cases. Use
// those packages directly for candidate inspection, single-configuration encoding or
// logging.
package polycode

import (
	"github.com/arloliu/polycode/chaincode"
	"github.com/arloliu/polycode/format"
	"github.com/arloliu/polycode/internal/hash"
	"github.com/arloliu/polycode/shape"
	"github.com/arloliu/polycode/shapeset"
)

// Coord is a grid cell.
type Coord = shape.Coord

var defaultShapeSetOptions = []shapeset.EncoderOption{
	shapeset.WithLittleEndian(),
	shapeset.WithCompression(format.CompressionZstd),
}

// Encode encodes a polyomino into its shortest byte sequence.
//
// Available options:
//   - chaincode.WithConcurrency(n)
//   - chaincode.WithPruning(true|false)
//   - chaincode.WithPendingPruning(true|false)
//   - chaincode.WithConnectivityCheck(true|false)
//
// Returns an empty slice for an empty polyomino, and errs.ErrUncoverableShape for cells
// that are not 4-connected.
func Encode(cells []Coord, opts ...chaincode.EncodeOption) ([]byte, error) {
	return chaincode.Encode(cells, opts...)
}

// Decode reconstructs the normalized cells of an encoded polyomino.
//
// Returns an empty slice for empty data. With chaincode.WithStrict(true) a pop on an empty
// backtrack store is rejected instead of ignored.
func Decode(data []byte, opts ...chaincode.DecodeOption) ([]Coord, error) {
	return chaincode.Decode(data, opts...)
}

// Normalize translates cells so the minimum x and y are zero, removes duplicates and sorts
// by (y, x). The input is not modified.
func Normalize(cells []Coord) []Coord {
	return shape.Normalize(cells)
}

// NewShapeSetEncoder creates a shape set encoder with custom options.
//
// Parameters:
//   - opts: shapeset.WithCompression, shapeset.WithLittleEndian / shapeset.WithBigEndian,
//     shapeset.WithEncodeOptions
//
// Returns:
//   - *shapeset.Encoder: the encoder
//   - error: an error if an option is invalid
//
// Example:
//
//	encoder, err := polycode.NewShapeSetEncoder(
//	    shapeset.WithCompression(format.CompressionS2),
//	    shapeset.WithEncodeOptions(chaincode.WithConcurrency(4)),
//	)
func NewShapeSetEncoder(opts ...shapeset.EncoderOption) (*shapeset.Encoder, error) {
	return shapeset.NewEncoder(opts...)
}

// NewDefaultShapeSetEncoder creates a shape set encoder with little-endian layout and a
// zstd-compressed data payload.
func NewDefaultShapeSetEncoder() (*shapeset.Encoder, error) {
	return shapeset.NewEncoder(defaultShapeSetOptions...)
}

// NewShapeSetDecoder parses the header of an encoded shape set.
//
// Call Decode on the result to validate the index and payload and obtain a shapeset.Set.
func NewShapeSetDecoder(data []byte, opts ...shapeset.DecoderOption) (*shapeset.Decoder, error) {
	return shapeset.NewDecoder(data, opts...)
}

// NewCollection searches several decoded shape sets in order.
func NewCollection(sets ...*shapeset.Set) (*shapeset.Collection, error) {
	return shapeset.NewCollection(sets...)
}

// ShapeID returns the identifier a shape set assigns to a shape name.
//
// It is the xxHash64 of the name, the same value AddShape stores in the index.
func ShapeID(name string) uint64 {
	return hash.ID(name)
}
