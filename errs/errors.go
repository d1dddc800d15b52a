// Package errs defines the sentinel errors returned by polycode packages.
//
// Errors are wrapped with additional context using fmt.Errorf("%w: ...") so callers
// should compare with errors.Is.
package errs

import "errors"

// Codec errors.
var (
	// ErrInvalidInput indicates a malformed encoded byte sequence or command stream.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyBacktrack indicates a pop command with no saved branch to restore.
	ErrEmptyBacktrack = errors.New("pop on empty backtrack store")
	// ErrUncoverableShape indicates that no traversal could cover every cell of the shape.
	ErrUncoverableShape = errors.New("shape cannot be covered by a single traversal")
	// ErrDisconnectedShape indicates that the shape is not 4-connected.
	ErrDisconnectedShape = errors.New("shape is not 4-connected")
)

// Shape set errors.
var (
	ErrInvalidHeaderSize      = errors.New("invalid header size")
	ErrInvalidHeaderFlags     = errors.New("invalid header flags")
	ErrInvalidMagicNumber     = errors.New("invalid magic number")
	ErrInvalidIndexEntrySize  = errors.New("invalid index entry size")
	ErrInvalidIndexOffsets    = errors.New("invalid index offsets")
	ErrInvalidDataOffset      = errors.New("invalid data payload offset")
	ErrInvalidShapeCount      = errors.New("invalid shape count")
	ErrShapeCountExceeded     = errors.New("shape count exceeded")
	ErrNoShapesAdded          = errors.New("no shapes added")
	ErrShapeAlreadyAdded      = errors.New("shape already added")
	ErrShapeNotFound          = errors.New("shape not found")
	ErrInvalidShapeName       = errors.New("invalid shape name")
	ErrMixedIdentifierMode    = errors.New("cannot mix shape IDs and shape names")
	ErrHashCollision          = errors.New("hash collision detected")
	ErrHashMismatch           = errors.New("shape name does not match its id")
	ErrInvalidShapeNames      = errors.New("invalid shape names payload")
	ErrInvalidShapeNamesCount = errors.New("shape names count does not match shape count")
	ErrCellCountMismatch      = errors.New("decoded cell count does not match index entry")
	ErrEncoderFinished        = errors.New("encoder already finished")
	ErrDataSizeMismatch       = errors.New("data payload size does not match header")
	ErrChecksumMismatch       = errors.New("data payload checksum mismatch")
	ErrPayloadTooLarge        = errors.New("decompressed data payload too large")
)

// Size model errors.
var (
	// ErrInsufficientSamples indicates too few distinct cell counts to fit a size model.
	ErrInsufficientSamples = errors.New("insufficient samples for regression")
	// ErrUnknownModel indicates an unsupported size model name.
	ErrUnknownModel = errors.New("unknown size model")
)
