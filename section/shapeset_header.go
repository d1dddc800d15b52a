package section

import (
	"fmt"

	"github.com/arloliu/polycode/endian"
	"github.com/arloliu/polycode/errs"
)

// ShapeSetHeader is the fixed 32-byte header of a shape set.
//
// The Options field is always little-endian so the byte order of the remaining fields can
// be read from it; every other field uses the byte order the flag selects.
type ShapeSetHeader struct {
	// Flag packs the options, magic number and data compression.
	Flag ShapeSetFlag // 4 bytes, offset 0-3
	// ShapeCount is the number of shapes in the set.
	ShapeCount uint32 // 4 bytes, offset 4-7
	// IndexOffset is the byte offset of the first index entry.
	IndexOffset uint32 // 4 bytes, offset 8-11
	// DataOffset is the byte offset of the data payload.
	DataOffset uint32 // 4 bytes, offset 12-15
	// DataSize is the uncompressed size of the data payload.
	// The size of the last shape is DataSize minus its offset.
	DataSize uint32 // 4 bytes, offset 16-19
	// Checksum is the xxHash64 of the uncompressed data payload.
	Checksum uint64 // 8 bytes, offset 20-27

	Reserved [4]byte // offset 28-31, must be zero
}

// NewShapeSetHeader creates a header for shapeCount shapes without a names payload.
func NewShapeSetHeader(shapeCount int) (*ShapeSetHeader, error) {
	if shapeCount < 0 || shapeCount > MaxShapeCount {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidShapeCount, shapeCount)
	}

	return &ShapeSetHeader{
		Flag:        NewShapeSetFlag(),
		ShapeCount:  uint32(shapeCount),
		IndexOffset: IndexOffsetOffset,
		DataOffset:  uint32(IndexOffsetOffset + shapeCount*ShapeIndexEntrySize), //nolint:gosec
	}, nil
}

// Parse parses a header from exactly HeaderSize bytes.
func (h *ShapeSetHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.DataCompression = data[2]
	h.Flag.Reserved = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.GetEndianEngine()
	h.ShapeCount = engine.Uint32(data[4:8])
	h.IndexOffset = engine.Uint32(data[8:12])
	h.DataOffset = engine.Uint32(data[12:16])
	h.DataSize = engine.Uint32(data[16:20])
	h.Checksum = engine.Uint64(data[20:28])
	copy(h.Reserved[:], data[28:32])

	return h.validateLayout()
}

// Bytes serializes the header.
func (h *ShapeSetHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.DataCompression
	b[3] = h.Flag.Reserved
	engine.PutUint32(b[4:8], h.ShapeCount)
	engine.PutUint32(b[8:12], h.IndexOffset)
	engine.PutUint32(b[12:16], h.DataOffset)
	engine.PutUint32(b[16:20], h.DataSize)
	engine.PutUint64(b[20:28], h.Checksum)
	copy(b[28:32], h.Reserved[:])

	return b
}

// GetEndianEngine returns the engine for the byte order selected by the flag.
func (h *ShapeSetHeader) GetEndianEngine() endian.EndianEngine {
	return endian.Select(h.Flag.IsBigEndian())
}

// IndexSize returns the byte size of the index section.
func (h *ShapeSetHeader) IndexSize() int {
	return int(h.ShapeCount) * ShapeIndexEntrySize
}

func (h *ShapeSetHeader) validateLayout() error {
	if h.ShapeCount > MaxShapeCount {
		return fmt.Errorf("%w: %d", errs.ErrInvalidShapeCount, h.ShapeCount)
	}

	if h.IndexOffset < IndexOffsetOffset {
		return fmt.Errorf("%w: index offset %d inside header", errs.ErrInvalidIndexOffsets, h.IndexOffset)
	}
	if h.Flag.HasShapeNames() == (h.IndexOffset == IndexOffsetOffset) {
		return fmt.Errorf("%w: index offset %d does not match names flag", errs.ErrInvalidIndexOffsets, h.IndexOffset)
	}

	if uint64(h.DataOffset) != uint64(h.IndexOffset)+uint64(h.IndexSize()) {
		return fmt.Errorf("%w: data offset %d, index ends at %d",
			errs.ErrInvalidDataOffset, h.DataOffset, uint64(h.IndexOffset)+uint64(h.IndexSize()))
	}

	return nil
}
