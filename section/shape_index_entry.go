package section

import (
	"github.com/arloliu/polycode/endian"
	"github.com/arloliu/polycode/errs"
)

// ShapeIndexEntry describes one shape of a shape set. It is 16 bytes on disk.
//
// Offsets are absolute within the uncompressed data payload. Size is not stored; it is the
// distance to the next entry's offset, or to DataSize for the last entry:
//
//	Shape 1: 3 bytes  → Offset=0, Size=3
//	Shape 2: 9 bytes  → Offset=3, Size=9
//	Shape 3: 1 byte   → Offset=12, Size=1
type ShapeIndexEntry struct {
	// ShapeID is the caller's ID or the xxHash64 of the shape name.
	ShapeID uint64 // 8 bytes, offset 0-7
	// CellCount is the number of cells of the shape, checked after decoding.
	CellCount uint32 // 4 bytes, offset 8-11
	// Offset is the byte offset of the encoded shape in the data payload.
	Offset uint32 // 4 bytes, offset 12-15

	// Size is the byte length of the encoded shape, derived on parse.
	Size uint32
}

// WriteToSlice writes the entry into the first 16 bytes of b.
func (e *ShapeIndexEntry) WriteToSlice(b []byte, engine endian.EndianEngine) error {
	if len(b) < ShapeIndexEntrySize {
		return errs.ErrInvalidIndexEntrySize
	}

	engine.PutUint64(b[0:8], e.ShapeID)
	engine.PutUint32(b[8:12], e.CellCount)
	engine.PutUint32(b[12:16], e.Offset)

	return nil
}

// ParseShapeIndexEntry parses an entry. Size is left for the caller to derive.
func ParseShapeIndexEntry(data []byte, engine endian.EndianEngine) (ShapeIndexEntry, error) {
	if len(data) < ShapeIndexEntrySize {
		return ShapeIndexEntry{}, errs.ErrInvalidIndexEntrySize
	}

	return ShapeIndexEntry{
		ShapeID:   engine.Uint64(data[0:8]),
		CellCount: engine.Uint32(data[8:12]),
		Offset:    engine.Uint32(data[12:16]),
	}, nil
}

// ParseShapeIndex parses count consecutive entries and derives their sizes.
//
// Offsets must be non-decreasing and within dataSize.
func ParseShapeIndex(data []byte, count int, dataSize uint32, engine endian.EndianEngine) ([]ShapeIndexEntry, error) {
	if len(data) < count*ShapeIndexEntrySize {
		return nil, errs.ErrInvalidIndexEntrySize
	}

	entries := make([]ShapeIndexEntry, count)
	for i := range entries {
		off := i * ShapeIndexEntrySize
		entry, err := ParseShapeIndexEntry(data[off:off+ShapeIndexEntrySize], engine)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}

	for i := range entries {
		end := dataSize
		if i+1 < count {
			end = entries[i+1].Offset
		}
		if entries[i].Offset > end || end > dataSize {
			return nil, errs.ErrInvalidIndexOffsets
		}
		entries[i].Size = end - entries[i].Offset
	}

	return entries, nil
}
