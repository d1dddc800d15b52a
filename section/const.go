package section

import "math"

const (
	// Bit masks of ShapeSetFlag.Options
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ShapeNamesMask   = 0x0004 // Mask for shape names payload bit (bit 2)
	ReservedBitsMask = 0x0009 // Mask for reserved bits (bits 0 and 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicShapeSetV1Opt is the version 1 magic number of the shape set format.
	MagicShapeSetV1Opt = 0xEC10
)

// offset and section sizes in the shape set
const (
	HeaderSize          = 32             // fixed header size in bytes
	ShapeIndexEntrySize = 16             // fixed index entry size in bytes
	IndexOffsetOffset   = HeaderSize     // byte offset where the index starts without a names payload
	MaxShapeCount       = math.MaxUint16 // names payload stores the count as uint16
	MaxDataSize         = math.MaxUint32 // offsets are uint32
)
