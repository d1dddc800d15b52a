// Package section defines the binary layout of a shape set.
//
// A shape set is a fixed header followed by three payloads:
//
//	┌──────────────────────────────────────────────┐
//	│ Header (32 bytes)                            │
//	│  - Flag (4 bytes): options, magic, codec     │
//	│  - ShapeCount, IndexOffset, DataOffset       │
//	│  - DataSize, Checksum                        │
//	├──────────────────────────────────────────────┤
//	│ Shape names payload (optional)               │
//	│  - [count u16] then [len u16][bytes] each    │
//	├──────────────────────────────────────────────┤
//	│ Index (ShapeCount × 16 bytes)                │
//	│  - ShapeID, CellCount, Offset                │
//	├──────────────────────────────────────────────┤
//	│ Data payload (possibly compressed)           │
//	│  - encoded shapes back to back               │
//	└──────────────────────────────────────────────┘
//
// The first two bytes of the header are always little-endian. They carry the endianness
// bit that governs every other fixed-width field, including the names payload lengths.
package section
