// Package endian selects the byte order of the fixed-width fields in a shape set.
//
// Shape sets are little-endian unless the encoder asks for big-endian; the choice is
// recorded in the header flag so decoders pick the matching engine:
//
//	engine := endian.Select(header.Flag.IsBigEndian())
//	count := engine.Uint32(b[4:8])
//
// The returned engines are the standard library byte orders and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines the read/write and append byte order interfaces of encoding/binary.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Select returns the big-endian engine when big is set and the little-endian one otherwise.
func Select(big bool) EndianEngine {
	if big {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}
