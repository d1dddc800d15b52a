package section

import (
	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/format"
)

// ShapeSetFlag is the packed flag field at the start of a shape set header.
type ShapeSetFlag struct {
	// Options packs the format options and the magic number.
	// Bit 0 is reserved, must be 0.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 2 is shape names payload flag, 1 means the names payload follows the header.
	// Bit 3 is reserved, must be 0.
	// Bits 4-15 are the magic number, 0xEC10 for shape set v1.
	Options uint16

	// DataCompression is the compression applied to the data payload.
	DataCompression uint8

	// Reserved for future use, must be 0.
	Reserved uint8
}

// NewShapeSetFlag returns a little-endian flag with Zstd data compression.
func NewShapeSetFlag() ShapeSetFlag {
	return ShapeSetFlag{
		Options:         MagicShapeSetV1Opt,
		DataCompression: uint8(format.CompressionZstd),
	}
}

// HasShapeNames reports whether the names payload is present.
func (f ShapeSetFlag) HasShapeNames() bool {
	return (f.Options & ShapeNamesMask) != 0
}

// SetHasShapeNames sets or clears the names payload bit.
func (f *ShapeSetFlag) SetHasShapeNames(enabled bool) {
	if enabled {
		f.Options |= ShapeNamesMask
	} else {
		f.Options &^= ShapeNamesMask
	}
}

// IsBigEndian reports whether fixed-width fields are big-endian.
func (f ShapeSetFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithBigEndian selects big-endian byte order.
func (f *ShapeSetFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// WithLittleEndian selects little-endian byte order.
func (f *ShapeSetFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// GetMagicNumber returns the magic number bits of Options.
func (f ShapeSetFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// SetDataCompression sets the data payload compression.
func (f *ShapeSetFlag) SetDataCompression(compression format.CompressionType) {
	f.DataCompression = uint8(compression)
}

// GetDataCompression returns the data payload compression.
func (f ShapeSetFlag) GetDataCompression() format.CompressionType {
	return format.CompressionType(f.DataCompression)
}

// Validate checks the magic number, the reserved bits and the compression type.
func (f ShapeSetFlag) Validate() error {
	if f.GetMagicNumber() != MagicShapeSetV1Opt {
		return errs.ErrInvalidMagicNumber
	}

	if (f.Options&ReservedBitsMask) != 0 || f.Reserved != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	switch f.GetDataCompression() {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return nil
	default:
		return errs.ErrInvalidHeaderFlags
	}
}
