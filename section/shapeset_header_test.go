package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/polycode/endian"
	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/format"
)

// ==============================================================================
// Flag Tests
// ==============================================================================

func TestShapeSetFlag(t *testing.T) {
	f := NewShapeSetFlag()
	require.NoError(t, f.Validate())
	require.Equal(t, uint16(MagicShapeSetV1Opt), f.GetMagicNumber())
	require.False(t, f.IsBigEndian())
	require.False(t, f.HasShapeNames())
	require.Equal(t, format.CompressionZstd, f.GetDataCompression())

	f.WithBigEndian()
	f.SetHasShapeNames(true)
	f.SetDataCompression(format.CompressionLZ4)
	require.True(t, f.IsBigEndian())
	require.True(t, f.HasShapeNames())
	require.Equal(t, uint16(0xEC16), f.Options)
	require.NoError(t, f.Validate())

	f.WithLittleEndian()
	f.SetHasShapeNames(false)
	require.Equal(t, uint16(MagicShapeSetV1Opt), f.Options)
}

func TestShapeSetFlag_Validate(t *testing.T) {
	tests := []struct {
		name string
		flag ShapeSetFlag
		want error
	}{
		{"wrong magic", ShapeSetFlag{Options: 0xEB10, DataCompression: 1}, errs.ErrInvalidMagicNumber},
		{"reserved bit 0", ShapeSetFlag{Options: 0xEC11, DataCompression: 1}, errs.ErrInvalidHeaderFlags},
		{"reserved bit 3", ShapeSetFlag{Options: 0xEC18, DataCompression: 1}, errs.ErrInvalidHeaderFlags},
		{"reserved byte", ShapeSetFlag{Options: 0xEC10, DataCompression: 1, Reserved: 1}, errs.ErrInvalidHeaderFlags},
		{"zero compression", ShapeSetFlag{Options: 0xEC10}, errs.ErrInvalidHeaderFlags},
		{"unknown compression", ShapeSetFlag{Options: 0xEC10, DataCompression: 9}, errs.ErrInvalidHeaderFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.flag.Validate(), tt.want)
		})
	}
}

// ==============================================================================
// Header Tests
// ==============================================================================

func TestNewShapeSetHeader(t *testing.T) {
	h, err := NewShapeSetHeader(3)
	require.NoError(t, err)
	require.Equal(t, uint32(3), h.ShapeCount)
	require.Equal(t, uint32(IndexOffsetOffset), h.IndexOffset)
	require.Equal(t, uint32(HeaderSize+3*ShapeIndexEntrySize), h.DataOffset)

	_, err = NewShapeSetHeader(-1)
	require.ErrorIs(t, err, errs.ErrInvalidShapeCount)

	_, err = NewShapeSetHeader(MaxShapeCount + 1)
	require.ErrorIs(t, err, errs.ErrInvalidShapeCount)
}

func TestShapeSetHeader_RoundTrip(t *testing.T) {
	for _, big := range []bool{false, true} {
		h, err := NewShapeSetHeader(2)
		require.NoError(t, err)
		if big {
			h.Flag.WithBigEndian()
		}
		h.Flag.SetHasShapeNames(true)
		h.IndexOffset = HeaderSize + 10
		h.DataOffset = h.IndexOffset + 2*ShapeIndexEntrySize
		h.DataSize = 77
		h.Checksum = 0x0102030405060708

		b := h.Bytes()
		require.Len(t, b, HeaderSize)
		require.Equal(t, byte(h.Flag.Options), b[0], "options are little-endian")

		var parsed ShapeSetHeader
		require.NoError(t, parsed.Parse(b))
		require.Equal(t, *h, parsed)
	}
}

func TestShapeSetHeader_ByteOrder(t *testing.T) {
	h, err := NewShapeSetHeader(1)
	require.NoError(t, err)
	h.Flag.WithBigEndian()

	b := h.Bytes()
	require.Equal(t, []byte{0x00, 0x00, 0x00, 0x01}, b[4:8])
	require.Equal(t, endian.GetBigEndianEngine(), h.GetEndianEngine())
}

func TestShapeSetHeader_ParseErrors(t *testing.T) {
	valid := func() *ShapeSetHeader {
		h, err := NewShapeSetHeader(2)
		require.NoError(t, err)
		return h
	}

	var h ShapeSetHeader
	require.ErrorIs(t, h.Parse(make([]byte, 31)), errs.ErrInvalidHeaderSize)
	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize)), errs.ErrInvalidMagicNumber)

	bad := valid()
	bad.IndexOffset = 8
	require.ErrorIs(t, h.Parse(bad.Bytes()), errs.ErrInvalidIndexOffsets)

	bad = valid()
	bad.Flag.SetHasShapeNames(true)
	require.ErrorIs(t, h.Parse(bad.Bytes()), errs.ErrInvalidIndexOffsets)

	bad = valid()
	bad.IndexOffset = HeaderSize + 4
	require.ErrorIs(t, h.Parse(bad.Bytes()), errs.ErrInvalidIndexOffsets)

	bad = valid()
	bad.DataOffset++
	require.ErrorIs(t, h.Parse(bad.Bytes()), errs.ErrInvalidDataOffset)

	bad = valid()
	bad.ShapeCount = MaxShapeCount + 1
	require.ErrorIs(t, h.Parse(bad.Bytes()), errs.ErrInvalidShapeCount)
}
