package compress

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/klauspost/compress/s2"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/format"
)

var allTypes = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// payload mimics a shape set data section: short encodings that share many prefixes.
func payload(n int) []byte {
	rng := rand.New(rand.NewSource(int64(n)))
	var buf bytes.Buffer
	for buf.Len() < n {
		buf.WriteByte(byte(rng.Intn(8)))
		for range 2 + rng.Intn(6) {
			buf.WriteByte([]byte{0x00, 0x3F, 0xC6, 0x0F, 0xFF}[rng.Intn(5)])
		}
	}

	return buf.Bytes()[:n]
}

// ==============================================================================
// Round Trip Tests
// ==============================================================================

func TestCodec_RoundTrip(t *testing.T) {
	sizes := []int{1, 17, 512, 64 * 1024}

	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			for _, size := range sizes {
				data := payload(size)
				original := bytes.Clone(data)

				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, original, restored, "size %d", size)
				require.Equal(t, original, data, "input modified")
			}
		})
	}
}

func TestCodec_Empty(t *testing.T) {
	for _, ct := range allTypes {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "data")
			require.NoError(t, err)

			out, err := codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestCodec_Compresses(t *testing.T) {
	data := payload(64 * 1024)

	for _, ct := range allTypes[1:] {
		stats, err := Measure(ct, data)
		require.NoError(t, err)
		require.Equal(t, ct, stats.Algorithm)
		require.Less(t, stats.CompressedSize, stats.OriginalSize, ct.String())
		require.Greater(t, stats.SpaceSavings(), 0.0)
	}
}

func TestCodec_CorruptedInput(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03}

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestCodec_EmptyCompress(t *testing.T) {
	for _, ct := range allTypes {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		out, err := codec.Compress(nil)
		require.NoError(t, err)
		require.Empty(t, out, ct.String())
	}
}

func TestS2_PayloadLimit(t *testing.T) {
	// A block header claiming 1 GiB is rejected before any allocation.
	block := binary.AppendUvarint(nil, 1<<30)
	block = append(block, 0x00)

	_, err := NewS2Compressor().Decompress(block)
	require.ErrorIs(t, err, errs.ErrPayloadTooLarge)

	// The claimed size is checked, so a well-formed block below the limit still decodes.
	data := payload(4096)
	compressed, err := NewS2Compressor().Compress(data)
	require.NoError(t, err)
	n, err := s2.DecodedLen(compressed)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
}

// ==============================================================================
// Factory Tests
// ==============================================================================

func TestCreateCodec_Invalid(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0x9), "data")
	require.ErrorContains(t, err, "invalid data compression")

	_, err = GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		in   string
		want format.CompressionType
	}{
		{"none", format.CompressionNone},
		{"", format.CompressionNone},
		{"ZSTD", format.CompressionZstd},
		{" s2 ", format.CompressionS2},
		{"lz4", format.CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompressionType(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseCompressionType("brotli")
	require.Error(t, err)
}

func TestStats_Ratio(t *testing.T) {
	require.Zero(t, Stats{}.Ratio())

	s := Stats{OriginalSize: 200, CompressedSize: 50}
	require.InDelta(t, 0.25, s.Ratio(), 1e-9)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)
}

// ==============================================================================
// Benchmarks
// ==============================================================================

func BenchmarkCompress(b *testing.B) {
	data := payload(32 * 1024)
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Compress(data)
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	data := payload(32 * 1024)
	for _, ct := range allTypes {
		codec, _ := GetCodec(ct)
		compressed, _ := codec.Compress(data)
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			for b.Loop() {
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}
