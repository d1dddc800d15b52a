package compress

import (
	"fmt"
	"strings"

	"github.com/arloliu/polycode/format"
)

// maxPayloadSize bounds a decompressed shape set data payload, so a corrupted size field
// cannot force a huge allocation.
const maxPayloadSize = 128 << 20

// Compressor compresses a shape set data payload.
type Compressor interface {
	// Compress returns the compressed form of data.
	//
	// The returned slice is owned by the caller. Implementations may return data itself
	// when no transformation is applied, so callers must not modify data afterwards.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	// Decompress returns the original bytes of a payload produced by the matching Compressor.
	// It fails on corrupted input or input produced by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
//
// All built-in codecs are stateless values and safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// Stats summarizes one compression run.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns compressed size / original size, or 0 for empty input.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space as a percentage.
func (s Stats) SpaceSavings() float64 {
	return (1.0 - s.Ratio()) * 100.0
}

// Measure compresses data with the codec for algorithm and reports the sizes.
func Measure(algorithm format.CompressionType, data []byte) (Stats, error) {
	codec, err := GetCodec(algorithm)
	if err != nil {
		return Stats{}, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return Stats{}, fmt.Errorf("%s compression failed: %w", algorithm, err)
	}

	return Stats{
		Algorithm:      algorithm,
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(compressed)),
	}, nil
}

// CreateCodec creates a new Codec for the compression type.
//
// Parameters:
//   - compressionType: None, Zstd, S2 or LZ4
//   - target: name of the payload, used in the error message
//
// Returns:
//   - Codec: codec for the type
//   - error: unknown compression type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared built-in Codec for the compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// ParseCompressionType maps a case-insensitive name ("none", "zstd", "s2", "lz4") to its type.
func ParseCompressionType(name string) (format.CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}
