package compress

// ZstdCompressor uses Zstandard frames.
//
// The implementation is pure Go (klauspost/compress) unless the module is built with the
// gozstd tag and cgo enabled, in which case valyala/gozstd is used. Both produce standard
// frames, so payloads written by one decode with the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// zstdLevel is the compression level shared by both implementations.
const zstdLevel = 3

// NewZstdCompressor creates a Zstandard codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
