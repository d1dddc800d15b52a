package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/polycode/errs"
)

// S2Compressor uses the S2 block format.
//
// Shape sets are written once and read many times, so blocks are encoded with the
// slower, denser EncodeBetter. Decoding is the same for every S2 encoder level.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data as one S2 block.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes one S2 block.
//
// The decoded length stored in the block is checked against maxPayloadSize before the
// output buffer is allocated.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n > maxPayloadSize {
		return nil, fmt.Errorf("%w: s2 block claims %d bytes", errs.ErrPayloadTooLarge, n)
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
