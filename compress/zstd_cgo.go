//go:build gozstd && cgo

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/polycode/errs"
)

// Compress encodes data as one zstd frame. Empty input stays empty, as with S2 and LZ4.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, zstdLevel), nil
}

// Decompress decodes one zstd frame.
//
// gozstd has no output limit, so oversized payloads are rejected after decoding.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) > maxPayloadSize {
		return nil, fmt.Errorf("%w: zstd frame holds %d bytes", errs.ErrPayloadTooLarge, len(out))
	}

	return out, nil
}
