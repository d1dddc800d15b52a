package shapeset

import (
	"fmt"

	"github.com/arloliu/polycode/compress"
	"github.com/arloliu/polycode/endian"
	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/format"
	ienc "github.com/arloliu/polycode/internal/encoding"
	"github.com/arloliu/polycode/internal/hash"
	"github.com/arloliu/polycode/internal/options"
	"github.com/arloliu/polycode/section"
)

// Decoder parses a shape set produced by Encoder.
//
// Note: The Decoder is NOT thread-safe. The Set it returns is read-only and safe for
// concurrent use.
type Decoder struct {
	*DecoderConfig

	data   []byte
	header section.ShapeSetHeader
	engine endian.EndianEngine
}

// NewDecoder validates the header of data.
//
// The payloads are not touched until Decode is called.
//
// Returns:
//   - *Decoder: decoder for data
//   - error: invalid options, or a header error such as errs.ErrInvalidMagicNumber
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	cfg := newDecoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(data) < section.HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	d := &Decoder{DecoderConfig: cfg, data: data}
	if err := d.header.Parse(data[:section.HeaderSize]); err != nil {
		return nil, err
	}
	d.engine = d.header.GetEndianEngine()

	if uint64(len(data)) < uint64(d.header.DataOffset) {
		return nil, fmt.Errorf("%w: data offset %d exceeds %d bytes", errs.ErrInvalidDataOffset, d.header.DataOffset, len(data))
	}

	return d, nil
}

// Header returns a copy of the parsed header.
func (d *Decoder) Header() section.ShapeSetHeader {
	return d.header
}

// ShapeCount returns the number of shapes recorded in the header.
func (d *Decoder) ShapeCount() int {
	return int(d.header.ShapeCount)
}

// Compression returns the compression of the data payload.
func (d *Decoder) Compression() format.CompressionType {
	return d.header.Flag.GetDataCompression()
}

// Decode parses the names payload and the index and decompresses the data payload.
//
// Returns:
//   - *Set: the decoded shape set
//   - error: payload errors, errs.ErrHashMismatch when a name does not match its ID,
//     errs.ErrDataSizeMismatch or errs.ErrChecksumMismatch for a damaged data payload
func (d *Decoder) Decode() (*Set, error) {
	count := int(d.header.ShapeCount)

	names, err := d.parseNames(count)
	if err != nil {
		return nil, err
	}

	index := d.data[d.header.IndexOffset:d.header.DataOffset]
	entries, err := section.ParseShapeIndex(index, count, d.header.DataSize, d.engine)
	if err != nil {
		return nil, fmt.Errorf("failed to parse index: %w", err)
	}

	if names != nil {
		ids := make([]uint64, count)
		for i := range entries {
			ids[i] = entries[i].ShapeID
		}
		if err := ienc.VerifyShapeNameHashes(names, ids, hash.ID); err != nil {
			return nil, err
		}
	}

	payload, err := d.decompress()
	if err != nil {
		return nil, err
	}

	return newSet(entries, names, payload, d.decodeOpts), nil
}

func (d *Decoder) parseNames(count int) ([]string, error) {
	if !d.header.Flag.HasShapeNames() {
		return nil, nil
	}

	region := d.data[section.HeaderSize:d.header.IndexOffset]
	names, n, err := ienc.DecodeShapeNames(region, d.engine)
	if err != nil {
		return nil, err
	}
	if n != len(region) {
		return nil, fmt.Errorf("%w: names payload uses %d of %d bytes", errs.ErrInvalidShapeNames, n, len(region))
	}
	if len(names) != count {
		return nil, fmt.Errorf("%w: %d names for %d shapes", errs.ErrInvalidShapeNamesCount, len(names), count)
	}

	return names, nil
}

func (d *Decoder) decompress() ([]byte, error) {
	codec, err := compress.GetCodec(d.header.Flag.GetDataCompression())
	if err != nil {
		return nil, err
	}

	payload, err := codec.Decompress(d.data[d.header.DataOffset:])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress data: %w", err)
	}

	if uint64(len(payload)) != uint64(d.header.DataSize) {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrDataSizeMismatch, d.header.DataSize, len(payload))
	}

	if d.verifyChecksum && hash.Fingerprint(payload) != d.header.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	return payload, nil
}
