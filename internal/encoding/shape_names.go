package encoding

import (
	"fmt"
	"math"

	"github.com/arloliu/polycode/endian"
	"github.com/arloliu/polycode/errs"
)

// EncodeShapeNames encodes the names of a shape set into a length-prefixed payload.
//
// Format: [Count: uint16] [Len1: uint16][Name1: UTF-8] [Len2: uint16][Name2: UTF-8] ...
//
// Parameters:
//   - names: shape names in index order
//   - engine: byte order of the length fields
//
// Returns:
//   - []byte: encoded payload
//   - error: too many names or a name longer than 65535 bytes
func EncodeShapeNames(names []string, engine endian.EndianEngine) ([]byte, error) {
	if len(names) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d names exceed maximum %d", errs.ErrInvalidShapeNamesCount, len(names), math.MaxUint16)
	}

	size := 2
	for _, name := range names {
		if len(name) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: name of %d bytes exceeds maximum %d", errs.ErrInvalidShapeName, len(name), math.MaxUint16)
		}
		size += 2 + len(name)
	}

	buf := make([]byte, 0, size)
	buf = engine.AppendUint16(buf, uint16(len(names))) //nolint:gosec
	for _, name := range names {
		buf = engine.AppendUint16(buf, uint16(len(name))) //nolint:gosec
		buf = append(buf, name...)
	}

	return buf, nil
}

// DecodeShapeNames decodes a payload written by EncodeShapeNames.
//
// Returns:
//   - []string: names in index order
//   - int: number of bytes consumed
//   - error: errs.ErrInvalidShapeNames for truncated payloads
func DecodeShapeNames(data []byte, engine endian.EndianEngine) ([]string, int, error) {
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("%w: need 2 bytes for the count, have %d", errs.ErrInvalidShapeNames, len(data))
	}

	count := int(engine.Uint16(data))
	offset := 2
	names := make([]string, count)

	for i := range count {
		if len(data) < offset+2 {
			return nil, 0, fmt.Errorf("%w: truncated length of name %d at offset %d", errs.ErrInvalidShapeNames, i, offset)
		}
		n := int(engine.Uint16(data[offset:]))
		offset += 2

		if len(data) < offset+n {
			return nil, 0, fmt.Errorf("%w: name %d needs %d bytes at offset %d, have %d",
				errs.ErrInvalidShapeNames, i, n, offset, len(data)-offset)
		}
		names[i] = string(data[offset : offset+n])
		offset += n
	}

	return names, offset, nil
}

// VerifyShapeNameHashes checks that hashFunc(names[i]) equals ids[i] for every i.
func VerifyShapeNameHashes(names []string, ids []uint64, hashFunc func(string) uint64) error {
	if len(names) != len(ids) {
		return fmt.Errorf("%w: %d names for %d shapes", errs.ErrInvalidShapeNamesCount, len(names), len(ids))
	}

	for i, name := range names {
		if got := hashFunc(name); got != ids[i] {
			return fmt.Errorf("%w: name %q at index %d hashes to 0x%016x, index holds 0x%016x",
				errs.ErrHashMismatch, name, i, got, ids[i])
		}
	}

	return nil
}
