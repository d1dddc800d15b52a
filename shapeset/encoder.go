package shapeset

import (
	"fmt"

	"github.com/arloliu/polycode/chaincode"
	"github.com/arloliu/polycode/compress"
	"github.com/arloliu/polycode/endian"
	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/internal/collision"
	ienc "github.com/arloliu/polycode/internal/encoding"
	"github.com/arloliu/polycode/internal/hash"
	"github.com/arloliu/polycode/internal/options"
	"github.com/arloliu/polycode/internal/pool"
	"github.com/arloliu/polycode/section"
	"github.com/arloliu/polycode/shape"
)

type identifierMode uint8

const (
	modeUndefined identifierMode = iota
	modeUserID
	modeNameManaged
)

// Encoder builds a shape set.
//
// Note: The Encoder is NOT thread-safe and NOT reusable. After Finish, create a new one.
type Encoder struct {
	*EncoderConfig

	engine  endian.EndianEngine
	codec   compress.Codec
	data    *pool.ByteBuffer
	entries []section.ShapeIndexEntry

	mode     identifierMode
	tracker  *collision.Tracker  // name mode only
	usedIDs  map[uint64]struct{} // ID mode only
	finished bool
}

// NewEncoder creates an empty Encoder.
//
// Returns:
//   - *Encoder: encoder ready for shapes
//   - error: invalid options
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, "data")
	if err != nil {
		return nil, err
	}

	return &Encoder{
		EncoderConfig: cfg,
		engine:        endian.Select(cfg.bigEndian),
		codec:         codec,
		data:          pool.GetSetBuffer(),
		entries:       make([]section.ShapeIndexEntry, 0, 16),
	}, nil
}

// AddShapeID encodes cells and adds them under a caller-chosen ID.
//
// Returns:
//   - error: errs.ErrMixedIdentifierMode after AddShape, errs.ErrShapeAlreadyAdded for a
//     reused ID, or the chaincode.Encode error
func (e *Encoder) AddShapeID(id uint64, cells []shape.Coord) error {
	if err := e.claimID(id); err != nil {
		return err
	}

	data, err := chaincode.Encode(cells, e.encodeOpts...)
	if err != nil {
		delete(e.usedIDs, id)
		return fmt.Errorf("shape 0x%016x: %w", id, err)
	}

	return e.add(id, len(shape.Normalize(cells)), data)
}

// AddEncoded adds an already encoded shape under a caller-chosen ID.
//
// The cell count is derived from the command stream; data is not replayed.
func (e *Encoder) AddEncoded(id uint64, data []byte) error {
	if err := e.claimID(id); err != nil {
		return err
	}

	n, err := chaincode.CellCount(data)
	if err != nil {
		delete(e.usedIDs, id)
		return fmt.Errorf("shape 0x%016x: %w", id, err)
	}

	return e.add(id, n, data)
}

// AddShape encodes cells and adds them under name.
//
// The shape ID is the xxHash64 of name. Two names with the same hash are accepted; the
// names payload keeps them apart.
//
// Returns:
//   - error: errs.ErrMixedIdentifierMode after AddShapeID, errs.ErrInvalidShapeName for an
//     empty name, errs.ErrShapeAlreadyAdded for a reused name, or the chaincode.Encode error
func (e *Encoder) AddShape(name string, cells []shape.Coord) error {
	if err := e.checkAdd(modeNameManaged); err != nil {
		return err
	}
	if name == "" {
		return errs.ErrInvalidShapeName
	}

	data, err := chaincode.Encode(cells, e.encodeOpts...)
	if err != nil {
		return fmt.Errorf("shape %q: %w", name, err)
	}

	if e.mode == modeUndefined {
		e.mode = modeNameManaged
		e.tracker = collision.NewTracker()
	}

	if err := e.checkSize(len(data)); err != nil {
		return err
	}

	id := hash.ID(name)
	if err := e.tracker.Track(name, id); err != nil {
		return err
	}

	return e.add(id, len(shape.Normalize(cells)), data)
}

// Len returns the number of shapes added so far.
func (e *Encoder) Len() int {
	return len(e.entries)
}

// HasCollision reports whether two added names share a hash.
func (e *Encoder) HasCollision() bool {
	return e.tracker != nil && e.tracker.HasCollision()
}

// Finish assembles the shape set. The encoder cannot be used afterwards.
//
// Returns:
//   - []byte: the shape set
//   - error: errs.ErrNoShapesAdded, errs.ErrEncoderFinished, or a compression error
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true

	defer func() {
		pool.PutSetBuffer(e.data)
		e.data = nil
	}()

	if len(e.entries) == 0 {
		return nil, errs.ErrNoShapesAdded
	}

	header, err := section.NewShapeSetHeader(len(e.entries))
	if err != nil {
		return nil, err
	}
	if e.bigEndian {
		header.Flag.WithBigEndian()
	}
	header.Flag.SetDataCompression(e.compression)

	raw := e.data.Bytes()
	header.DataSize = uint32(len(raw)) //nolint:gosec
	header.Checksum = hash.Fingerprint(raw)

	compressed, err := e.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}

	var names []byte
	if e.mode == modeNameManaged {
		names, err = ienc.EncodeShapeNames(e.tracker.Names(), e.engine)
		if err != nil {
			return nil, fmt.Errorf("failed to encode shape names: %w", err)
		}
		header.Flag.SetHasShapeNames(true)
	}

	indexSize := header.IndexSize()
	header.IndexOffset = section.IndexOffsetOffset + uint32(len(names)) //nolint:gosec
	header.DataOffset = header.IndexOffset + uint32(indexSize)          //nolint:gosec

	out := make([]byte, int(header.DataOffset)+len(compressed))
	offset := copy(out, header.Bytes())
	offset += copy(out[offset:], names)
	for i := range e.entries {
		if err := e.entries[i].WriteToSlice(out[offset+i*section.ShapeIndexEntrySize:], e.engine); err != nil {
			return nil, fmt.Errorf("failed to write index entry %d: %w", i, err)
		}
	}
	offset += indexSize
	copy(out[offset:], compressed)

	return out, nil
}

func (e *Encoder) checkAdd(mode identifierMode) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}

	if e.mode != modeUndefined && e.mode != mode {
		return errs.ErrMixedIdentifierMode
	}

	if len(e.entries) >= section.MaxShapeCount {
		return fmt.Errorf("%w: max %d", errs.ErrShapeCountExceeded, section.MaxShapeCount)
	}

	return nil
}

// claimID reserves id in ID mode.
func (e *Encoder) claimID(id uint64) error {
	if err := e.checkAdd(modeUserID); err != nil {
		return err
	}

	if e.mode == modeUndefined {
		e.mode = modeUserID
		e.usedIDs = make(map[uint64]struct{})
	}

	if _, ok := e.usedIDs[id]; ok {
		return fmt.Errorf("%w: id 0x%016x", errs.ErrShapeAlreadyAdded, id)
	}
	e.usedIDs[id] = struct{}{}

	return nil
}

func (e *Encoder) checkSize(n int) error {
	if uint64(e.data.Len())+uint64(n) > section.MaxDataSize { //nolint:gosec
		return fmt.Errorf("%w: data payload exceeds %d bytes", errs.ErrShapeCountExceeded, uint64(section.MaxDataSize))
	}

	return nil
}

func (e *Encoder) add(id uint64, cells int, data []byte) error {
	if err := e.checkSize(len(data)); err != nil {
		delete(e.usedIDs, id)
		return err
	}

	e.entries = append(e.entries, section.ShapeIndexEntry{
		ShapeID:   id,
		CellCount: uint32(cells),        //nolint:gosec
		Offset:    uint32(e.data.Len()), //nolint:gosec
		Size:      uint32(len(data)),    //nolint:gosec
	})
	e.data.MustWrite(data)

	return nil
}
