package chaincode

import (
	"fmt"

	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/format"
	"github.com/arloliu/polycode/internal/encoding"
	"github.com/arloliu/polycode/internal/options"
	"github.com/arloliu/polycode/internal/walk"
	"github.com/arloliu/polycode/shape"
)

// Decode reconstructs a polyomino from its encoded bytes.
//
// Parameters:
//   - data: encoded bytes as produced by Encode or EncodeWithConfig
//   - opts: decode options
//
// Returns:
//   - []shape.Coord: normalized cells; empty for empty data
//   - error: errs.ErrInvalidInput for malformed data
func Decode(data []byte, opts ...DecodeOption) ([]shape.Coord, error) {
	cfg := &DecodeConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return []shape.Coord{}, nil
	}

	config, cmds, err := ParseStream(data)
	if err != nil {
		return nil, err
	}

	cells, err := walk.Replay(cmds, config, walk.ReplayOptions{
		Strict: cfg.strict,
		Logger: Logger(),
	})
	if err != nil {
		return nil, err
	}

	return shape.Normalize(cells), nil
}

// ParseStream splits encoded bytes into the configuration and the command stream.
//
// Returns:
//   - format.Config: configuration stored in the first byte
//   - []format.Command: unpacked commands with padding removed
//   - error: errs.ErrInvalidInput if data is empty
func ParseStream(data []byte) (format.Config, []format.Command, error) {
	if len(data) < 1 {
		return format.Config{}, nil, fmt.Errorf("%w: encoded polyomino needs at least the index byte", errs.ErrInvalidInput)
	}

	config := format.ConfigFromIndex(data[0])
	cmds := encoding.NewCommandDecoder().Decode(data[1:])

	return config, cmds, nil
}

// CellCount returns the number of cells an encoded polyomino holds without replaying it.
//
// Every move lands on exactly one new cell, so the count is one more than the number of
// move commands. Empty data holds no cells.
func CellCount(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	_, cmds, err := ParseStream(data)
	if err != nil {
		return 0, err
	}

	n := 1
	for _, cmd := range cmds {
		if cmd.IsMove() {
			n++
		}
	}

	return n, nil
}
