package chaincode

import (
	"bytes"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/format"
	"github.com/arloliu/polycode/internal/encoding"
	"github.com/arloliu/polycode/internal/grid"
	"github.com/arloliu/polycode/internal/options"
	"github.com/arloliu/polycode/internal/walk"
	"github.com/arloliu/polycode/shape"
)

// Candidate is the result of encoding a shape under one configuration.
type Candidate struct {
	Index  uint8
	Config format.Config
	// Data is the encoded byte sequence including the index byte. Nil when Err is set.
	Data []byte
	// Bits is the number of command bits, excluding the index byte and padding.
	Bits int
	Err  error
}

// Encode encodes a polyomino into the shortest byte sequence over all configurations.
//
// The input is normalized first, so any translation, order or duplication of the same
// cells yields the same output. Ties in length are broken by the lexicographically smaller
// byte sequence, which makes the result deterministic.
//
// Parameters:
//   - cells: polyomino cells
//   - opts: encode options
//
// Returns:
//   - []byte: encoded bytes; empty for an empty polyomino
//   - error: errs.ErrUncoverableShape if no configuration covers the shape,
//     errs.ErrDisconnectedShape with WithConnectivityCheck
func Encode(cells []shape.Coord, opts ...EncodeOption) ([]byte, error) {
	cfg := newEncodeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(cells) == 0 {
		return []byte{}, nil
	}

	normalized, err := prepare(cells, cfg)
	if err != nil {
		return nil, err
	}

	candidates := search(normalized, cfg)
	best := -1
	failed := 0
	for i := range candidates {
		if candidates[i].Err != nil {
			failed++
			continue
		}
		if best < 0 || better(candidates[i].Data, candidates[best].Data) {
			best = i
		}
	}

	if best < 0 {
		return nil, fmt.Errorf("%w: all %d configurations failed for %d cells",
			errs.ErrUncoverableShape, format.ConfigCount, len(normalized))
	}

	winner := candidates[best]
	if ce := Logger().Check(zap.DebugLevel, "selected configuration"); ce != nil {
		ce.Write(
			zap.Uint8("index", winner.Index),
			zap.Stringer("config", winner.Config),
			zap.Int("cells", len(normalized)),
			zap.Int("bytes", len(winner.Data)),
			zap.Int("failed", failed),
		)
	}

	return winner.Data, nil
}

// EncodeWithConfig encodes a polyomino under a single configuration.
//
// Parameters:
//   - cells: polyomino cells
//   - config: traversal configuration
//   - opts: encode options; WithConcurrency has no effect
//
// Returns:
//   - []byte: encoded bytes including the index byte; empty for an empty polyomino
//   - error: errs.ErrUncoverableShape if the walk cannot cover the shape
func EncodeWithConfig(cells []shape.Coord, config format.Config, opts ...EncodeOption) ([]byte, error) {
	cfg := newEncodeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(cells) == 0 {
		return []byte{}, nil
	}

	normalized, err := prepare(cells, cfg)
	if err != nil {
		return nil, err
	}

	c := encodeOne(grid.NewDense(normalized), config, cfg)

	return c.Data, c.Err
}

// Candidates encodes a polyomino under every configuration.
//
// The result has one entry per configuration in index order. Failed configurations carry
// their error in Candidate.Err. It exists for measurement and for verifying that Encode
// picks the best candidate.
//
// Returns:
//   - []Candidate: 256 entries; empty for an empty polyomino
//   - error: option errors, or errs.ErrDisconnectedShape with WithConnectivityCheck
func Candidates(cells []shape.Coord, opts ...EncodeOption) ([]Candidate, error) {
	cfg := newEncodeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if len(cells) == 0 {
		return []Candidate{}, nil
	}

	normalized, err := prepare(cells, cfg)
	if err != nil {
		return nil, err
	}

	return search(normalized, cfg), nil
}

func prepare(cells []shape.Coord, cfg *EncodeConfig) ([]shape.Coord, error) {
	normalized := shape.Normalize(cells)
	if cfg.connectivityCheck && !shape.IsConnected(normalized) {
		return nil, fmt.Errorf("%w: %d cells", errs.ErrDisconnectedShape, len(normalized))
	}

	return normalized, nil
}

// search runs every configuration against its own copy of the grid.
//
// Each worker owns one scratch grid and handles the indices congruent to its id, writing
// into a distinct slot of the result slice. The reduction happens after all workers finish,
// so the outcome never depends on scheduling.
func search(normalized []shape.Coord, cfg *EncodeConfig) []Candidate {
	base := grid.NewDense(normalized)
	results := make([]Candidate, format.ConfigCount)

	workers := min(cfg.concurrency, format.ConfigCount)
	run := func(id int) {
		var scratch grid.Dense
		for i := id; i < format.ConfigCount; i += workers {
			scratch.CopyFrom(base)
			results[i] = encodeOne(&scratch, format.ConfigFromIndex(uint8(i)), cfg) //nolint:gosec
		}
	}

	if workers <= 1 {
		run(0)
		return results
	}

	var wg sync.WaitGroup
	for id := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run(id)
		}()
	}
	wg.Wait()

	return results
}

// encodeOne walks g (consuming it) under config and packs the stream.
func encodeOne(g *grid.Dense, config format.Config, cfg *EncodeConfig) Candidate {
	c := Candidate{Index: config.Index(), Config: config}

	cmds, err := walk.Encode(g, config, walk.Options{
		DisablePruning: !cfg.pruning,
		PrunePending:   cfg.pendingPruning,
	})
	if err != nil {
		c.Err = err
		return c
	}

	enc := encoding.NewCommandEncoder()
	enc.WriteIndex(c.Index)
	enc.WriteSlice(cmds)
	c.Bits = enc.BitLen()
	c.Data = enc.Finish()

	return c
}

// better reports whether a beats b: shorter first, then lexicographically smaller.
func better(a, b []byte) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}

	return bytes.Compare(a, b) < 0
}
