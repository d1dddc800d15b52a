package chaincode

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/format"
	"github.com/arloliu/polycode/shape"
)

var canonical = []shape.Coord{
	{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 0},
	{X: 3, Y: 1}, {X: 3, Y: 2}, {X: 4, Y: 0}, {X: 4, Y: 1},
}

// ==============================================================================
// Basic Functionality Tests
// ==============================================================================

func TestEncode_Empty(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	require.NotNil(t, data)
	require.Empty(t, data)

	cells, err := Decode([]byte{})
	require.NoError(t, err)
	require.NotNil(t, cells)
	require.Empty(t, cells)

	candidates, err := Candidates(nil)
	require.NoError(t, err)
	require.Empty(t, candidates)

	data, err = EncodeWithConfig(nil, format.Config{})
	require.NoError(t, err)
	require.Empty(t, data)
}

func TestEncode_SingleCell(t *testing.T) {
	data, err := Encode([]shape.Coord{{X: 0, Y: 0}})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, data)

	cells, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, []shape.Coord{{X: 0, Y: 0}}, cells)

	// Position does not matter.
	data, err = Encode([]shape.Coord{{X: -40, Y: 12}})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00}, data)
}

func TestEncode_Line(t *testing.T) {
	// Configuration 0 starts at the left end facing right: forward, forward.
	data, err := Encode([]shape.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}})
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x0F}, data)
}

func TestEncode_Canonical(t *testing.T) {
	data, err := Encode(canonical)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	cells, err := Decode(data, WithStrict(true))
	require.NoError(t, err)
	require.Len(t, cells, 8)
	require.Equal(t, shape.Normalize(canonical), cells)

	n, err := CellCount(data)
	require.NoError(t, err)
	require.Equal(t, 8, n)
}

func TestEncode_NormalizesInput(t *testing.T) {
	shifted := make([]shape.Coord, 0, len(canonical)*2)
	for i := len(canonical) - 1; i >= 0; i-- {
		c := canonical[i].Add(17, -9)
		shifted = append(shifted, c, c)
	}

	want, err := Encode(canonical)
	require.NoError(t, err)
	got, err := Encode(shifted)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestEncodeWithConfig(t *testing.T) {
	for idx, cfg := range format.AllConfigs() {
		data, err := EncodeWithConfig(canonical, cfg)
		if errors.Is(err, errs.ErrUncoverableShape) {
			continue
		}
		require.NoError(t, err)
		require.Equal(t, idx, data[0])

		cells, err := Decode(data, WithStrict(true))
		require.NoError(t, err)
		require.Equal(t, shape.Normalize(canonical), cells, "config %d", idx)
	}
}

// ==============================================================================
// Error Handling Tests
// ==============================================================================

func TestEncode_Disconnected(t *testing.T) {
	cells := []shape.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 3, Y: 0}}

	_, err := Encode(cells)
	require.ErrorIs(t, err, errs.ErrUncoverableShape)

	_, err = Encode(cells, WithConnectivityCheck(true))
	require.ErrorIs(t, err, errs.ErrDisconnectedShape)

	_, err = Candidates(cells, WithConnectivityCheck(true))
	require.ErrorIs(t, err, errs.ErrDisconnectedShape)
}

func TestEncode_InvalidOption(t *testing.T) {
	_, err := Encode(canonical, WithConcurrency(0))
	require.Error(t, err)

	_, err = Candidates(canonical, WithConcurrency(-2))
	require.Error(t, err)
}

func TestParseStream(t *testing.T) {
	_, _, err := ParseStream(nil)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	cfg, cmds, err := ParseStream([]byte{0x85, 0x3D})
	require.NoError(t, err)
	require.Equal(t, format.ConfigFromIndex(0x85), cfg)
	require.Equal(t, []format.Command{format.CmdForward, format.CmdPop, format.CmdTurnRight}, cmds)
}

func TestDecode_EmptyBacktrack(t *testing.T) {
	// Index 0, then pop and forward.
	data := []byte{0x00, 0xF3}

	cells, err := Decode(data)
	require.NoError(t, err)
	require.Equal(t, []shape.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}}, cells)

	_, err = Decode(data, WithStrict(true))
	require.ErrorIs(t, err, errs.ErrInvalidInput)
	require.ErrorIs(t, err, errs.ErrEmptyBacktrack)
}

func TestCellCount(t *testing.T) {
	n, err := CellCount(nil)
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = CellCount([]byte{0x00})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = CellCount([]byte{0x00, 0x0F})
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

// ==============================================================================
// Property Tests
// ==============================================================================

func TestRoundTrip_RandomShapes(t *testing.T) {
	rng := rand.New(rand.NewSource(31337))

	for i := range 150 {
		cells := shape.Grow(rng, 1+rng.Intn(60))

		data, err := Encode(cells)
		require.NoError(t, err, "shape %d", i)
		require.NotEmpty(t, data)

		got, err := Decode(data, WithStrict(true))
		require.NoError(t, err, "shape %d", i)
		require.Equal(t, cells, got, "shape %d", i)
	}
}

func TestEncode_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for range 20 {
		cells := shape.Grow(rng, 5+rng.Intn(40))

		first, err := Encode(cells)
		require.NoError(t, err)
		second, err := Encode(cells)
		require.NoError(t, err)
		parallel, err := Encode(cells, WithConcurrency(7))
		require.NoError(t, err)

		require.Equal(t, first, second)
		require.Equal(t, first, parallel)
	}
}

func TestEncode_Minimal(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for range 20 {
		cells := shape.Grow(rng, 2+rng.Intn(40))

		chosen, err := Encode(cells)
		require.NoError(t, err)

		candidates, err := Candidates(cells, WithConcurrency(4))
		require.NoError(t, err)
		require.Len(t, candidates, format.ConfigCount)

		for i, c := range candidates {
			require.Equal(t, uint8(i), c.Index) //nolint:gosec
			if c.Err != nil {
				require.ErrorIs(t, c.Err, errs.ErrUncoverableShape)
				continue
			}

			require.GreaterOrEqual(t, len(c.Data), len(chosen), "config %d is shorter", i)
			if len(c.Data) == len(chosen) {
				require.GreaterOrEqual(t, bytes.Compare(c.Data, chosen), 0, "config %d wins the tie", i)
			}
			require.Equal(t, len(c.Data), 1+(c.Bits+7)/8)
		}
	}
}

func TestEncode_PruningShortens(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	totalPruned, totalNaive := 0, 0

	for range 30 {
		cells := shape.Grow(rng, 10+rng.Intn(40))

		pruned, err := Encode(cells)
		require.NoError(t, err)
		naive, err := Encode(cells, WithPruning(false))
		require.NoError(t, err)

		require.LessOrEqual(t, len(pruned), len(naive))
		totalPruned += len(pruned)
		totalNaive += len(naive)

		got, err := Decode(naive, WithStrict(true))
		require.NoError(t, err)
		require.Equal(t, cells, got)
	}

	require.Less(t, totalPruned, totalNaive)
}

func TestEncode_PendingPruning(t *testing.T) {
	square := []shape.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}
	F, R, Psh := format.CmdForward, format.CmdTurnRight, format.CmdPush

	// The opening push of the square is never popped but stays in the standard stream.
	data, err := Encode(square)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xC5}, data)
	_, cmds, err := ParseStream(data)
	require.NoError(t, err)
	require.Equal(t, []format.Command{Psh, F, R, R}, cmds)

	dropped, err := Encode(square, WithPendingPruning(true))
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x17}, dropped)
	_, cmds, err = ParseStream(dropped)
	require.NoError(t, err)
	require.Equal(t, []format.Command{F, R, R}, cmds)

	for _, d := range [][]byte{data, dropped} {
		cells, err := Decode(d, WithStrict(true))
		require.NoError(t, err)
		require.Equal(t, square, cells)
	}

	rng := rand.New(rand.NewSource(5))
	for range 20 {
		cells := shape.Grow(rng, 2+rng.Intn(40))

		standard, err := Encode(cells)
		require.NoError(t, err)
		pending, err := Encode(cells, WithPendingPruning(true))
		require.NoError(t, err)
		require.LessOrEqual(t, len(pending), len(standard))

		got, err := Decode(pending, WithStrict(true))
		require.NoError(t, err)
		require.Equal(t, cells, got)
	}
}

// ==============================================================================
// Logging
// ==============================================================================

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	_, err := Encode(canonical)
	require.NoError(t, err)

	_, err = Decode([]byte{0x00, 0xF3})
	require.NoError(t, err)

	require.Equal(t, 1, logs.FilterMessage("selected configuration").Len())
	require.Equal(t, 1, logs.FilterMessage("ignoring pop on empty backtrack store").Len())
}

// ==============================================================================
// Benchmarks
// ==============================================================================

func BenchmarkEncode(b *testing.B) {
	cells := shape.Grow(rand.New(rand.NewSource(1)), 64)
	for b.Loop() {
		_, _ = Encode(cells)
	}
}

func BenchmarkEncode_Parallel(b *testing.B) {
	cells := shape.Grow(rand.New(rand.NewSource(1)), 64)
	for b.Loop() {
		_, _ = Encode(cells, WithConcurrency(8))
	}
}

func BenchmarkDecode(b *testing.B) {
	data, err := Encode(shape.Grow(rand.New(rand.NewSource(1)), 64))
	require.NoError(b, err)
	for b.Loop() {
		_, _ = Decode(data)
	}
}
