package regression

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/polycode/chaincode"
	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/shape"
	"github.com/arloliu/polycode/shapeset"
)

// hyperbolicSamples returns samples lying exactly on bpc = a + b / n.
func hyperbolicSamples(a, b float64) []Sample {
	var samples []Sample
	for n := 4; n <= 64; n += 4 {
		bytes := a*float64(n) + b
		samples = append(samples, Sample{Cells: n, Bytes: int(math.Round(bytes))})
	}

	return samples
}

func growShapes(seed int64) [][]shape.Coord {
	rng := rand.New(rand.NewSource(seed))
	var shapes [][]shape.Coord
	for n := 4; n <= 40; n++ {
		for range 4 {
			shapes = append(shapes, shape.Grow(rng, n))
		}
	}

	return shapes
}

// ==============================================================================
// Analyze Tests
// ==============================================================================

func TestAnalyze_Hyperbolic(t *testing.T) {
	// Integer byte counts: a*n + b is exact for these multiples of four.
	samples := hyperbolicSamples(0.25, 1)

	res, err := Analyze(samples)
	require.NoError(t, err)
	require.Len(t, res.AllModels, 5)
	require.Same(t, res.AllModels[0], res.BestFit)
	require.Equal(t, len(samples), res.Samples)
	require.Len(t, res.CellCounts, len(samples))
	require.Len(t, res.BytesPerCell, len(samples))

	best := res.BestFit
	require.Equal(t, ModelTypeHyperbolic, best.Type)
	require.InDelta(t, 1.0, best.RSquared, 1e-9)
	require.InDelta(t, 0.0, best.RMSE, 1e-9)
	require.InDelta(t, 0.25, best.Coefficients[0], 1e-9)
	require.InDelta(t, 1.0, best.Coefficients[1], 1e-9)
	require.Contains(t, best.Formula, "/ n")

	for i := 1; i < len(res.AllModels); i++ {
		require.GreaterOrEqual(t, res.AllModels[i-1].RSquared, res.AllModels[i].RSquared)
	}

	require.InDelta(t, 0.265625, best.Estimator.Estimate(64), 1e-9)
}

func TestAnalyze_GroupsByCellCount(t *testing.T) {
	samples := []Sample{
		{Cells: 10, Bytes: 4}, {Cells: 10, Bytes: 6},
		{Cells: 20, Bytes: 8},
		{Cells: 30, Bytes: 10}, {Cells: 30, Bytes: 11}, {Cells: 30, Bytes: 12},
		{Cells: 0, Bytes: 0},
	}

	res, err := Analyze(samples)
	require.NoError(t, err)
	require.Equal(t, []int{10, 20, 30}, res.CellCounts)
	require.InDeltaSlice(t, []float64{0.5, 0.4, 11.0 / 30}, res.BytesPerCell, 1e-12)
	require.Equal(t, 6, res.Samples)
}

func TestAnalyze_Errors(t *testing.T) {
	_, err := Analyze(nil)
	require.ErrorIs(t, err, errs.ErrInsufficientSamples)

	_, err = Analyze([]Sample{{Cells: 1, Bytes: 1}, {Cells: 2, Bytes: 1}, {Cells: 2, Bytes: 2}})
	require.ErrorIs(t, err, errs.ErrInsufficientSamples)

	_, err = Analyze(hyperbolicSamples(0.25, 1), WithMinCellCounts(2))
	require.Error(t, err)

	_, err = Analyze(hyperbolicSamples(0.25, 1)[:4], WithMinCellCounts(5))
	require.ErrorIs(t, err, errs.ErrInsufficientSamples)
}

// ==============================================================================
// Encoded Shape Tests
// ==============================================================================

func TestAnalyzeShapes(t *testing.T) {
	res, err := AnalyzeShapes(growShapes(7))
	require.NoError(t, err)
	require.Equal(t, 37*4, res.Samples)
	require.Len(t, res.CellCounts, 37)
	require.Greater(t, res.BestFit.RSquared, 0.5)

	// 19 moves take at least 38 bits, and at most three commands follow each cell.
	est := EstimateBytes(res.BestFit.Estimator, 20)
	require.GreaterOrEqual(t, est, 4)
	require.LessOrEqual(t, est, 21)
}

func TestAnalyzeShapes_Pruning(t *testing.T) {
	shapes := growShapes(3)

	pruned, err := AnalyzeShapes(shapes)
	require.NoError(t, err)
	naive, err := AnalyzeShapes(shapes, WithEncodeOptions(chaincode.WithPruning(false)))
	require.NoError(t, err)

	var sumPruned, sumNaive float64
	for i := range pruned.BytesPerCell {
		require.LessOrEqual(t, pruned.BytesPerCell[i], naive.BytesPerCell[i])
		sumPruned += pruned.BytesPerCell[i]
		sumNaive += naive.BytesPerCell[i]
	}
	require.Less(t, sumPruned, sumNaive)
}

func TestAnalyzeShapes_Disconnected(t *testing.T) {
	shapes := growShapes(1)
	shapes = append(shapes, []shape.Coord{{X: 0, Y: 0}, {X: 2, Y: 0}})

	_, err := AnalyzeShapes(shapes)
	require.ErrorIs(t, err, errs.ErrUncoverableShape)
}

func TestAnalyzeSet(t *testing.T) {
	shapes := growShapes(11)

	enc, err := shapeset.NewEncoder()
	require.NoError(t, err)
	samples := make([]Sample, 0, len(shapes))
	for i, cells := range shapes {
		require.NoError(t, enc.AddShapeID(uint64(i), cells)) //nolint:gosec
		data, err := chaincode.Encode(cells)
		require.NoError(t, err)
		samples = append(samples, Sample{Cells: len(cells), Bytes: len(data)})
	}
	blob, err := enc.Finish()
	require.NoError(t, err)

	dec, err := shapeset.NewDecoder(blob)
	require.NoError(t, err)
	set, err := dec.Decode()
	require.NoError(t, err)

	got, err := SetSamples(set)
	require.NoError(t, err)
	require.Equal(t, samples, got)

	fromSet, err := AnalyzeSet(set)
	require.NoError(t, err)
	direct, err := Analyze(samples)
	require.NoError(t, err)
	require.Equal(t, direct.CellCounts, fromSet.CellCounts)
	require.Equal(t, direct.BestFit.Type, fromSet.BestFit.Type)
	require.InDelta(t, direct.BestFit.RSquared, fromSet.BestFit.RSquared, 1e-12)

	each, err := AnalyzeEach([]*shapeset.Set{set, set})
	require.NoError(t, err)
	require.Len(t, each, 2)
	require.Equal(t, fromSet.BestFit.Coefficients, each[1].BestFit.Coefficients)
}

// ==============================================================================
// Benchmarks
// ==============================================================================

func BenchmarkAnalyze(b *testing.B) {
	samples := hyperbolicSamples(0.3, 1)
	for b.Loop() {
		_, _ = Analyze(samples)
	}
}
