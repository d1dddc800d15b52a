package regression

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/polycode/chaincode"
	"github.com/arloliu/polycode/errs"
	"github.com/arloliu/polycode/internal/options"
	"github.com/arloliu/polycode/shape"
	"github.com/arloliu/polycode/shapeset"
)

// Sample is the encoded size of one shape.
type Sample struct {
	Cells int
	Bytes int
}

// Analyze fits every size model to samples and ranks them by R².
//
// Samples are grouped by cell count and each group contributes its mean bytes per cell,
// so the fit is not skewed toward the most common sizes. Samples without cells are ignored.
//
// Parameters:
//   - samples: encoded sizes
//   - opts: analysis options; WithEncodeOptions has no effect here
//
// Returns:
//   - *Result: fitted models, best first
//   - error: errs.ErrInsufficientSamples if the samples cover too few distinct cell counts
func Analyze(samples []Sample, opts ...AnalyzeOption) (*Result, error) {
	cfg := newAnalyzeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return analyze(samples, cfg)
}

// AnalyzeShapes encodes each shape and fits the size models to the results.
//
// Returns:
//   - *Result: fitted models, best first
//   - error: an encode error wrapped with the shape position, or errs.ErrInsufficientSamples
func AnalyzeShapes(shapes [][]shape.Coord, opts ...AnalyzeOption) (*Result, error) {
	cfg := newAnalyzeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	samples := make([]Sample, 0, len(shapes))
	for i, cells := range shapes {
		data, err := chaincode.Encode(cells, cfg.encodeOpts...)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		samples = append(samples, Sample{Cells: len(shape.Normalize(cells)), Bytes: len(data)})
	}

	return analyze(samples, cfg)
}

// AnalyzeSet fits the size models to the shapes stored in a decoded shape set.
//
// Encoded sizes are taken as stored, and cell counts come from the command streams, so
// no shape is decoded.
func AnalyzeSet(set *shapeset.Set, opts ...AnalyzeOption) (*Result, error) {
	cfg := newAnalyzeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	samples, err := SetSamples(set)
	if err != nil {
		return nil, err
	}

	return analyze(samples, cfg)
}

// AnalyzeEach fits each shape set on its own, which makes drift between batches visible.
func AnalyzeEach(sets []*shapeset.Set, opts ...AnalyzeOption) ([]*Result, error) {
	results := make([]*Result, 0, len(sets))
	for i, set := range sets {
		res, err := AnalyzeSet(set, opts...)
		if err != nil {
			return nil, fmt.Errorf("set %d: %w", i, err)
		}
		results = append(results, res)
	}

	return results, nil
}

// SetSamples returns one sample per shape in set, in storage order.
func SetSamples(set *shapeset.Set) ([]Sample, error) {
	samples := make([]Sample, 0, set.Len())
	for id, data := range set.All() {
		n, err := chaincode.CellCount(data)
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", id, err)
		}
		samples = append(samples, Sample{Cells: n, Bytes: len(data)})
	}

	return samples, nil
}

func analyze(samples []Sample, cfg *AnalyzeConfig) (*Result, error) {
	type bucket struct {
		bytes int
		count int
	}

	buckets := make(map[int]*bucket)
	used := 0
	for _, s := range samples {
		if s.Cells <= 0 {
			continue
		}
		b, ok := buckets[s.Cells]
		if !ok {
			b = &bucket{}
			buckets[s.Cells] = b
		}
		b.bytes += s.Bytes
		b.count++
		used++
	}

	if len(buckets) < cfg.minCellCounts {
		return nil, fmt.Errorf("%w: %d distinct cell counts, need %d",
			errs.ErrInsufficientSamples, len(buckets), cfg.minCellCounts)
	}

	res := &Result{
		CellCounts:   make([]int, 0, len(buckets)),
		BytesPerCell: make([]float64, 0, len(buckets)),
		Samples:      used,
	}
	for n := range buckets {
		res.CellCounts = append(res.CellCounts, n)
	}
	slices.Sort(res.CellCounts)

	x := make([]float64, len(res.CellCounts))
	for i, n := range res.CellCounts {
		b := buckets[n]
		x[i] = float64(n)
		res.BytesPerCell = append(res.BytesPerCell, float64(b.bytes)/float64(b.count)/float64(n))
	}

	res.AllModels = fitAll(x, res.BytesPerCell)
	res.BestFit = res.AllModels[0]

	return res, nil
}

// fitAll fits every model family and sorts by R², keeping family order on ties.
func fitAll(x, y []float64) []*Model {
	candidates := []*Model{
		fitHyperbolic(x, y),
		fitLogarithmic(x, y),
		fitPower(x, y),
		fitExponential(x, y),
		fitPolynomial(x, y),
	}

	models := make([]*Model, 0, len(candidates))
	for _, m := range candidates {
		if m != nil {
			models = append(models, m)
		}
	}

	slices.SortStableFunc(models, func(a, b *Model) int {
		return cmp.Compare(b.RSquared, a.RSquared)
	})

	return models
}

func fitHyperbolic(x, y []float64) *Model {
	a, b, ok := fitLine(mapValues(x, func(v float64) float64 { return 1 / v }), y)
	if !ok {
		return nil
	}

	return newModel(NewHyperbolicEstimator(a, b), fmt.Sprintf("bpc = %.4f + %.4f / n", a, b), x, y)
}

func fitLogarithmic(x, y []float64) *Model {
	a, b, ok := fitLine(mapValues(x, math.Log), y)
	if !ok {
		return nil
	}

	return newModel(NewLogarithmicEstimator(a, b), fmt.Sprintf("bpc = %.4f + %.4f * ln(n)", a, b), x, y)
}

// fitPower fits ln(bpc) = ln(a) + b*ln(n).
func fitPower(x, y []float64) *Model {
	if !allPositive(y) {
		return nil
	}

	la, b, ok := fitLine(mapValues(x, math.Log), mapValues(y, math.Log))
	if !ok {
		return nil
	}
	a := math.Exp(la)

	return newModel(NewPowerEstimator(a, b), fmt.Sprintf("bpc = %.4f * n^%.4f", a, b), x, y)
}

// fitExponential fits ln(bpc) = ln(a) + b*n.
func fitExponential(x, y []float64) *Model {
	if !allPositive(y) {
		return nil
	}

	la, b, ok := fitLine(x, mapValues(y, math.Log))
	if !ok {
		return nil
	}
	a := math.Exp(la)

	return newModel(NewExponentialEstimator(a, b), fmt.Sprintf("bpc = %.4f * e^(%.6f * n)", a, b), x, y)
}

// fitPolynomial solves the quadratic normal equations by Cramer's rule and falls back to
// a straight line when they are singular.
func fitPolynomial(x, y []float64) *Model {
	var s0, s1, s2, s3, s4, t0, t1, t2 float64
	for i, xi := range x {
		xi2 := xi * xi
		s0++
		s1 += xi
		s2 += xi2
		s3 += xi2 * xi
		s4 += xi2 * xi2
		t0 += y[i]
		t1 += xi * y[i]
		t2 += xi2 * y[i]
	}

	det := det3(s0, s1, s2, s1, s2, s3, s2, s3, s4)
	if math.Abs(det) < 1e-10 {
		a, b, ok := fitLine(x, y)
		if !ok {
			return nil
		}

		return newModel(NewPolynomialEstimator(a, b, 0), fmt.Sprintf("bpc = %.4f + %.4f*n", a, b), x, y)
	}

	a := det3(t0, s1, s2, t1, s2, s3, t2, s3, s4) / det
	b := det3(s0, t0, s2, s1, t1, s3, s2, t2, s4) / det
	c := det3(s0, s1, t0, s1, s2, t1, s2, s3, t2) / det

	return newModel(NewPolynomialEstimator(a, b, c), fmt.Sprintf("bpc = %.4f + %.4f*n + %.6f*n²", a, b, c), x, y)
}

// det3 is the determinant of the row-major 3x3 matrix.
func det3(a, b, c, d, e, f, g, h, i float64) float64 {
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// fitLine returns the least squares line v = a + b*u. ok is false when u has no spread.
func fitLine(u, v []float64) (a, b float64, ok bool) {
	if len(u) < 2 {
		return 0, 0, false
	}

	mu, mv := mean(u), mean(v)
	var sxy, sxx float64
	for i := range u {
		du := u[i] - mu
		sxy += du * (v[i] - mv)
		sxx += du * du
	}
	if sxx == 0 {
		return 0, 0, false
	}

	b = sxy / sxx

	return mv - b*mu, b, true
}

func newModel(est Estimator, formula string, x, y []float64) *Model {
	r2, rmse := goodness(est, x, y)

	return &Model{
		Type:         est.Type(),
		Coefficients: est.Coefficients(),
		RSquared:     r2,
		RMSE:         rmse,
		Formula:      formula,
		Estimator:    est,
	}
}

// goodness returns R² and RMSE of est over the observed points.
// R² is zero when the observations have no variance.
func goodness(est Estimator, x, y []float64) (r2, rmse float64) {
	if len(y) == 0 {
		return 0, 0
	}

	my := mean(y)
	var ssTot, ssRes float64
	for i := range y {
		r := y[i] - est.Estimate(x[i])
		ssRes += r * r
		d := y[i] - my
		ssTot += d * d
	}

	rmse = math.Sqrt(ssRes / float64(len(y)))
	if ssTot == 0 || math.IsNaN(ssRes) || math.IsInf(ssRes, 0) {
		return 0, rmse
	}

	return 1 - ssRes/ssTot, rmse
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

func mapValues(values []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = fn(v)
	}

	return out
}

func allPositive(values []float64) bool {
	for _, v := range values {
		if v <= 0 {
			return false
		}
	}

	return true
}
