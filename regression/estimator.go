package regression

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/arloliu/polycode/errs"
)

// ModelType identifies a size model family.
type ModelType int

const (
	// ModelTypeHyperbolic is bpc = a + b / n: a per-cell cost plus the amortized index byte.
	ModelTypeHyperbolic ModelType = iota
	// ModelTypeLogarithmic is bpc = a + b * ln(n).
	ModelTypeLogarithmic
	// ModelTypePower is bpc = a * n^b.
	ModelTypePower
	// ModelTypeExponential is bpc = a * e^(b * n).
	ModelTypeExponential
	// ModelTypePolynomial is bpc = a + b*n + c*n².
	ModelTypePolynomial
)

// ModelTypeInvalid is returned by ModelTypeFromString for unknown names.
const ModelTypeInvalid ModelType = -1

var modelTypeNames = map[ModelType]string{
	ModelTypeHyperbolic:  "hyperbolic",
	ModelTypeLogarithmic: "logarithmic",
	ModelTypePower:       "power",
	ModelTypeExponential: "exponential",
	ModelTypePolynomial:  "polynomial",
}

// String returns the model name.
func (mt ModelType) String() string {
	if name, ok := modelTypeNames[mt]; ok {
		return name
	}

	return "unknown"
}

// ModelTypeFromString parses a model name, case-insensitive.
// It returns ModelTypeInvalid for unknown names.
func ModelTypeFromString(name string) ModelType {
	name = strings.ToLower(strings.TrimSpace(name))
	for mt, n := range modelTypeNames {
		if n == name {
			return mt
		}
	}

	return ModelTypeInvalid
}

// Estimator predicts encoded bytes per cell from a cell count.
type Estimator interface {
	// Estimate returns bytes per cell for n cells.
	Estimate(n float64) float64
	Type() ModelType
	Coefficients() []float64
	// SetCoefficients replaces the model coefficients. Polynomial models take three,
	// every other model takes two.
	SetCoefficients(coeffs []float64) error
}

// pair holds the coefficients shared by the two-coefficient models.
type pair struct {
	a, b float64
}

func (p *pair) Coefficients() []float64 {
	return []float64{p.a, p.b}
}

func (p *pair) set(mt ModelType, coeffs []float64) error {
	if len(coeffs) != 2 {
		return fmt.Errorf("%s model expects 2 coefficients, got %d", mt, len(coeffs))
	}
	p.a, p.b = coeffs[0], coeffs[1]

	return nil
}

// HyperbolicEstimator implements bpc = a + b / n.
type HyperbolicEstimator struct{ pair }

// NewHyperbolicEstimator creates a hyperbolic estimator.
func NewHyperbolicEstimator(a, b float64) *HyperbolicEstimator {
	return &HyperbolicEstimator{pair{a, b}}
}

// Estimate returns +Inf for non-positive n.
func (e *HyperbolicEstimator) Estimate(n float64) float64 {
	if n <= 0 {
		return math.Inf(1)
	}

	return e.a + e.b/n
}

func (e *HyperbolicEstimator) Type() ModelType { return ModelTypeHyperbolic }

func (e *HyperbolicEstimator) SetCoefficients(coeffs []float64) error {
	return e.set(ModelTypeHyperbolic, coeffs)
}

// LogarithmicEstimator implements bpc = a + b * ln(n).
type LogarithmicEstimator struct{ pair }

// NewLogarithmicEstimator creates a logarithmic estimator.
func NewLogarithmicEstimator(a, b float64) *LogarithmicEstimator {
	return &LogarithmicEstimator{pair{a, b}}
}

// Estimate returns +Inf for non-positive n.
func (e *LogarithmicEstimator) Estimate(n float64) float64 {
	if n <= 0 {
		return math.Inf(1)
	}

	return e.a + e.b*math.Log(n)
}

func (e *LogarithmicEstimator) Type() ModelType { return ModelTypeLogarithmic }

func (e *LogarithmicEstimator) SetCoefficients(coeffs []float64) error {
	return e.set(ModelTypeLogarithmic, coeffs)
}

// PowerEstimator implements bpc = a * n^b.
type PowerEstimator struct{ pair }

// NewPowerEstimator creates a power estimator.
func NewPowerEstimator(a, b float64) *PowerEstimator {
	return &PowerEstimator{pair{a, b}}
}

// Estimate returns +Inf for non-positive n.
func (e *PowerEstimator) Estimate(n float64) float64 {
	if n <= 0 {
		return math.Inf(1)
	}

	return e.a * math.Pow(n, e.b)
}

func (e *PowerEstimator) Type() ModelType { return ModelTypePower }

func (e *PowerEstimator) SetCoefficients(coeffs []float64) error {
	return e.set(ModelTypePower, coeffs)
}

// ExponentialEstimator implements bpc = a * e^(b * n).
type ExponentialEstimator struct{ pair }

// NewExponentialEstimator creates an exponential estimator.
func NewExponentialEstimator(a, b float64) *ExponentialEstimator {
	return &ExponentialEstimator{pair{a, b}}
}

func (e *ExponentialEstimator) Estimate(n float64) float64 {
	return e.a * math.Exp(e.b*n)
}

func (e *ExponentialEstimator) Type() ModelType { return ModelTypeExponential }

func (e *ExponentialEstimator) SetCoefficients(coeffs []float64) error {
	return e.set(ModelTypeExponential, coeffs)
}

// PolynomialEstimator implements bpc = a + b*n + c*n².
type PolynomialEstimator struct {
	a, b, c float64
}

// NewPolynomialEstimator creates a quadratic estimator.
func NewPolynomialEstimator(a, b, c float64) *PolynomialEstimator {
	return &PolynomialEstimator{a: a, b: b, c: c}
}

func (e *PolynomialEstimator) Estimate(n float64) float64 {
	return e.a + e.b*n + e.c*n*n
}

func (e *PolynomialEstimator) Type() ModelType { return ModelTypePolynomial }

func (e *PolynomialEstimator) Coefficients() []float64 {
	return []float64{e.a, e.b, e.c}
}

func (e *PolynomialEstimator) SetCoefficients(coeffs []float64) error {
	if len(coeffs) != 3 {
		return fmt.Errorf("%s model expects 3 coefficients, got %d", ModelTypePolynomial, len(coeffs))
	}
	e.a, e.b, e.c = coeffs[0], coeffs[1], coeffs[2]

	return nil
}

// NewEstimator creates an estimator from a model name and its coefficients.
//
// This is the inverse of Model.Type plus Model.Coefficients, so a fitted model can be
// stored as plain values and restored later:
//
//	est, err := regression.NewEstimator("hyperbolic", []float64{0.28, 0.9})
//	if err != nil {
//	    return err
//	}
//	size := regression.EstimateBytes(est, 64)
//
// Returns:
//   - Estimator: the estimator
//   - error: errs.ErrUnknownModel for unknown names, or a coefficient count error
func NewEstimator(name string, coeffs []float64) (Estimator, error) {
	var est Estimator
	switch ModelTypeFromString(name) {
	case ModelTypeHyperbolic:
		est = &HyperbolicEstimator{}
	case ModelTypeLogarithmic:
		est = &LogarithmicEstimator{}
	case ModelTypePower:
		est = &PowerEstimator{}
	case ModelTypeExponential:
		est = &ExponentialEstimator{}
	case ModelTypePolynomial:
		est = &PolynomialEstimator{}
	default:
		supported := make([]string, 0, len(modelTypeNames))
		for _, n := range modelTypeNames {
			supported = append(supported, n)
		}
		slices.Sort(supported)

		return nil, fmt.Errorf("%w: %q, supported: %s", errs.ErrUnknownModel, name, strings.Join(supported, ", "))
	}

	if err := est.SetCoefficients(coeffs); err != nil {
		return nil, err
	}

	return est, nil
}
