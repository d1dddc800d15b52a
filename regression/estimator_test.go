package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/polycode/errs"
)

func TestModelType(t *testing.T) {
	for mt, name := range modelTypeNames {
		require.Equal(t, name, mt.String())
		require.Equal(t, mt, ModelTypeFromString(name))
	}

	require.Equal(t, ModelTypePower, ModelTypeFromString(" Power "))
	require.Equal(t, ModelTypeInvalid, ModelTypeFromString("cubic"))
	require.Equal(t, "unknown", ModelTypeInvalid.String())
}

func TestNewEstimator(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []float64
		want   ModelType
		n      float64
		bpc    float64
	}{
		{"hyperbolic", []float64{0.25, 1}, ModelTypeHyperbolic, 4, 0.5},
		{"Logarithmic", []float64{1, 2}, ModelTypeLogarithmic, math.E, 3},
		{"power", []float64{2, 0.5}, ModelTypePower, 16, 8},
		{"exponential", []float64{3, 0}, ModelTypeExponential, 50, 3},
		{"POLYNOMIAL", []float64{1, 2, 3}, ModelTypePolynomial, 2, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := NewEstimator(tt.name, tt.coeffs)
			require.NoError(t, err)
			require.Equal(t, tt.want, est.Type())
			require.Equal(t, tt.coeffs, est.Coefficients())
			require.InDelta(t, tt.bpc, est.Estimate(tt.n), 1e-9)

			require.Error(t, est.SetCoefficients([]float64{1}))
		})
	}
}

func TestNewEstimator_Errors(t *testing.T) {
	_, err := NewEstimator("cubic", []float64{1, 2})
	require.ErrorIs(t, err, errs.ErrUnknownModel)
	require.Contains(t, err.Error(), "exponential, hyperbolic, logarithmic, polynomial, power")

	_, err = NewEstimator("hyperbolic", []float64{1, 2, 3})
	require.Error(t, err)

	_, err = NewEstimator("polynomial", []float64{1, 2})
	require.Error(t, err)
}

func TestEstimate_NonPositive(t *testing.T) {
	require.True(t, math.IsInf(NewHyperbolicEstimator(1, 1).Estimate(0), 1))
	require.True(t, math.IsInf(NewLogarithmicEstimator(1, 1).Estimate(-1), 1))
	require.True(t, math.IsInf(NewPowerEstimator(1, 1).Estimate(0), 1))
}

func TestEstimateBytes(t *testing.T) {
	est := NewHyperbolicEstimator(0.25, 1)

	require.Equal(t, 0, EstimateBytes(est, 0))
	require.Equal(t, 17, EstimateBytes(est, 64))
	// 2.5 + 1 rounds up.
	require.Equal(t, 4, EstimateBytes(est, 10))
	require.Equal(t, 1, EstimateBytes(NewHyperbolicEstimator(0, 0), 5))
	require.Equal(t, 0, EstimateBytes(NewLogarithmicEstimator(math.NaN(), 0), 5))
}
