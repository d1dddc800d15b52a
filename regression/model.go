package regression

import "math"

// Model is one fitted size model.
type Model struct {
	Type         ModelType
	Coefficients []float64
	// RSquared is the coefficient of determination over the fitted points.
	RSquared float64
	// RMSE is the root mean squared error in bytes per cell.
	RMSE    float64
	Formula string
	// Estimator predicts bytes per cell for a cell count using this model.
	Estimator Estimator
}

// Result holds every model fitted to a sample set, best first.
type Result struct {
	BestFit   *Model
	AllModels []*Model
	// CellCounts lists the distinct cell counts that were fitted, ascending.
	CellCounts []int
	// BytesPerCell holds the mean encoded bytes per cell for each entry of CellCounts.
	BytesPerCell []float64
	// Samples is the number of encoded shapes behind the fit.
	Samples int
}

// EstimateBytes predicts the encoded size of a shape with the given number of cells.
//
// The prediction is rounded up and never below the single index byte.
func EstimateBytes(est Estimator, cells int) int {
	if cells <= 0 {
		return 0
	}

	bpc := est.Estimate(float64(cells))
	if math.IsNaN(bpc) || math.IsInf(bpc, 0) {
		return 0
	}

	return max(1, int(math.Ceil(bpc*float64(cells))))
}
