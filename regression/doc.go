// Package regression fits encoded-size models for polyomino chain codes.
//
// The encoded size of a shape grows roughly linearly with its cell count: about two bits
// per move, plus branch pushes and pops, plus one index byte. Dividing by the cell count
// gives bytes per cell (bpc), which this package models as a function of the cell count n
// so that storage can be planned before shapes are encoded.
//
// Five model families are fitted by least squares and ranked by R²:
//
//	hyperbolic:  bpc = a + b / n
//	logarithmic: bpc = a + b * ln(n)
//	power:       bpc = a * n^b
//	exponential: bpc = a * e^(b * n)
//	polynomial:  bpc = a + b*n + c*n²
//
// The hyperbolic family usually wins, since the index byte is a fixed cost amortized over
// the cells.
//
// # Usage
//
// Fit shapes directly, or the contents of a decoded shape set:
//
//	res, err := regression.AnalyzeShapes(shapes)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.BestFit.Formula, res.BestFit.RSquared)
//
//	size := regression.EstimateBytes(res.BestFit.Estimator, 120)
//
// A fitted model can be stored by name and coefficients and restored with NewEstimator.
package regression
