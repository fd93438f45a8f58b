package driver

import "gonum.org/v1/gonum/mat"

// AdjustCovariance rescales a finalised covariance by the reduced chi-square.
// The solver's covariance is (J^T W J)^-1, whose scale tracks the caller's
// assumed sigma; multiplying by mse calibrates it against the empirical
// residual spread when sigma was arbitrary (e.g. unit sigma).
func AdjustCovariance(c *mat.SymDense, mse float64) *mat.SymDense {
	n := c.SymmetricDim()
	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			out.SetSym(i, j, c.At(i, j)*mse)
		}
	}
	return out
}
