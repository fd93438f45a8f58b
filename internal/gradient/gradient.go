// Package gradient implements the forward-difference Jacobian estimator used
// when an evaluator does not supply analytic partial derivatives.
package gradient

import "math"

// Func evaluates a scalar function of the parameter vector a. Implementations
// must treat a as read-only for the duration of the call and must not retain
// it afterwards; Estimate perturbs one entry of the caller's a in place for
// each call and restores it before the next.
type Func func(a []float64) (float64, error)

// sqrtEps is sqrt of the float64 machine epsilon, the classical forward-
// difference step scale.
const sqrtEps = 1.4901161193847656e-08

// Estimate writes the forward-difference gradient of f at a into out, where
// len(out) == len(a). It performs exactly len(a)+1 evaluations of f: one at
// a, and one per perturbed parameter.
func Estimate(f Func, a, out []float64) error {
	f0, err := f(a)
	if err != nil {
		return err
	}
	for j := range a {
		aj := a[j]
		h := sqrtEps * math.Max(math.Abs(aj), 1)
		a[j] = aj + h
		fj, err := f(a)
		a[j] = aj
		if err != nil {
			return err
		}
		out[j] = (fj - f0) / h
	}
	return nil
}
