// Package assemble builds the Levenberg-Marquardt normal equations: the
// curvature matrix alpha = J^T W J and the gradient beta = J^T W r, plus the
// weighted chi-square, from one evaluator callback per sample.
package assemble

import "gonum.org/v1/gonum/mat"

// SampleFunc evaluates the model at sample i for the parameter vector a,
// writing the model's partial derivatives into dOut (len(dOut) == len(a)).
// dOut is owned by the assembler and is zeroed before each call; the
// implementation must not retain a reference to it beyond the call.
type SampleFunc func(i int, a []float64, dOut []float64) (float64, error)

// Result is the normal-equations output at one parameter vector.
type Result struct {
	Alpha *mat.SymDense // m x m curvature, symmetric by construction
	Beta  *mat.VecDense // length m
	ChiSq float64
}

// Assemble evaluates f once per sample (y[i], w[i]) and accumulates alpha,
// beta and chi-square over all n = len(y) samples for an m = len(a)
// parameter model. It returns the evaluator's error unchanged on the first
// sample that fails, since the normal equations are undefined without a
// complete pass.
func Assemble(f SampleFunc, y, w, a []float64) (*Result, error) {
	n := len(y)
	m := len(a)

	alpha := mat.NewSymDense(m, nil)
	beta := mat.NewVecDense(m, nil)
	dOut := make([]float64, m)
	var chisq float64

	for i := 0; i < n; i++ {
		for k := range dOut {
			dOut[k] = 0
		}
		yhat, err := f(i, a, dOut)
		if err != nil {
			return nil, err
		}
		resid := y[i] - yhat
		wi := w[i]
		chisq += wi * resid * resid
		for j := 0; j < m; j++ {
			beta.SetVec(j, beta.AtVec(j)+wi*resid*dOut[j])
			for k := j; k < m; k++ {
				alpha.SetSym(j, k, alpha.At(j, k)+wi*dOut[j]*dOut[k])
			}
		}
	}

	return &Result{Alpha: alpha, Beta: beta, ChiSq: chisq}, nil
}

// Reduce drops rows/columns of alpha and beta at held indices, returning the
// mFree x mFree / mFree curvature and gradient used to solve for the free
// parameters. freeIdx must be ascending indices into [0, m).
func Reduce(alpha *mat.SymDense, beta *mat.VecDense, freeIdx []int) (*mat.SymDense, *mat.VecDense) {
	mf := len(freeIdx)
	ra := mat.NewSymDense(mf, nil)
	rb := mat.NewVecDense(mf, nil)
	for j := 0; j < mf; j++ {
		rb.SetVec(j, beta.AtVec(freeIdx[j]))
		for k := j; k < mf; k++ {
			ra.SetSym(j, k, alpha.At(freeIdx[j], freeIdx[k]))
		}
	}
	return ra, rb
}

// ExpandVector scatters a length-len(freeIdx) vector back into a length-m
// vector, leaving held (non-listed) positions at zero.
func ExpandVector(reduced []float64, freeIdx []int, m int) []float64 {
	out := make([]float64, m)
	for j, idx := range freeIdx {
		out[idx] = reduced[j]
	}
	return out
}

// ExpandSymmetric scatters a len(freeIdx) x len(freeIdx) dense matrix back
// into a full m x m symmetric matrix, inserting zero rows/columns at held
// indices. This is the "full vs reduced covariance" expansion described in
// the design notes: held rows/columns remain visibly zero.
func ExpandSymmetric(reduced *mat.Dense, freeIdx []int, m int) *mat.SymDense {
	full := mat.NewSymDense(m, nil)
	for j := 0; j < len(freeIdx); j++ {
		for k := j; k < len(freeIdx); k++ {
			full.SetSym(freeIdx[j], freeIdx[k], reduced.At(j, k))
		}
	}
	return full
}

// FreeIndices returns the ascending indices k where mfit[k] is true.
func FreeIndices(mfit []bool) []int {
	idx := make([]int, 0, len(mfit))
	for k, free := range mfit {
		if free {
			idx = append(idx, k)
		}
	}
	return idx
}
