package lmfit

import "lmfit/internal/ferr"

// ErrorKind classifies a failure reported by the fitting engine; see the
// package-level error kinds below.
type ErrorKind = ferr.Kind

// FitError is the error type returned from every validation and
// iteration-time failure boundary. Use errors.As to recover it and compare
// its Kind field against the Kind* constants.
type FitError = ferr.Error

// Error kinds, matching the taxonomy in the fitting engine's design:
// NotReady (fit() called before inputs/evaluator are set), DimensionMismatch
// (construction/setter size check failure), InvalidArgument (non-positive
// ndone/itmax/tol/sigma), AllParametersHeld (mFree == 0 at fit time),
// SingularSystem (solver could not pivot), EvaluationFailure (evaluator
// failed at the initial parameters; a failure at a trial point only rejects
// that trial and is not returned, even when every trial fails), and
// MaxIterationsExceeded,
// which is never returned as an error — see (*Fitter1D).MaxIterationsExceeded.
const (
	KindNotReady              = ferr.NotReady
	KindDimensionMismatch     = ferr.DimensionMismatch
	KindInvalidArgument       = ferr.InvalidArgument
	KindAllParametersHeld     = ferr.AllParametersHeld
	KindSingularSystem        = ferr.SingularSystem
	KindEvaluationFailure     = ferr.EvaluationFailure
	KindMaxIterationsExceeded = ferr.MaxIterationsExceeded
)
