package lmfit

import "lmfit/internal/ferr"

func ferrDim(op string, a, b int) error {
	return ferr.New(ferr.DimensionMismatch, op, "mismatched lengths: %d != %d", a, b)
}

func ferrInvalidSigma(op string, s float64) error {
	return ferr.New(ferr.InvalidArgument, op, "sigma=%v must be > 0", s)
}

func ferrNilEvaluator(op string) error {
	return ferr.New(ferr.InvalidArgument, op, "evaluator must not be nil")
}

func ferrNotReady(op string) error {
	return ferr.New(ferr.NotReady, op, "inputs and evaluator must both be set before fit()")
}
