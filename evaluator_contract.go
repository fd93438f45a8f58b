package lmfit

// Evaluator1D is the model contract for a scalar-domain fit: x is a single
// real coordinate per sample.
type Evaluator1D interface {
	// CreateInitialParameters returns the starting parameter vector a (its
	// length fixes m for the whole fit).
	CreateInitialParameters() []float64

	// Evaluate computes f(x; a) for sample i and writes the model's partial
	// derivatives w.r.t. each parameter into dOut (len(dOut) == len(a)).
	// dOut is reused across samples; implementations must not retain it.
	// A non-nil error marks the sample as an evaluation failure (undefined
	// region, non-finite output); the driver treats it as a rejected trial.
	Evaluate(i int, x float64, a, dOut []float64) (float64, error)
}

// EvaluatorMD is the model contract for a d-dimensional domain: x is a row
// of length NumberOfDimensions() per sample.
type EvaluatorMD interface {
	// NumberOfDimensions returns d, the length of each sample's x.
	NumberOfDimensions() int

	CreateInitialParameters() []float64

	// Evaluate computes f(x; a) for sample i and writes partial derivatives
	// into dOut, under the same contract as Evaluator1D.Evaluate.
	Evaluate(i int, x []float64, a, dOut []float64) (float64, error)
}
