package lmfit

import "gonum.org/v1/gonum/mat"

// FitterMD is the multi-dimension façade: x is a row of a d-column matrix
// per sample.
type FitterMD struct {
	core *state
	x    *mat.Dense // n x d
	d    int
	eval EvaluatorMD
}

// NewFitterMD returns an empty fitter with the documented defaults.
func NewFitterMD() *FitterMD {
	return &FitterMD{core: &state{cfg: defaultConfig()}}
}

// SetInputData validates and stores (X, y, sigma), where X is n x d.
func (o *FitterMD) SetInputData(x *mat.Dense, y, sigma []float64) error {
	n, d := x.Dims()
	if n != len(y) {
		return ferrDim("set_input_data", n, len(y))
	}
	if o.eval != nil && o.d != d {
		return ferrDim("set_input_data", d, o.d)
	}
	if err := o.core.setObservations(y, sigma); err != nil {
		return err
	}
	o.x = mat.DenseCopyOf(x)
	o.d = d
	return nil
}

// SetInputDataConstant is SetInputData with a single shared sigma.
func (o *FitterMD) SetInputDataConstant(x *mat.Dense, y []float64, s float64) error {
	if s <= 0 {
		return ferrInvalidSigma("set_input_data_constant", s)
	}
	sigma := make([]float64, len(y))
	for i := range sigma {
		sigma[i] = s
	}
	return o.SetInputData(x, y, sigma)
}

// SetEvaluator stores the evaluator and allocates state from its initial
// parameter vector, as Fitter1D.SetEvaluator does.
func (o *FitterMD) SetEvaluator(e EvaluatorMD) error {
	if e == nil {
		return ferrNilEvaluator("set_evaluator")
	}
	if o.x != nil && o.d != e.NumberOfDimensions() {
		return ferrDim("set_evaluator", e.NumberOfDimensions(), o.d)
	}
	o.eval = e
	o.d = e.NumberOfDimensions()
	o.core.setParams(e.CreateInitialParameters())
	return nil
}

func (o *FitterMD) sampleFunc() func(i int, a, dOut []float64) (float64, error) {
	row := make([]float64, o.d)
	return func(i int, a, dOut []float64) (float64, error) {
		mat.Row(row, i, o.x)
		return o.eval.Evaluate(i, row, a, dOut)
	}
}

func (o *FitterMD) Hold(k int, value float64)    { o.core.hold(k, value) }
func (o *FitterMD) Free(k int)                   { o.core.free(k) }
func (o *FitterMD) SetNdone(n int) error          { return o.core.setNdone(n) }
func (o *FitterMD) SetItmax(n int) error          { return o.core.setItmax(n) }
func (o *FitterMD) SetTol(tol float64) error      { return o.core.setTol(tol) }
func (o *FitterMD) SetCovarianceAdjusted(v bool)  { o.core.setCovarianceAdjusted(v) }
func (o *FitterMD) IsReady() bool                 { return o.core.isReady() }
func (o *FitterMD) ResultAvailable() bool         { return o.core.resultAvailable() }
func (o *FitterMD) A() []float64                  { return o.core.params() }
func (o *FitterMD) Covar() *mat.SymDense           { return o.core.covar() }
func (o *FitterMD) Alpha() *mat.SymDense           { return o.core.alpha() }
func (o *FitterMD) ChiSq() float64                { return o.core.chisq() }
func (o *FitterMD) MSE() float64                  { return o.core.mse() }
func (o *FitterMD) P() float64                    { return o.core.p() }
func (o *FitterMD) Q() float64                    { return o.core.q() }
func (o *FitterMD) Dof() int                      { return o.core.dof() }
func (o *FitterMD) Iterations() int               { return o.core.iterations() }
func (o *FitterMD) Converged() bool               { return o.core.converged() }
func (o *FitterMD) MaxIterationsExceeded() bool   { return o.core.maxIterationsExceeded() }

// Fit runs the Levenberg-Marquardt loop to completion.
func (o *FitterMD) Fit() error {
	if !o.IsReady() {
		return ferrNotReady("fit")
	}
	return o.core.fit(o.sampleFunc())
}

// String renders the fitted parameters, covariance and fit-quality scalars
// as a multi-section report, using mat.Formatted for the covariance matrix.
func (o *FitterMD) String() string { return o.core.format() }

// FitWithRestarts mirrors Fitter1D.FitWithRestarts for the multi-dimensional
// façade: models with several local minima (a 2-D product-of-sines, say)
// often need more than one initial guess before a run converges.
func (o *FitterMD) FitWithRestarts(times int, jitter func(a []float64)) error {
	var lastErr error
	for attempt := 0; attempt < times; attempt++ {
		if attempt > 0 {
			a0 := o.eval.CreateInitialParameters()
			if jitter != nil {
				jitter(a0)
			}
			for k, free := range o.core.mfit {
				if !free {
					a0[k] = o.core.a[k]
				}
			}
			o.core.a = a0
		}
		if err := o.Fit(); err != nil {
			lastErr = err
			continue
		}
		if o.Converged() {
			return nil
		}
		lastErr = nil
	}
	return lastErr
}
