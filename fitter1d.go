package lmfit

import "gonum.org/v1/gonum/mat"

// Fitter1D is the single-dimension façade: x is a scalar per sample.
type Fitter1D struct {
	core *state
	x    []float64
	eval Evaluator1D
}

// NewFitter1D returns an empty fitter with the documented defaults
// (ndone=4, itmax=1000, tol=1e-3, covariance adjustment on).
func NewFitter1D() *Fitter1D {
	return &Fitter1D{core: &state{cfg: defaultConfig()}}
}

// SetInputData validates and stores (x, y, sigma); all three must have equal
// length and every sigma must be strictly positive.
func (o *Fitter1D) SetInputData(x, y, sigma []float64) error {
	if len(x) != len(y) {
		return ferrDim("set_input_data", len(x), len(y))
	}
	if err := o.core.setObservations(y, sigma); err != nil {
		return err
	}
	o.x = append([]float64(nil), x...)
	return nil
}

// SetInputDataConstant is SetInputData with a single shared sigma for every
// sample; s must be > 0.
func (o *Fitter1D) SetInputDataConstant(x, y []float64, s float64) error {
	if s <= 0 {
		return ferrInvalidSigma("set_input_data_constant", s)
	}
	sigma := make([]float64, len(y))
	for i := range sigma {
		sigma[i] = s
	}
	return o.SetInputData(x, y, sigma)
}

// SetEvaluator stores the evaluator and copies its initial parameter vector
// into a; every parameter starts free. Alpha and covar come from the next Fit.
func (o *Fitter1D) SetEvaluator(e Evaluator1D) error {
	if e == nil {
		return ferrNilEvaluator("set_evaluator")
	}
	o.eval = e
	o.core.setParams(e.CreateInitialParameters())
	return nil
}

func (o *Fitter1D) sampleFunc() func(i int, a, dOut []float64) (float64, error) {
	return func(i int, a, dOut []float64) (float64, error) {
		return o.eval.Evaluate(i, o.x[i], a, dOut)
	}
}

// Hold freezes parameter k at value, removing it from the free set.
func (o *Fitter1D) Hold(k int, value float64) { o.core.hold(k, value) }

// Free restores parameter k to the free set (its current value is kept).
func (o *Fitter1D) Free(k int) { o.core.free(k) }

func (o *Fitter1D) SetNdone(n int) error                 { return o.core.setNdone(n) }
func (o *Fitter1D) SetItmax(n int) error                 { return o.core.setItmax(n) }
func (o *Fitter1D) SetTol(tol float64) error              { return o.core.setTol(tol) }
func (o *Fitter1D) SetCovarianceAdjusted(v bool)          { o.core.setCovarianceAdjusted(v) }
func (o *Fitter1D) IsReady() bool                         { return o.core.isReady() }
func (o *Fitter1D) ResultAvailable() bool                 { return o.core.resultAvailable() }
func (o *Fitter1D) A() []float64                          { return o.core.params() }
func (o *Fitter1D) Covar() *mat.SymDense                  { return o.core.covar() }
func (o *Fitter1D) Alpha() *mat.SymDense                  { return o.core.alpha() }
func (o *Fitter1D) ChiSq() float64                        { return o.core.chisq() }
func (o *Fitter1D) MSE() float64                          { return o.core.mse() }
func (o *Fitter1D) P() float64                            { return o.core.p() }
func (o *Fitter1D) Q() float64                            { return o.core.q() }
func (o *Fitter1D) Dof() int                              { return o.core.dof() }
func (o *Fitter1D) Iterations() int                       { return o.core.iterations() }
func (o *Fitter1D) Converged() bool                       { return o.core.converged() }
func (o *Fitter1D) MaxIterationsExceeded() bool           { return o.core.maxIterationsExceeded() }

// Fit runs the Levenberg-Marquardt loop to completion.
func (o *Fitter1D) Fit() error {
	if !o.IsReady() {
		return ferrNotReady("fit")
	}
	return o.core.fit(o.sampleFunc())
}

// String renders the fitted parameters, covariance and fit-quality scalars
// as a multi-section report, using mat.Formatted for the covariance matrix.
func (o *Fitter1D) String() string { return o.core.format() }

// FitWithRestarts retries Fit up to times attempts, reseeding the parameter
// vector with jitter(a0) (applied in place to a freshly created-initial
// vector) before every attempt after the first, and stops at the first
// attempt whose result converges. Useful for models like periodic
// oscillators whose normal equations have several local minima and whose
// convergence depends heavily on the initial guess.
func (o *Fitter1D) FitWithRestarts(times int, jitter func(a []float64)) error {
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
