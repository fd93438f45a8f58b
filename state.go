package lmfit

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"lmfit/internal/assemble"
	"lmfit/internal/driver"
	"lmfit/internal/ferr"
)

// config holds the fitter's tunables, each with its documented default.
type config struct {
	ndone              int
	itmax              int
	tol                float64
	covarianceAdjusted bool
}

func defaultConfig() config {
	return config{ndone: 4, itmax: 1000, tol: 1e-3, covarianceAdjusted: true}
}

const initialLambda = 0.001

// state is the shared implementation behind Fitter1D and FitterMD: it owns
// the parameter vector, mask, observation weights and results, independent
// of whether x is scalar or vector-valued.
type state struct {
	n int // number of samples
	m int // number of parameters

	y []float64
	w []float64 // wi = 1/sigma_i^2

	a    []float64
	mfit []bool

	hasInputs    bool
	hasEvaluator bool

	cfg config

	result    *driver.Result
	available bool
}

func (s *state) isReady() bool { return s.hasInputs && s.hasEvaluator }

func (s *state) setObservations(y, sigma []float64) error {
	if len(y) != len(sigma) {
		return ferr.New(ferr.DimensionMismatch, "set_input_data", "len(y)=%d != len(sigma)=%d", len(y), len(sigma))
	}
	w := make([]float64, len(sigma))
	for i, sig := range sigma {
		if sig <= 0 {
			return ferr.New(ferr.InvalidArgument, "set_input_data", "sigma[%d]=%v must be > 0", i, sig)
		}
		w[i] = 1 / (sig * sig)
	}
	s.n = len(y)
	s.y = append([]float64(nil), y...)
	s.w = w
	s.hasInputs = true
	s.available = false
	return nil
}

func (s *state) setParams(a0 []float64) {
	s.m = len(a0)
	s.a = append([]float64(nil), a0...)
	s.mfit = make([]bool, s.m)
	for k := range s.mfit {
		s.mfit[k] = true
	}
	s.hasEvaluator = true
	s.available = false
}

func (s *state) hold(k int, value float64) {
	s.a[k] = value
	s.mfit[k] = false
	s.available = false
}

func (s *state) free(k int) {
	s.mfit[k] = true
	s.available = false
}

// fit runs the LM driver against sampleFn, the dimension-specific closure
// that adapts the caller's evaluator into assemble.SampleFunc.
func (s *state) fit(sampleFn assemble.SampleFunc) error {
	if !s.isReady() {
		return ferr.New(ferr.NotReady, "fit", "inputs and evaluator must both be set before fit()")
	}

	d := &driver.Driver{
		SampleFn: sampleFn,
		Y:        s.y,
		W:        s.w,
		M:        s.m,
		Mfit:     s.mfit,
		Cfg: driver.Config{
			Ndone:         s.cfg.ndone,
			Itmax:         s.cfg.itmax,
			Tol:           s.cfg.tol,
			InitialLambda: initialLambda,
		},
	}

	res, err := d.Run(s.a)
	if err != nil {
		s.available = false
		return err
	}

	if s.cfg.covarianceAdjusted {
		res.Covar = driver.AdjustCovariance(res.Covar, res.MSE)
	}

	s.a = res.A
	s.result = res
	s.available = true
	return nil
}

func (s *state) mFree() int {
	n := 0
	for _, free := range s.mfit {
		if free {
			n++
		}
	}
	return n
}

func (s *state) dof() int { return s.n - s.mFree() }

// --- shared accessors, identical across both façade shapes ---

func (s *state) resultAvailable() bool { return s.available }

func (s *state) params() []float64 { return append([]float64(nil), s.a...) }

func (s *state) covar() *mat.SymDense {
	if s.result == nil {
		return nil
	}
	return s.result.Covar
}

func (s *state) alpha() *mat.SymDense {
	if s.result == nil {
		return nil
	}
	return s.result.Alpha
}

func (s *state) chisq() float64 {
	if s.result == nil {
		return 0
	}
	return s.result.ChiSq
}

func (s *state) mse() float64 {
	if s.result == nil {
		return 0
	}
	return s.result.MSE
}

func (s *state) p() float64 {
	dof := s.dof()
	if s.result == nil || dof <= 0 {
		return math.NaN()
	}
	chi := distuv.ChiSquared{K: float64(dof)}
	return chi.CDF(s.result.ChiSq)
}

func (s *state) q() float64 {
	p := s.p()
	if math.IsNaN(p) {
		return math.NaN()
	}
	return 1 - p
}

func (s *state) iterations() int {
	if s.result == nil {
		return 0
	}
	return s.result.Iterations
}

func (s *state) converged() bool {
	return s.result != nil && s.result.State == driver.StateConverged
}

func (s *state) maxIterationsExceeded() bool {
	return s.result != nil && s.result.State == driver.StateExhausted
}

// --- configuration setters ---

func (s *state) setNdone(n int) error {
	if n < 1 {
		return ferr.New(ferr.InvalidArgument, "set_ndone", "ndone=%d must be >= 1", n)
	}
	s.cfg.ndone = n
	return nil
}

func (s *state) setItmax(n int) error {
	if n < 1 {
		return ferr.New(ferr.InvalidArgument, "set_itmax", "itmax=%d must be >= 1", n)
	}
	s.cfg.itmax = n
	return nil
}

func (s *state) setTol(tol float64) error {
	if tol <= 0 {
		return ferr.New(ferr.InvalidArgument, "set_tol", "tol=%v must be > 0", tol)
	}
	s.cfg.tol = tol
	return nil
}

func (s *state) setCovarianceAdjusted(v bool) { s.cfg.covarianceAdjusted = v }

// format renders the fitted parameters, covariance and fit-quality scalars
// as a multi-section report, using mat.Formatted for the covariance matrix.
func (s *state) format() string {
	var b strings.Builder
	fmt.Fprintln(&b, "=== Fitted Parameters ===")
	fmt.Fprintf(&b, "%v\n", s.params())

	fmt.Fprintln(&b, "=== Covariance ===")
	if c := s.covar(); c != nil {
		fmt.Fprintf(&b, "%v\n", mat.Formatted(c, mat.Prefix(" ")))
	} else {
		fmt.Fprintln(&b, " <no result>")
	}

	fmt.Fprintf(&b, "chisq=%.6f  dof=%d  mse=%.6f  p=%.4f  q=%.4f  iterations=%d  converged=%t",
		s.chisq(), s.dof(), s.mse(), s.p(), s.q(), s.iterations(), s.converged())
	return b.String()
}
