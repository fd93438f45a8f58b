// Package evaluator provides ready-made adapters over plain closures that
// satisfy lmfit's Evaluator1D/EvaluatorMD contracts, plus numeric variants
// that estimate the Jacobian by forward differences for callers who do not
// want to hand-derive partial derivatives.
package evaluator

import (
	"lmfit"
	"lmfit/internal/gradient"
)

// Func1D adapts a closure pair into an lmfit.Evaluator1D. It is the Go
// equivalent of an anonymous inner class that captures no extra state
// beyond what the closures themselves close over.
type Func1D struct {
	Init func() []float64
	Eval func(i int, x float64, a, dOut []float64) (float64, error)
}

func (f Func1D) CreateInitialParameters() []float64 { return f.Init() }

func (f Func1D) Evaluate(i int, x float64, a, dOut []float64) (float64, error) {
	return f.Eval(i, x, a, dOut)
}

// FuncMD is the multi-dimension counterpart of Func1D.
type FuncMD struct {
	Init func() []float64
	Dims int
	Eval func(i int, x []float64, a, dOut []float64) (float64, error)
}

func (f FuncMD) NumberOfDimensions() int             { return f.Dims }
func (f FuncMD) CreateInitialParameters() []float64 { return f.Init() }

func (f FuncMD) Evaluate(i int, x []float64, a, dOut []float64) (float64, error) {
	return f.Eval(i, x, a, dOut)
}

// ModelFunc1D is a derivative-free scalar model: y = f(x; a).
type ModelFunc1D func(x float64, a []float64) (float64, error)

// ModelFuncMD is a derivative-free vector-domain model.
type ModelFuncMD func(x []float64, a []float64) (float64, error)

// Numeric1D adapts a derivative-free ModelFunc1D into an lmfit.Evaluator1D
// by estimating the Jacobian per sample with gradient.Estimate. The sample
// point x is passed as an explicit per-call argument rather than captured in
// a field, so the same evaluator instance is safe to reuse across samples
// with no interior mutability.
type Numeric1D struct {
	Init  func() []float64
	Model ModelFunc1D
}

func (n Numeric1D) CreateInitialParameters() []float64 { return n.Init() }

func (n Numeric1D) Evaluate(i int, x float64, a, dOut []float64) (float64, error) {
	at := func(params []float64) (float64, error) { return n.Model(x, params) }
	y0, err := at(a)
	if err != nil {
		return 0, err
	}
	if err := gradient.Estimate(at, a, dOut); err != nil {
		return 0, err
	}
	return y0, nil
}

// NumericMD is the multi-dimension counterpart of Numeric1D.
type NumericMD struct {
	Init  func() []float64
	Dims  int
	Model ModelFuncMD
}

func (n NumericMD) NumberOfDimensions() int             { return n.Dims }
func (n NumericMD) CreateInitialParameters() []float64 { return n.Init() }

func (n NumericMD) Evaluate(i int, x []float64, a, dOut []float64) (float64, error) {
	at := func(params []float64) (float64, error) { return n.Model(x, params) }
	y0, err := at(a)
	if err != nil {
		return 0, err
	}
	if err := gradient.Estimate(at, a, dOut); err != nil {
		return 0, err
	}
	return y0, nil
}

var (
	_ lmfit.Evaluator1D = Func1D{}
	_ lmfit.EvaluatorMD = FuncMD{}
	_ lmfit.Evaluator1D = Numeric1D{}
	_ lmfit.EvaluatorMD = NumericMD{}
)
