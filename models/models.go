// Package models supplies a handful of analytic-derivative evaluators for
// the curve-fitting engine, used by the demonstration CLI and exercised by
// the engine's own tests.
package models

import (
	"math"

	"lmfit/evaluator"
)

// Line returns f(x; a, b) = a*x + b, with a starting guess of (1, 0).
func Line() evaluator.Func1D {
	return evaluator.Func1D{
		Init: func() []float64 { return []float64{1, 0} },
		Eval: func(_ int, x float64, a, dOut []float64) (float64, error) {
			dOut[0] = x
			dOut[1] = 1
			return a[0]*x + a[1], nil
		},
	}
}

// Constant returns f(x; c) = c, with a starting guess of 0.
func Constant() evaluator.Func1D {
	return evaluator.Func1D{
		Init: func() []float64 { return []float64{0} },
		Eval: func(_ int, _ float64, a, dOut []float64) (float64, error) {
			dOut[0] = 1
			return a[0], nil
		},
	}
}

// Sine returns f(x; A, omega, phi) = A*sin(omega*x + phi), with a starting
// guess of (1, 1, 0).
func Sine() evaluator.Func1D {
	return evaluator.Func1D{
		Init: func() []float64 { return []float64{1, 1, 0} },
		Eval: func(_ int, x float64, a, dOut []float64) (float64, error) {
			arg := a[1]*x + a[2]
			s, c := math.Sin(arg), math.Cos(arg)
			dOut[0] = s
			dOut[1] = a[0] * x * c
			dOut[2] = a[0] * c
			return a[0] * s, nil
		},
	}
}

// SineProduct2D returns the two-dimensional model
//
//	f(x0, x1; A, wx, wy, px, py) = A*sin(wx*x0+px)*sin(wy*x1+py)
//
// with a starting guess of (1, 1, 1, 0, 0).
func SineProduct2D() evaluator.FuncMD {
	return evaluator.FuncMD{
		Dims: 2,
		Init: func() []float64 { return []float64{1, 1, 1, 0, 0} },
		Eval: func(_ int, x []float64, a, dOut []float64) (float64, error) {
			argX := a[1]*x[0] + a[3]
			argY := a[2]*x[1] + a[4]
			sx, cx := math.Sin(argX), math.Cos(argX)
			sy, cy := math.Sin(argY), math.Cos(argY)
			dOut[0] = sx * sy
			dOut[1] = a[0] * x[0] * cx * sy
			dOut[2] = a[0] * x[1] * sx * cy
			dOut[3] = a[0] * cx * sy
			dOut[4] = a[0] * sx * cy
			return a[0] * sx * sy, nil
		},
	}
}
