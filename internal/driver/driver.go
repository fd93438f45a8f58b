// Package driver implements the Levenberg-Marquardt control loop: damping
// schedule, trial-step accept/reject, the convergence counter, and
// finalisation into a full (re-expanded) covariance matrix.
package driver

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"lmfit/internal/assemble"
	"lmfit/internal/ferr"
	"lmfit/internal/linalg"
)

// State names the terminal (and near-terminal) states of the fit.
type State int

const (
	StateConverged State = iota
	StateExhausted
)

func (s State) String() string {
	if s == StateConverged {
		return "converged"
	}
	return "exhausted"
}

// Config holds the LM control parameters; zero values are never valid, the
// façade is responsible for applying defaults before building one.
type Config struct {
	Ndone         int
	Itmax         int
	Tol           float64
	InitialLambda float64
}

// Driver runs one fit() call against a fixed observation set and evaluator.
type Driver struct {
	SampleFn assemble.SampleFunc
	Y        []float64
	W        []float64
	M        int
	Mfit     []bool
	Cfg      Config
}

// Result is the outcome of a completed Run: the best parameters, the full
// (re-expanded) covariance and curvature, and fit-quality scalars.
type Result struct {
	A          []float64
	Covar      *mat.SymDense
	Alpha      *mat.SymDense
	ChiSq      float64
	MSE        float64
	Iterations int
	State      State
}

// Run executes the LM loop from initialA and returns the finalised result,
// or a *ferr.Error (AllParametersHeld, EvaluationFailure, SingularSystem)
// if the fit cannot proceed.
func (d *Driver) Run(initialA []float64) (*Result, error) {
	freeIdx := assemble.FreeIndices(d.Mfit)
	mFree := len(freeIdx)
	if mFree == 0 {
		return nil, ferr.New(ferr.AllParametersHeld, "fit", "no free parameters: all %d parameters are held", d.M)
	}

	a := append([]float64(nil), initialA...)
	cur, err := assemble.Assemble(d.SampleFn, d.Y, d.W, a)
	if err != nil {
		return nil, ferr.New(ferr.EvaluationFailure, "fit", "evaluator failed at initial parameters: %w", err)
	}

	lambda := d.Cfg.InitialLambda
	done := 0
	iter := 0
	state := StateExhausted

	for {
		iter++

		redAlpha, redBeta := assemble.Reduce(cur.Alpha, cur.Beta, freeIdx)
		damped := mat.NewSymDense(mFree, nil)
		for j := 0; j < mFree; j++ {
			for k := j; k < mFree; k++ {
				v := redAlpha.At(j, k)
				if j == k {
					v *= 1 + lambda
				}
				damped.SetSym(j, k, v)
			}
		}
		betaCol := mat.NewDense(mFree, 1, nil)
		for j := 0; j < mFree; j++ {
			betaCol.Set(j, 0, redBeta.AtVec(j))
		}

		deltaCol, solveErr := linalg.SolveSPD(damped, betaCol)
		if solveErr != nil {
			return nil, ferr.New(ferr.SingularSystem, "fit", "normal equations singular at iteration %d: %w", iter, solveErr)
		}
		deltaFree := make([]float64, mFree)
		for j := 0; j < mFree; j++ {
			deltaFree[j] = deltaCol.At(j, 0)
		}
		deltaFull := assemble.ExpandVector(deltaFree, freeIdx, d.M)

		aTrial := make([]float64, d.M)
		floats.AddTo(aTrial, a, deltaFull)

		trial, evalErr := assemble.Assemble(d.SampleFn, d.Y, d.W, aTrial)
		accepted := evalErr == nil && !math.IsNaN(trial.ChiSq) && !math.IsInf(trial.ChiSq, 0) && trial.ChiSq < cur.ChiSq

		if accepted {
			improvement := cur.ChiSq - trial.ChiSq
			if improvement <= d.Cfg.Tol*cur.ChiSq {
				done++
			} else {
				done = 0
			}
			lambda /= 10
			a = aTrial
			cur = trial
		} else {
			lambda *= 10
		}

		if done == d.Cfg.Ndone {
			state = StateConverged
			break
		}
		if iter >= d.Cfg.Itmax {
			state = StateExhausted
			break
		}
	}

	return d.finalise(a, cur, freeIdx, mFree, iter, state)
}

// finalise performs the zero-damping assembly/inversion and expands the
// reduced covariance back to full size, leaving held rows/columns at zero.
func (d *Driver) finalise(a []float64, cur *assemble.Result, freeIdx []int, mFree, iter int, state State) (*Result, error) {
	finalAlpha, _ := assemble.Reduce(cur.Alpha, cur.Beta, freeIdx)
	covarReduced, err := linalg.Invert(finalAlpha)
	if err != nil {
		return nil, ferr.New(ferr.SingularSystem, "fit", "curvature matrix singular at finalisation: %w", err)
	}
	fullCovar := assemble.ExpandSymmetric(covarReduced, freeIdx, d.M)

	dof := len(d.Y) - mFree
	mse := cur.ChiSq
	if dof > 0 {
		mse = cur.ChiSq / float64(dof)
	}

	return &Result{
		A:          a,
		Covar:      fullCovar,
		Alpha:      cur.Alpha,
		ChiSq:      cur.ChiSq,
		MSE:        mse,
		Iterations: iter,
		State:      state,
	}, nil
}
