// Package linalg implements the symmetric Gauss-Jordan linear solver used by
// the Levenberg-Marquardt driver: one routine solves A*X = B for an arbitrary
// number of right-hand-side columns, and the same routine inverts A by
// passing the identity matrix as B.
package linalg

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when Gauss-Jordan elimination cannot find a usable
// pivot; callers map this to the engine's SingularSystem error kind.
var ErrSingular = errors.New("linalg: matrix is numerically singular")

// pivotRelTol bounds how small a pivot may be relative to the largest
// diagonal entry of A (or to 1, when that entry is smaller than 1) before
// elimination is declared singular.
const pivotRelTol = 1e-14

// SolveSPD solves a*x = b via Gauss-Jordan elimination with partial pivoting,
// where a is symmetric (only its stored triangle is read) and b may carry
// any number of columns. a and b are never modified; elimination runs on an
// internal copy.
func SolveSPD(a *mat.SymDense, b *mat.Dense) (*mat.Dense, error) {
	n := a.SymmetricDim()
	rb, cb := b.Dims()
	if rb != n {
		return nil, errors.New("linalg: SolveSPD: row/dimension mismatch")
	}

	maxDiag := 0.0
	for i := 0; i < n; i++ {
		if v := math.Abs(a.At(i, i)); v > maxDiag {
			maxDiag = v
		}
	}
	tol := pivotRelTol * math.Max(maxDiag, 1)

	aug := mat.NewDense(n, n+cb, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			aug.Set(i, j, a.At(i, j))
		}
		for j := 0; j < cb; j++ {
			aug.Set(i, n+j, b.At(i, j))
		}
	}

	ncols := n + cb
	for col := 0; col < n; col++ {
		pivotRow := col
		best := math.Abs(aug.At(col, col))
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug.At(r, col)); v > best {
				best = v
				pivotRow = r
			}
		}
		if best < tol {
			return nil, ErrSingular
		}
		if pivotRow != col {
			swapRows(aug, col, pivotRow, ncols)
		}

		pivot := aug.At(col, col)
		for j := 0; j < ncols; j++ {
			aug.Set(col, j, aug.At(col, j)/pivot)
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug.At(r, col)
			if factor == 0 {
				continue
			}
			for j := 0; j < ncols; j++ {
				aug.Set(r, j, aug.At(r, j)-factor*aug.At(col, j))
			}
		}
	}

	x := mat.NewDense(n, cb, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < cb; j++ {
			x.Set(i, j, aug.At(i, n+j))
		}
	}
	return x, nil
}

// Invert computes a^-1 by solving a*X = I through SolveSPD, so the same
// routine serves both the trial-step solve and the finalisation inversion.
func Invert(a *mat.SymDense) (*mat.Dense, error) {
	n := a.SymmetricDim()
	ident := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		ident.Set(i, i, 1)
	}
	return SolveSPD(a, ident)
}

func swapRows(m *mat.Dense, i, j, cols int) {
	for c := 0; c < cols; c++ {
		vi, vj := m.At(i, c), m.At(j, c)
		m.Set(i, c, vj)
		m.Set(j, c, vi)
	}
}
