package driver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"lmfit/internal/ferr"
)

// lineSampleFn builds a SampleFunc for f(x;a,b) = a*x + b.
func lineSampleFn(x []float64) func(i int, a, dOut []float64) (float64, error) {
	return func(i int, a, dOut []float64) (float64, error) {
		dOut[0] = x[i]
		dOut[1] = 1
		return a[0]*x[i] + a[1], nil
	}
}

func TestRun_ConvergesOnExactLine(t *testing.T) {
	x := make([]float64, 50)
	y := make([]float64, 50)
	w := make([]float64, 50)
	for i := range x {
		x[i] = float64(i)
		y[i] = 2.5*x[i] - 1.25
		w[i] = 1
	}

	d := &Driver{
		SampleFn: lineSampleFn(x),
		Y:        y,
		W:        w,
		M:        2,
		Mfit:     []bool{true, true},
		Cfg:      Config{Ndone: 4, Itmax: 1000, Tol: 1e-3, InitialLambda: 0.001},
	}

	res, err := d.Run([]float64{0, 0})
	require.NoError(t, err)
	require.Equal(t, StateConverged, res.State)
	require.InDelta(t, 2.5, res.A[0], 1e-4)
	require.InDelta(t, -1.25, res.A[1], 1e-4)
	require.InDelta(t, 0, res.ChiSq, 1e-6)
}

func TestRun_AllParametersHeld(t *testing.T) {
	d := &Driver{
		SampleFn: lineSampleFn([]float64{0, 1, 2}),
		Y:        []float64{1, 2, 3},
		W:        []float64{1, 1, 1},
		M:        2,
		Mfit:     []bool{false, false},
		Cfg:      Config{Ndone: 4, Itmax: 10, Tol: 1e-3, InitialLambda: 0.001},
	}
	_, err := d.Run([]float64{1, 1})
	var fe *ferr.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, ferr.AllParametersHeld, fe.Kind)
}

func TestRun_HeldParameterStaysExact(t *testing.T) {
	x := make([]float64, 30)
	y := make([]float64, 30)
	w := make([]float64, 30)
	for i := range x {
		x[i] = float64(i)
		y[i] = 3*x[i] + 7
		w[i] = 1
	}

	d := &Driver{
		SampleFn: lineSampleFn(x),
		Y:        y,
		W:        w,
		M:        2,
		Mfit:     []bool{false, true}, // hold a[0] = 3 exactly
		Cfg:      Config{Ndone: 4, Itmax: 1000, Tol: 1e-3, InitialLambda: 0.001},
	}

	res, err := d.Run([]float64{3, 0})
	require.NoError(t, err)
	require.Equal(t, 3.0, res.A[0]) // bit-exact, never touched by the driver
	require.InDelta(t, 7, res.A[1], 1e-4)
	require.Equal(t, 0.0, res.Covar.At(0, 0))
	require.Equal(t, 0.0, res.Covar.At(0, 1))
}

func TestRun_MaxIterationsExceededStillReturnsResult(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5}
	y := []float64{1, 2, 3, 4, 5, 6}
	w := []float64{1, 1, 1, 1, 1, 1}

	d := &Driver{
		SampleFn: lineSampleFn(x),
		Y:        y,
		W:        w,
		M:        2,
		Mfit:     []bool{true, true},
		Cfg:      Config{Ndone: 1000000, Itmax: 2, Tol: 1e-12, InitialLambda: 0.001},
	}

	res, err := d.Run([]float64{0, 0})
	require.NoError(t, err)
	require.Equal(t, StateExhausted, res.State)
	require.Equal(t, 2, res.Iterations)
}
