package driver

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAdjustCovariance_ScalesEveryEntry(t *testing.T) {
	c := mat.NewSymDense(2, []float64{4, 1, 1, 9})
	adjusted := AdjustCovariance(c, 2.0)
	require.InDelta(t, 8, adjusted.At(0, 0), 1e-12)
	require.InDelta(t, 2, adjusted.At(0, 1), 1e-12)
	require.InDelta(t, 18, adjusted.At(1, 1), 1e-12)
}
