package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1.0, 2.0, 3.0}, []float64{1.0, 2.1, 3.0})
	require.NoError(t, err)
	require.InDelta(t, 0.1, d, 1e-15)
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float32{1}, []float32{1, 2})
	require.Error(t, err)
}

func TestRequireBitIdenticalAcceptsNaN(t *testing.T) {
	nan := math.NaN()
	RequireBitIdentical(t, []float64{1, nan}, []float64{1, nan})
}

func TestRequireSliceNearlyEqualFloat32(t *testing.T) {
	RequireSliceNearlyEqual(t, []float32{1, 2}, []float32{1, 2.0000001}, 1e-6)
}
