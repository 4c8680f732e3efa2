package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise[float64](42, 1.0, 64)
	b := DeterministicNoise[float64](42, 1.0, 64)
	require.Len(t, a, 64)
	require.Equal(t, a, b, "noise is deterministic")
	for i, v := range a {
		require.True(t, v >= -1 && v <= 1, "a[%d] = %v out of range", i, v)
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise[float32](1, 1.0, 16)
	b := DeterministicNoise[float32](2, 1.0, 16)
	require.NotEqual(t, a, b)
}

func TestRamp(t *testing.T) {
	require.Equal(t, []float64{5, 6, 7}, Ramp[float64](5, 3))
}

func TestImpulse(t *testing.T) {
	require.Equal(t, []float64{0, 0, 0, 1, 0, 0, 0, 0}, Impulse[float64](8, 3))
	require.Equal(t, []float32{0, 0, 0, 0}, Impulse[float32](4, 10), "out-of-bounds position")
}

func TestDC(t *testing.T) {
	require.Equal(t, []float64{0.5, 0.5, 0.5, 0.5}, DC(0.5, 4))
}

func TestSplit(t *testing.T) {
	require.Equal(t, [][]int{{1, 2}, {3, 4, 5}, {6}}, Split([]int{1, 2, 3, 4, 5, 6}, 2, 3))
	require.Equal(t, [][]int{{1, 2}}, Split([]int{1, 2}, 5), "oversized piece is clamped")
}

func TestSyntheticEvents(t *testing.T) {
	s := SyntheticEvents(7, 10_000, 1_000, 8, 1.0, 0.01)
	require.Len(t, s.Samples, 10_000)
	require.Len(t, s.Centroids, 10)
	require.Equal(t, uint64(504), s.Centroids[0])
	require.LessOrEqual(t, s.Samples[s.Centroids[0]], 1.5, "pulse sample dips below the 2.0 level")
}
