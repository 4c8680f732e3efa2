package time

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/stateful-filter/internal/testutil"
)

// textbookStdDev is the two-pass Bessel-corrected formula with a plain loop.
func textbookStdDev(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v
	}
	mean := sum / float64(len(x))
	var ss float64
	for _, v := range x {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(x)-1))
}

func TestStdDevDegenerate(t *testing.T) {
	for _, x := range [][]float64{nil, {}, {42}} {
		_, err := StdDev(x)
		require.ErrorIs(t, err, ErrDegenerateInput, "StdDev(%v)", x)
	}
}

func TestStdDevKnownValues(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		want float64
	}{
		{name: "pair", x: []float64{1, 3}, want: math.Sqrt2},
		{name: "constant", x: []float64{5, 5, 5, 5}, want: 0},
		// Sum of squared deviations 32 over n-1 = 7.
		{name: "classic", x: []float64{2, 4, 4, 4, 5, 5, 7, 9}, want: math.Sqrt(32.0 / 7.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StdDev(tt.x)
			require.NoError(t, err)
			require.InDelta(t, tt.want, got, 1e-12)
		})
	}
}

func TestStdDevMatchesTextbook(t *testing.T) {
	x := testutil.DeterministicNoise[float64](17, 3, 100_000)
	for i := range x {
		x[i] += 1000 // large DC offset
	}

	got, err := NewReducerWithBlockSize(4, 1000).StdDev(x)
	require.NoError(t, err)
	require.InEpsilon(t, textbookStdDev(x), got, 1e-9)
}

func TestReducerIndependentOfWorkerCount(t *testing.T) {
	x := testutil.DeterministicNoise[float64](23, 1, 70_001)

	ref, err := NewReducerWithBlockSize(1, 4096).StdDev(x)
	require.NoError(t, err)
	refSum := NewReducerWithBlockSize(1, 4096).Sum(x)

	for _, workers := range []int{0, 2, 3, 8, 64} {
		r := NewReducerWithBlockSize(workers, 4096)
		got, err := r.StdDev(x)
		require.NoError(t, err)
		require.Equal(t, ref, got, "workers=%d: StdDev not bit-identical", workers)
		require.Equal(t, refSum, r.Sum(x), "workers=%d: Sum not bit-identical", workers)
	}
}

func TestReducerReuse(t *testing.T) {
	r := NewReducerWithBlockSize(2, 8)

	_, err := r.StdDev(testutil.DeterministicNoise[float64](1, 1, 100))
	require.NoError(t, err)

	got, err := r.StdDev([]float64{1, 2, 3})
	require.NoError(t, err)
	require.InDelta(t, 1.0, got, 1e-15)
}

func TestMeanAndSum(t *testing.T) {
	r := NewReducer(0)
	require.Zero(t, r.Mean(nil))
	require.Zero(t, r.Sum(nil))
	require.Equal(t, 2.5, r.Mean([]float64{1, 2, 3, 4}))
}
