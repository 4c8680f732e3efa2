package time

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

const tolerance = 1e-10

func generateDC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// generateSquare creates a +val/-val alternating square wave.
func generateSquare(val float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		if i%2 == 0 {
			out[i] = val
		} else {
			out[i] = -val
		}
	}
	return out
}

func TestCalculate_Empty(t *testing.T) {
	require.Equal(t, Profile{}, Calculate(nil))
}

func TestCalculate_Single(t *testing.T) {
	p := Calculate([]float64{-2.5})
	require.Equal(t, 1, p.Length)
	require.Equal(t, -2.5, p.Mean)
	require.Equal(t, -2.5, p.Min)
	require.Equal(t, -2.5, p.Max)
	require.Zero(t, p.StdDev, "single sample has no spread")
	require.Zero(t, p.Skewness)
	require.InDelta(t, 2.5, p.RMS, tolerance)
}

func TestCalculate_DCSignal(t *testing.T) {
	p := Calculate(generateDC(1.5, 1000))

	require.Equal(t, 1000, p.Length)
	require.InDelta(t, 1.5, p.Mean, tolerance)
	require.InDelta(t, 1.5, p.RMS, tolerance)
	require.InDelta(t, 0, p.StdDev, tolerance)
	require.Zero(t, p.MinPos, "extremes of a constant sit at the first sample")
	require.Zero(t, p.MaxPos)
}

func TestCalculate_Square(t *testing.T) {
	p := Calculate(generateSquare(2, 1000))

	require.InDelta(t, 0, p.Mean, tolerance)
	require.InDelta(t, 2, p.RMS, tolerance)
	// Sample variance of n values ±2 with zero mean is 4n/(n-1).
	require.InDelta(t, math.Sqrt(4*1000.0/999.0), p.StdDev, tolerance)
	require.InDelta(t, 0, p.Skewness, tolerance)
	require.Equal(t, 2.0, p.Max)
	require.Equal(t, 0, p.MaxPos)
	require.Equal(t, -2.0, p.Min)
	require.Equal(t, 1, p.MinPos)
}

func TestCalculate_MatchesTextbook(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	p := Calculate(x)

	require.InDelta(t, 5, p.Mean, tolerance)
	require.InDelta(t, math.Sqrt(32.0/7.0), p.StdDev, tolerance)

	sd, err := StdDev(x)
	require.NoError(t, err)
	require.InDelta(t, sd, p.StdDev, 1e-12, "Welford and reducer disagree")

	// Population skewness: m3/m2^1.5 with m2=4, m3=(-27-1-1-1+0+0+8+64)/8=5.25.
	require.InDelta(t, 5.25/8, p.Skewness, tolerance)
}

func TestCalculate_NegativeDipsSkew(t *testing.T) {
	x := generateDC(1, 10_000)
	for i := 500; i < len(x); i += 1000 {
		x[i] = -5
	}
	p := Calculate(x)

	require.Negative(t, p.Skewness)
	require.Equal(t, -5.0, p.Min)
	require.Equal(t, 500, p.MinPos)
}

func TestAccumulator_BlockInvariance(t *testing.T) {
	x := make([]float64, 10_007)
	for i := range x {
		x[i] = math.Sin(float64(i)*0.013) + 0.3*math.Cos(float64(i)*0.7)
	}
	ref := Calculate(x)

	for _, block := range []int{1, 7, 256, 4096, 10_006} {
		a := NewAccumulator()
		for lo := 0; lo < len(x); lo += block {
			a.Update(x[lo:min(lo+block, len(x))])
		}
		require.Equal(t, len(x), a.Len(), "block %d", block)
		require.Equal(t, ref, a.Result(), "block %d", block)
	}
}

func TestAccumulator_Reset(t *testing.T) {
	a := NewAccumulator()
	a.Update([]float64{1, 2, 3})
	a.Reset()
	require.Zero(t, a.Len())
	require.Equal(t, Profile{}, a.Result())

	a.Update([]float64{4})
	p := a.Result()
	require.Equal(t, 4.0, p.Min)
	require.Equal(t, 0, p.MinPos)
}
