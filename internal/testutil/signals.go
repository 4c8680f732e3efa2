package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/stateful-filter/dsp/core"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise[T core.Sample](seed int64, amplitude float64, length int) []T {
	out := make([]T, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = T((rng.Float64()*2 - 1) * amplitude)
	}
	return out
}

// Ramp returns from, from+1, ..., from+length-1.
func Ramp[T core.Sample](from, length int) []T {
	out := make([]T, length)
	for i := range out {
		out[i] = T(from + i)
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse[T core.Sample](length, pos int) []T {
	out := make([]T, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC[T core.Sample](value T, length int) []T {
	out := make([]T, length)
	core.Fill(out, value)
	return out
}

// Split cuts x into consecutive pieces of the given sizes. A trailing
// remainder becomes the last piece.
func Split[T any](x []T, sizes ...int) [][]T {
	var parts [][]T
	for _, n := range sizes {
		if n > len(x) {
			n = len(x)
		}
		parts = append(parts, x[:n])
		x = x[n:]
	}
	if len(x) > 0 {
		parts = append(parts, x)
	}
	return parts
}

// EventStream is a synthetic recording with known event positions.
type EventStream struct {
	Samples   []float64
	Centroids []uint64
}

// SyntheticEvents builds a stream of length samples: a DC level with slow
// sinusoidal drift and uniform noise, plus a rectangular negative pulse of
// the given width and depth every spacing samples, the first one starting
// at spacing/2. Each pulse's middle index is recorded as a centroid.
func SyntheticEvents(seed int64, length, spacing, width int, depth, noise float64) EventStream {
	const (
		level      = 2.0
		driftAmp   = 0.05
		driftCycle = 200_000.0
	)

	samples := DeterministicNoise[float64](seed, noise, length)
	for i := range samples {
		samples[i] += level + driftAmp*math.Sin(2*math.Pi*float64(i)/driftCycle)
	}

	var centroids []uint64
	for start := spacing / 2; start+width <= length; start += spacing {
		for i := start; i < start+width; i++ {
			samples[i] -= depth
		}
		centroids = append(centroids, uint64(start+width/2))
	}

	return EventStream{Samples: samples, Centroids: centroids}
}
