package time

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/sourcegraph/conc/iter"

	"github.com/cwbudde/stateful-filter/dsp/core"
)

// ErrDegenerateInput is returned when a statistic is undefined for the
// number of samples given.
var ErrDegenerateInput = errors.New("stats: standard deviation needs at least 2 samples")

// DefaultBlockSize is the reduction partition length used by [NewReducer].
const DefaultBlockSize = 1 << 14

// Reducer computes sums and moments over fixed-size blocks in parallel.
//
// Blocks are reduced with the vecmath kernels and their partial results are
// combined in block order, so the result does not depend on the number of
// goroutines. It can differ in the last bit between CPU kernel levels
// (generic, SSE2, AVX2) because each kernel sums a block in its own lane
// order.
//
// A Reducer reuses its scratch buffers and is not safe for concurrent use.
type Reducer struct {
	workers   int
	blockSize int

	partials []float64
	dev      []float64
}

// NewReducer returns a Reducer using up to workers goroutines. workers <= 0
// selects GOMAXPROCS.
func NewReducer(workers int) *Reducer {
	return NewReducerWithBlockSize(workers, DefaultBlockSize)
}

// NewReducerWithBlockSize is like [NewReducer] with an explicit partition
// length. blockSize <= 0 selects [DefaultBlockSize].
func NewReducerWithBlockSize(workers, blockSize int) *Reducer {
	if workers < 0 {
		workers = 0
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Reducer{workers: workers, blockSize: blockSize}
}

// reduce applies block to every partition of x and sums the partials in
// partition order.
func (r *Reducer) reduce(x []float64, block func(lo, hi int) float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}

	blocks := (n + r.blockSize - 1) / r.blockSize
	r.partials = core.EnsureLen(r.partials, blocks)

	fn := func(i int, p *float64) {
		lo := i * r.blockSize
		*p = block(lo, min(lo+r.blockSize, n))
	}
	if blocks == 1 {
		fn(0, &r.partials[0])
	} else {
		iter.Iterator[float64]{MaxGoroutines: r.workers}.ForEachIdx(r.partials, fn)
	}

	var total float64
	for _, p := range r.partials {
		total += p
	}
	return total
}

// Sum returns the sum of x.
func (r *Reducer) Sum(x []float64) float64 {
	return r.reduce(x, func(lo, hi int) float64 {
		return vecmath.Sum(x[lo:hi])
	})
}

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func (r *Reducer) Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return r.Sum(x) / float64(len(x))
}

// SumSquaredDeviations returns sum((x[i]-mean)^2).
func (r *Reducer) SumSquaredDeviations(x []float64, mean float64) float64 {
	r.dev = core.EnsureLen(r.dev, len(x))
	dev := r.dev
	return r.reduce(x, func(lo, hi int) float64 {
		d := dev[lo:hi]
		for i, v := range x[lo:hi] {
			d[i] = v - mean
		}
		return vecmath.DotProduct(d, d)
	})
}

// Variance returns the Bessel-corrected sample variance of x. It returns
// [ErrDegenerateInput] for fewer than two samples.
func (r *Reducer) Variance(x []float64) (float64, error) {
	n := len(x)
	if n <= 1 {
		return 0, ErrDegenerateInput
	}
	mean := r.Mean(x)
	return r.SumSquaredDeviations(x, mean) / float64(n-1), nil
}

// StdDev returns the Bessel-corrected sample standard deviation of x. It
// returns [ErrDegenerateInput] for fewer than two samples.
func (r *Reducer) StdDev(x []float64) (float64, error) {
	v, err := r.Variance(x)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// StdDev is a convenience wrapper using a fresh [Reducer] with default
// settings.
func StdDev(x []float64) (float64, error) {
	return NewReducer(0).StdDev(x)
}
