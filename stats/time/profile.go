package time

import "math"

// Profile summarizes a signal: moments, extremes and their positions.
type Profile struct {
	Length int
	Mean   float64
	RMS    float64

	// StdDev is the Bessel-corrected sample standard deviation, 0 for
	// fewer than two samples.
	StdDev float64

	// Skewness is the population skewness. Sparse negative excursions
	// make it negative.
	Skewness float64

	Min    float64
	MinPos int
	Max    float64
	MaxPos int
}

// Accumulator builds a [Profile] incrementally over consecutive blocks.
// Samples are folded in one at a time with Welford's update, so splitting
// the input differently gives bit-identical results.
type Accumulator struct {
	n     int
	mean  float64
	m2    float64
	m3    float64
	sumSq float64

	minVal, maxVal float64
	minPos, maxPos int
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Update folds a block of samples into the running statistics. Positions
// continue from the previous block.
func (a *Accumulator) Update(samples []float64) {
	for _, x := range samples {
		if a.n == 0 {
			a.minVal, a.maxVal = x, x
			a.minPos, a.maxPos = 0, 0
		} else {
			if x < a.minVal {
				a.minVal, a.minPos = x, a.n
			}
			if x > a.maxVal {
				a.maxVal, a.maxPos = x, a.n
			}
		}

		a.n++
		ni := float64(a.n)
		delta := x - a.mean
		deltaN := delta / ni
		term1 := delta * deltaN * float64(a.n-1)

		// M3 must be updated before M2.
		a.m3 += term1*deltaN*(ni-2) - 3*deltaN*a.m2
		a.m2 += term1
		a.mean += deltaN

		a.sumSq += x * x
	}
}

// Len returns the number of samples seen.
func (a *Accumulator) Len() int {
	return a.n
}

// Result returns the statistics of everything seen so far.
func (a *Accumulator) Result() Profile {
	if a.n == 0 {
		return Profile{}
	}

	nf := float64(a.n)
	p := Profile{
		Length: a.n,
		Mean:   a.mean,
		RMS:    math.Sqrt(a.sumSq / nf),
		Min:    a.minVal,
		MinPos: a.minPos,
		Max:    a.maxVal,
		MaxPos: a.maxPos,
	}
	if a.n > 1 {
		p.StdDev = math.Sqrt(a.m2 / (nf - 1))
	}
	if popVar := a.m2 / nf; popVar > 0 {
		p.Skewness = (a.m3 / nf) / (popVar * math.Sqrt(popVar))
	}
	return p
}

// Reset clears all accumulated data.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}

// Calculate returns the profile of signal in one pass.
func Calculate(signal []float64) Profile {
	var a Accumulator
	a.Update(signal)
	return a.Result()
}
