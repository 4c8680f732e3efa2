package iir

import "github.com/cwbudde/stateful-filter/dsp/core"

// Filter is a causal recursive filter that keeps its history between calls.
type Filter[T core.Sample] interface {
	// Filt filters samples in order and returns a new slice of equal length.
	Filt(samples []T) []T

	// FiltTo filters src into dst, which must be at least as long as src.
	// dst and src may be the same slice. Zero-alloc.
	FiltTo(dst, src []T)

	// Init sets every stored input and output history entry to value.
	Init(value T)

	// Reset clears the history to zero.
	Reset()

	// Coefficients returns a copy of the numerator (b) coefficients.
	Coefficients() []T

	// Denominator returns a copy of the normalized denominator [1, a1, ...].
	Denominator() []T

	// Order returns the filter order (number of taps minus one).
	Order() int
}

// New builds a filter from denominator a and numerator b. Both must have
// the same length of at least 2; otherwise an error wrapping
// [ErrConstruction] is returned.
func New[T core.Sample](a, b []T) (Filter[T], error) {
	c, err := NewCoefficients(a, b)
	if err != nil {
		return nil, err
	}
	return c.NewFilter(), nil
}

// filt is the shared allocation wrapper around FiltTo.
func filt[T core.Sample](f Filter[T], samples []T) []T {
	out := make([]T, len(samples))
	f.FiltTo(out, samples)
	return out
}
