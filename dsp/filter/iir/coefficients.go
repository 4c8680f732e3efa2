package iir

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/stateful-filter/dsp/core"
)

// Coefficients is a validated, normalized transfer function. It is
// immutable; every filter created from it shares the same backing slices.
type Coefficients[T core.Sample] struct {
	b []T // numerator, length N
	a []T // denominator without the leading 1, length N-1
}

// NewCoefficients validates a and b and normalizes them so that a[0] is 1.
// The inputs are copied. When a[0] is already 1 the stored values are
// bit-identical to the inputs.
func NewCoefficients[T core.Sample](a, b []T) (*Coefficients[T], error) {
	if err := validate(a, b); err != nil {
		return nil, err
	}

	n := len(b)
	c := &Coefficients[T]{
		b: make([]T, n),
		a: make([]T, n-1),
	}
	copy(c.b, b)
	copy(c.a, a[1:])

	if a0 := a[0]; a0 != 1 {
		for i := range c.b {
			c.b[i] /= a0
		}
		for i := range c.a {
			c.a[i] /= a0
		}
	}

	return c, nil
}

// Len returns the number of taps N.
func (c *Coefficients[T]) Len() int {
	return len(c.b)
}

// Order returns the filter order N-1.
func (c *Coefficients[T]) Order() int {
	return len(c.b) - 1
}

// Numerator returns a copy of b.
func (c *Coefficients[T]) Numerator() []T {
	out := make([]T, len(c.b))
	copy(out, c.b)
	return out
}

// Denominator returns a copy of the normalized denominator [1, a1, ...].
func (c *Coefficients[T]) Denominator() []T {
	out := make([]T, len(c.a)+1)
	out[0] = 1
	copy(out[1:], c.a)
	return out
}

// NewFilter returns a zero-state filter for these coefficients: a
// [FirstOrder] for two taps, an [OrderN] otherwise.
func (c *Coefficients[T]) NewFilter() Filter[T] {
	if len(c.b) == 2 {
		return &FirstOrder[T]{b0: c.b[0], b1: c.b[1], a1: c.a[0]}
	}
	return newOrderN(c)
}

// Response computes the complex frequency response H(e^jw) at the given
// frequency (Hz) and sample rate (Hz).
func (c *Coefficients[T]) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate

	var num complex128
	for k, bk := range c.b {
		num += complex(float64(bk), 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}

	den := complex(1, 0)
	for k, ak := range c.a {
		den += complex(float64(ak), 0) * cmplx.Exp(complex(0, -w*float64(k+1)))
	}

	return num / den
}

// MagnitudeDB returns 20*log10(|H(f)|).
func (c *Coefficients[T]) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}
