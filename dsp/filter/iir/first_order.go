package iir

import "github.com/cwbudde/stateful-filter/dsp/core"

// FirstOrder is a single-pole, single-zero filter holding its history in
// two scalars:
//
//	y = b0*x + b1*xPrev - a1*yPrev
type FirstOrder[T core.Sample] struct {
	b0, b1 T
	a1     T

	xPrev, yPrev T
}

// NewFirstOrder returns a zero-state first-order filter. a1 is the feedback
// coefficient of a normalized denominator [1, a1].
func NewFirstOrder[T core.Sample](a1, b0, b1 T) *FirstOrder[T] {
	return &FirstOrder[T]{b0: b0, b1: b1, a1: a1}
}

// ProcessSample filters one input sample and returns the output.
//
// The terms are accumulated in the same order as [OrderN] and every
// product is rounded to T before it is summed, so the compiler cannot fuse
// them and both implementations stay bit-identical.
func (f *FirstOrder[T]) ProcessSample(x T) T {
	y := T(f.b0 * x)
	y -= T(f.a1 * f.yPrev)
	y += T(f.b1 * f.xPrev)

	f.xPrev, f.yPrev = x, y

	return y
}

// Filt filters samples and returns a new slice.
func (f *FirstOrder[T]) Filt(samples []T) []T {
	return filt[T](f, samples)
}

// FiltTo filters src into dst. Zero-alloc.
func (f *FirstOrder[T]) FiltTo(dst, src []T) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1] // bounds check hint

	b0, b1, a1 := f.b0, f.b1, f.a1
	xPrev, yPrev := f.xPrev, f.yPrev
	for i, x := range src {
		y := T(b0 * x)
		y -= T(a1 * yPrev)
		y += T(b1 * xPrev)
		dst[i] = y
		xPrev, yPrev = x, y
	}
	f.xPrev, f.yPrev = xPrev, yPrev
}

// Init seeds the previous input and output with value.
func (f *FirstOrder[T]) Init(value T) {
	f.xPrev = value
	f.yPrev = value
}

// Reset clears the history to zero.
func (f *FirstOrder[T]) Reset() {
	f.xPrev = 0
	f.yPrev = 0
}

// Coefficients returns [b0, b1].
func (f *FirstOrder[T]) Coefficients() []T {
	return []T{f.b0, f.b1}
}

// Denominator returns [1, a1].
func (f *FirstOrder[T]) Denominator() []T {
	return []T{1, f.a1}
}

// Order returns 1.
func (f *FirstOrder[T]) Order() int {
	return 1
}

// State returns the previous input and output.
func (f *FirstOrder[T]) State() (xPrev, yPrev T) {
	return f.xPrev, f.yPrev
}
