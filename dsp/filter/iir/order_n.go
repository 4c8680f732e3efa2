package iir

import "github.com/cwbudde/stateful-filter/dsp/core"

// OrderN is an arbitrary-order filter. The last N inputs and N-1 outputs
// are kept in ring buffers addressed most-recent-first from a write cursor,
// so pushing a sample moves no data.
type OrderN[T core.Sample] struct {
	b []T // shared, read-only
	a []T // shared, read-only; a[i] multiplies y[k-1-i]

	xs   []T
	ys   []T
	xPos int // slot of x[k]
	yPos int // slot of y[k-1]
}

// NewOrderN builds an order-N filter regardless of the coefficient length,
// including the two-tap case that [New] serves with [FirstOrder].
func NewOrderN[T core.Sample](a, b []T) (*OrderN[T], error) {
	c, err := NewCoefficients(a, b)
	if err != nil {
		return nil, err
	}
	return newOrderN(c), nil
}

func newOrderN[T core.Sample](c *Coefficients[T]) *OrderN[T] {
	return &OrderN[T]{
		b:  c.b,
		a:  c.a,
		xs: make([]T, len(c.b)),
		ys: make([]T, len(c.a)),
	}
}

// ProcessSample filters one input sample and returns the output.
//
// The accumulation order is b0*x0 - a1*y1 + b1*x1 - a2*y2 + ... + b[N-1]*x[N-1],
// with every product rounded to T.
func (f *OrderN[T]) ProcessSample(x T) T {
	n, m := len(f.xs), len(f.ys)

	f.xPos--
	if f.xPos < 0 {
		f.xPos = n - 1
	}
	f.xs[f.xPos] = x

	acc := T(f.b[0] * x)
	xi, yi := f.xPos, f.yPos
	for i, ai := range f.a {
		acc -= T(ai * f.ys[yi])
		yi++
		if yi == m {
			yi = 0
		}
		xi++
		if xi == n {
			xi = 0
		}
		acc += T(f.b[i+1] * f.xs[xi])
	}

	f.yPos--
	if f.yPos < 0 {
		f.yPos = m - 1
	}
	f.ys[f.yPos] = acc

	return acc
}

// Filt filters samples and returns a new slice.
func (f *OrderN[T]) Filt(samples []T) []T {
	return filt[T](f, samples)
}

// FiltTo filters src into dst. Zero-alloc.
func (f *OrderN[T]) FiltTo(dst, src []T) {
	if len(src) == 0 {
		return
	}
	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Init overwrites every input and output history slot with value.
func (f *OrderN[T]) Init(value T) {
	core.Fill(f.xs, value)
	core.Fill(f.ys, value)
}

// Reset clears the history to zero.
func (f *OrderN[T]) Reset() {
	f.Init(0)
}

// Coefficients returns a copy of b.
func (f *OrderN[T]) Coefficients() []T {
	out := make([]T, len(f.b))
	copy(out, f.b)
	return out
}

// Denominator returns a copy of [1, a1, ...].
func (f *OrderN[T]) Denominator() []T {
	out := make([]T, len(f.a)+1)
	out[0] = 1
	copy(out[1:], f.a)
	return out
}

// Order returns N-1.
func (f *OrderN[T]) Order() int {
	return len(f.b) - 1
}

// History returns the input and output history, most recent first.
func (f *OrderN[T]) History() (xs, ys []T) {
	n, m := len(f.xs), len(f.ys)
	xs = make([]T, n)
	ys = make([]T, m)
	for i := range xs {
		xs[i] = f.xs[(f.xPos+i)%n]
	}
	for i := range ys {
		ys[i] = f.ys[(f.yPos+i)%m]
	}
	return xs, ys
}
