// Package iir provides stateful recursive (IIR) filter runtimes for chunked
// streams.
//
// A [Filter] applies the causal difference equation
//
//	y[k] = sum_{i=0}^{N-1} b[i]*x[k-i] - sum_{i=1}^{N-1} a[i]*y[k-i]
//
// with a[0] normalized to 1. The filter owns its input and output history,
// so calling Filt on consecutive chunks of a stream yields the same output
// as a single call on the whole stream. [Filter.Init] seeds the history
// with a constant to avoid a start-up transient.
//
// [New] selects the implementation from the coefficient shape: [FirstOrder]
// for two-tap coefficient vectors and [OrderN] otherwise. Both evaluate the
// sum in the same order with every product rounded to the sample type, so
// they produce bit-identical output for the same coefficients.
//
// This package provides the processing runtime only. Coefficient design is
// a separate concern.
package iir
