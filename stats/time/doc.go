// Package time provides time-domain statistics for sampled signals.
//
// [Reducer] computes sums, variances and standard deviations over large
// blocks in parallel with a result that does not depend on the number of
// goroutines. [Accumulator] builds a running [Profile] of a stream across
// blocks.
package time
