// Package detect finds transient negative excursions in long sampled
// streams and scores them against known event positions.
//
// A [Pipeline] processes one stream in fixed-length chunks. For each chunk
// a low-pass baseline filter, re-initialized to the chunk's first sample,
// tracks the slow level of the signal. The residual between signal and
// baseline is smoothed by a feature filter whose state carries over between
// chunks. Every sample whose feature value falls below -k standard
// deviations of the chunk's feature values is flagged, and runs of
// consecutive flagged samples are handed to a [score.Scorer].
//
// Streams are independent. A Pipeline is not safe for concurrent use, but
// any number of pipelines may run in parallel.
package detect
