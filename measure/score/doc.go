// Package score matches detected event runs against ground-truth centroid
// indices and accumulates detection quality metrics.
//
// Each centroid can be claimed at most once. Inside a run, every index
// after the first that is still in the centroid set is consumed as a true
// positive and extends the run length. A run is judged when the next run
// starts after a gap: if it claimed nothing and its run length exceeds the
// debounce length, it counts as one false positive. Centroids never claimed
// become false negatives when the stream is finished.
package score
