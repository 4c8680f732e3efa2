package score

// DefaultMinFalseRun is the debounce length: an unmatched run counts as a
// false positive only when its run length exceeds this value.
const DefaultMinFalseRun = 2

// Delta is the change in counts produced by one scoring call.
type Delta struct {
	TruePositive  int
	FalsePositive int
}

type config struct {
	minFalseRun int
}

// Option configures a Scorer.
type Option func(*config)

// WithMinFalseRun sets the debounce length used for false positives.
// Negative values are ignored.
func WithMinFalseRun(n int) Option {
	return func(cfg *config) {
		if n >= 0 {
			cfg.minFalseRun = n
		}
	}
}

// Scorer accumulates true and false positives for one stream. It consumes
// centroids from the set it was built with.
type Scorer struct {
	centroids   *CentroidSet
	minFalseRun int

	tp, fp   int
	finished bool
	final    Metrics
}

// NewScorer returns a Scorer consuming from centroids.
func NewScorer(centroids *CentroidSet, opts ...Option) *Scorer {
	cfg := config{minFalseRun: DefaultMinFalseRun}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Scorer{
		centroids:   centroids,
		minFalseRun: cfg.minFalseRun,
	}
}

// ScoreRuns scores the runs of one chunk, in ascending order.
//
// A sample continues the current run when it directly follows the previous
// flagged sample. Such a sample still present in the centroid set is
// consumed as a true positive, marks the run as matched and extends the run
// length; the first sample of a run is never matched. A run is judged only
// when the next run begins after a gap: if it never matched and its run
// length exceeds the debounce length, it is a false positive. The last run
// of a chunk is not judged, and no run continues into the next call.
//
// After [Scorer.Finish], ScoreRuns does nothing and returns a zero Delta.
func (s *Scorer) ScoreRuns(runs []Run) Delta {
	var d Delta
	if s.finished {
		return d
	}

	matched := false
	runLength := 0
	for i, r := range runs {
		first := 1
		switch {
		case i == 0:
		case r.Start == runs[i-1].End():
			first = 0
		default:
			if !matched && runLength > s.minFalseRun {
				d.FalsePositive++
			}
			matched = false
			runLength = 0
		}

		for k := first; k < r.Len; k++ {
			if s.centroids.Take(r.Start + uint64(k)) {
				d.TruePositive++
				matched = true
				runLength++
			}
		}
	}

	s.tp += d.TruePositive
	s.fp += d.FalsePositive
	return d
}

// ScoreIndices groups the ascending flagged indices of one chunk into runs
// and scores them.
func (s *Scorer) ScoreIndices(flagged []uint64) Delta {
	return s.ScoreRuns(GroupRuns(flagged))
}

// Metrics returns the running counts. False negatives are only known after
// [Scorer.Finish] and are reported as the centroids still unclaimed.
func (s *Scorer) Metrics() Metrics {
	if s.finished {
		return s.final
	}
	return newMetrics(s.tp, s.fp, s.centroids.Len())
}

// Finish folds every unclaimed centroid in as a false negative and returns
// the final metrics. Later calls return the same value.
func (s *Scorer) Finish() Metrics {
	if !s.finished {
		s.final = newMetrics(s.tp, s.fp, s.centroids.Len())
		s.finished = true
	}
	return s.final
}

// Centroids returns the set this scorer consumes from.
func (s *Scorer) Centroids() *CentroidSet {
	return s.centroids
}
