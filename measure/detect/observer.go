package detect

import (
	"time"

	"github.com/cwbudde/stateful-filter/measure/score"
	stats "github.com/cwbudde/stateful-filter/stats/time"
)

// ChunkResult describes one processed chunk.
type ChunkResult struct {
	Index  int
	Offset uint64
	Len    int

	Sigma     float64
	Threshold float64

	// Degenerate is set when the chunk was too short for a standard
	// deviation. Such chunks are filtered but flag nothing.
	Degenerate bool

	// Flagged holds global sample indices in ascending order.
	Flagged []uint64
	Runs    []score.Run
	Delta   score.Delta
}

// Summary describes a finished stream.
type Summary struct {
	Stream    string
	Chunks    int
	Samples   int
	Centroids int

	// FilterTime covers filtering, the standard deviation and thresholding.
	// Scoring is excluded.
	FilterTime time.Duration

	// Feature profiles the feature signal over the whole stream. MinPos is
	// the global index of the deepest excursion.
	Feature stats.Profile

	Metrics score.Metrics

	// Missed lists the centroids no run claimed, ascending.
	Missed []uint64
}

// MSamplesPerSecond returns the filtering throughput in millions of samples
// per second, or 0 if no time was measured.
func (s Summary) MSamplesPerSecond() float64 {
	sec := s.FilterTime.Seconds()
	if sec <= 0 {
		return 0
	}
	return float64(s.Samples) / sec / 1e6
}

// Observer receives pipeline progress. Calls happen on the goroutine that
// drives the pipeline.
type Observer interface {
	ObserveChunk(stream string, r ChunkResult)
	ObserveSummary(stream string, s Summary)
}
