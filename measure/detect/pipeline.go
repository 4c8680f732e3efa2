package detect

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cwbudde/stateful-filter/dsp/core"
	"github.com/cwbudde/stateful-filter/dsp/filter/iir"
	"github.com/cwbudde/stateful-filter/measure/score"
	stats "github.com/cwbudde/stateful-filter/stats/time"
)

// State is the lifecycle position of a pipeline.
type State int

const (
	StateIdle State = iota
	StateProcessing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateProcessing:
		return "processing"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Pipeline detects and scores events in one stream.
type Pipeline[T core.Sample] struct {
	cfg Config
	log *slog.Logger

	baseline iir.Filter[T]
	feature  iir.Filter[T]
	reducer  *stats.Reducer
	scorer   *score.Scorer
	profile  stats.Accumulator

	state      State
	chunks     int
	offset     uint64
	filterTime time.Duration
	summary    Summary

	base, resid, feat []T
	wide              []float64
}

// New builds a pipeline for one stream with the given ground-truth event
// centroids.
func New[T core.Sample](centroids []uint64, opts ...Option) (*Pipeline[T], error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseline, err := buildFilter[T]("baseline", cfg.Baseline)
	if err != nil {
		return nil, err
	}
	feature, err := buildFilter[T]("feature", cfg.Feature)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.Stream != "" {
		log = log.With(slog.String("stream", cfg.Stream))
	}

	return &Pipeline[T]{
		cfg:      cfg,
		log:      log,
		baseline: baseline,
		feature:  feature,
		reducer:  stats.NewReducer(cfg.Workers),
		scorer: score.NewScorer(score.NewCentroidSet(centroids),
			score.WithMinFalseRun(cfg.MinFalseRun)),
	}, nil
}

// Config returns the effective configuration.
func (p *Pipeline[T]) Config() Config {
	return p.cfg
}

// State returns the lifecycle state.
func (p *Pipeline[T]) State() State {
	return p.state
}

// ProcessChunk filters, thresholds and scores the next chunk of the stream.
// Empty chunks are ignored. After [Pipeline.Finish] it returns
// [ErrFinished].
func (p *Pipeline[T]) ProcessChunk(chunk []T) (ChunkResult, error) {
	if p.state == StateDone {
		return ChunkResult{}, ErrFinished
	}
	if len(chunk) == 0 {
		return ChunkResult{}, nil
	}
	p.state = StateProcessing

	n := len(chunk)
	res := ChunkResult{Index: p.chunks, Offset: p.offset, Len: n}

	start := time.Now()

	p.base = core.EnsureLen(p.base, n)
	p.resid = core.EnsureLen(p.resid, n)
	p.feat = core.EnsureLen(p.feat, n)

	// The baseline restarts at the chunk's level. The feature filter keeps
	// its history across chunks.
	p.baseline.Init(chunk[0])
	p.baseline.FiltTo(p.base, chunk)
	core.Sub(p.resid, chunk, p.base)
	p.feature.FiltTo(p.feat, p.resid)

	p.wide = core.ToFloat64(p.wide, p.feat)
	sigma, err := p.reducer.StdDev(p.wide)
	switch {
	case errors.Is(err, stats.ErrDegenerateInput):
		res.Degenerate = true
	case err != nil:
		return ChunkResult{}, err
	default:
		res.Sigma = sigma
		res.Threshold = -p.cfg.ThresholdSigma * sigma
		res.Flagged = flag(p.wide, res.Threshold, p.offset)
	}

	p.filterTime += time.Since(start)

	p.profile.Update(p.wide)
	res.Runs = score.GroupRuns(res.Flagged)
	res.Delta = p.scorer.ScoreRuns(res.Runs)

	p.chunks++
	p.offset += uint64(n)

	p.log.Debug("chunk processed",
		slog.Int("chunk", res.Index),
		slog.Uint64("offset", res.Offset),
		slog.Int("len", n),
		slog.Float64("sigma", res.Sigma),
		slog.Bool("degenerate", res.Degenerate),
		slog.Int("flagged", len(res.Flagged)),
		slog.Int("runs", len(res.Runs)),
		slog.Int("tp", res.Delta.TruePositive),
		slog.Int("fp", res.Delta.FalsePositive),
	)
	if p.cfg.Observer != nil {
		p.cfg.Observer.ObserveChunk(p.cfg.Stream, res)
	}

	return res, nil
}

// Process splits samples into chunks of the configured size and processes
// them in order.
func (p *Pipeline[T]) Process(samples []T) error {
	size := p.cfg.ChunkSize
	for begin := 0; begin < len(samples); begin += size {
		if _, err := p.ProcessChunk(samples[begin:min(begin+size, len(samples))]); err != nil {
			return err
		}
	}
	return nil
}

// Finish folds unclaimed centroids in as false negatives and returns the
// stream summary. Later calls return the same summary.
func (p *Pipeline[T]) Finish() Summary {
	if p.state == StateDone {
		return p.summary
	}
	p.state = StateDone

	set := p.scorer.Centroids()
	p.summary = Summary{
		Stream:     p.cfg.Stream,
		Chunks:     p.chunks,
		Samples:    int(p.offset),
		Centroids:  set.Total(),
		FilterTime: p.filterTime,
		Feature:    p.profile.Result(),
		Metrics:    p.scorer.Finish(),
		Missed:     set.Remaining(),
	}

	p.log.Debug("stream finished",
		slog.Int("chunks", p.summary.Chunks),
		slog.Int("samples", p.summary.Samples),
		slog.Duration("filter_time", p.summary.FilterTime),
		slog.String("metrics", p.summary.Metrics.String()),
	)
	if p.cfg.Observer != nil {
		p.cfg.Observer.ObserveSummary(p.cfg.Stream, p.summary)
	}

	return p.summary
}

// flag returns offset+i for every x[i] strictly below threshold.
func flag(x []float64, threshold float64, offset uint64) []uint64 {
	var out []uint64
	for i, v := range x {
		if v < threshold {
			out = append(out, offset+uint64(i))
		}
	}
	return out
}

// Analyze runs a whole stream through a new pipeline and returns its
// summary.
func Analyze[T core.Sample](samples []T, centroids []uint64, opts ...Option) (Summary, error) {
	p, err := New[T](centroids, opts...)
	if err != nil {
		return Summary{}, err
	}
	if err := p.Process(samples); err != nil {
		return Summary{}, err
	}
	return p.Finish(), nil
}

// Run processes samples in chunks of chunkSize and returns the final
// detection metrics.
func Run[T core.Sample](samples []T, centroids []uint64, chunkSize int, opts ...Option) (score.Metrics, error) {
	if chunkSize <= 0 {
		return score.Metrics{}, fmt.Errorf("%w: chunk size %d", ErrInvalidConfig, chunkSize)
	}
	s, err := Analyze(samples, centroids, append(slices.Clip(opts), WithChunkSize(chunkSize))...)
	if err != nil {
		return score.Metrics{}, err
	}
	return s.Metrics, nil
}
