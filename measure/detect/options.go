package detect

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/stateful-filter/dsp/core"
	"github.com/cwbudde/stateful-filter/dsp/filter/iir"
	"github.com/cwbudde/stateful-filter/measure/score"
)

// DefaultThresholdSigma is the number of standard deviations below zero a
// feature value must fall to be flagged.
const DefaultThresholdSigma = 3.0

// FilterSpec holds the denominator and numerator of a recursive filter.
type FilterSpec struct {
	A []float64 `json:"a" mapstructure:"a" validate:"min=2"`
	B []float64 `json:"b" mapstructure:"b" validate:"min=2"`
}

// DefaultBaseline is a slow first-order low-pass that follows the signal
// level.
func DefaultBaseline() FilterSpec {
	return FilterSpec{
		A: []float64{1, -0.9994},
		B: []float64{0.0003, 0.0003},
	}
}

// DefaultFeature is a fast first-order low-pass that smooths the residual.
func DefaultFeature() FilterSpec {
	return FilterSpec{
		A: []float64{1, -0.5095},
		B: []float64{0.2452, 0.2452},
	}
}

// Config defines the configuration of a detection pipeline.
type Config struct {
	core.ProcessorConfig

	// Stream labels log records and observer callbacks.
	Stream string

	ThresholdSigma float64
	MinFalseRun    int

	Baseline FilterSpec
	Feature  FilterSpec

	// Workers bounds the goroutines used by the standard deviation
	// reduction. Zero selects GOMAXPROCS.
	Workers int

	Logger   *slog.Logger
	Observer Observer
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		ThresholdSigma:  DefaultThresholdSigma,
		MinFalseRun:     score.DefaultMinFalseRun,
		Baseline:        DefaultBaseline(),
		Feature:         DefaultFeature(),
	}
}

// WithChunkSize sets the processing chunk length.
func WithChunkSize(n int) Option {
	return func(cfg *Config) {
		core.WithChunkSize(n)(&cfg.ProcessorConfig)
	}
}

// WithSampleInterval records the sampling interval in seconds.
func WithSampleInterval(seconds float64) Option {
	return func(cfg *Config) {
		core.WithSampleInterval(seconds)(&cfg.ProcessorConfig)
	}
}

// WithStream sets the stream label.
func WithStream(name string) Option {
	return func(cfg *Config) {
		cfg.Stream = name
	}
}

// WithThresholdSigma sets the detection threshold in standard deviations.
// Invalid values are kept and rejected by [New].
func WithThresholdSigma(k float64) Option {
	return func(cfg *Config) {
		cfg.ThresholdSigma = k
	}
}

// WithMinFalseRun sets the scorer's debounce length.
func WithMinFalseRun(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.MinFalseRun = n
		}
	}
}

// WithBaseline sets the low-pass baseline filter coefficients.
func WithBaseline(a, b []float64) Option {
	return func(cfg *Config) {
		cfg.Baseline = FilterSpec{A: a, B: b}
	}
}

// WithFeature sets the feature filter coefficients.
func WithFeature(a, b []float64) Option {
	return func(cfg *Config) {
		cfg.Feature = FilterSpec{A: a, B: b}
	}
}

// WithWorkers bounds the goroutines used by the reduction.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.Workers = n
		}
	}
}

// WithLogger sets the logger used for per-chunk debug records.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// WithObserver registers an observer for chunk results and summaries.
func WithObserver(o Observer) Option {
	return func(cfg *Config) {
		cfg.Observer = o
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports whether cfg can build a pipeline.
func (cfg Config) Validate() error {
	if cfg.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size %d", ErrInvalidConfig, cfg.ChunkSize)
	}
	if !(cfg.ThresholdSigma > 0) || math.IsInf(cfg.ThresholdSigma, 0) {
		return fmt.Errorf("%w: threshold sigma %v", ErrInvalidConfig, cfg.ThresholdSigma)
	}
	if _, err := iir.NewCoefficients(cfg.Baseline.A, cfg.Baseline.B); err != nil {
		return fmt.Errorf("%w: baseline: %w", ErrInvalidConfig, err)
	}
	if _, err := iir.NewCoefficients(cfg.Feature.A, cfg.Feature.B); err != nil {
		return fmt.Errorf("%w: feature: %w", ErrInvalidConfig, err)
	}
	return nil
}

func buildFilter[T core.Sample](name string, spec FilterSpec) (iir.Filter[T], error) {
	f, err := iir.New(core.FromFloat64[T](spec.A), core.FromFloat64[T](spec.B))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
	}
	return f, nil
}
