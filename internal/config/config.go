// Package config loads evdetect settings from a file, the environment and
// built-in defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/cwbudde/stateful-filter/dsp/core"
	"github.com/cwbudde/stateful-filter/internal/logging"
	"github.com/cwbudde/stateful-filter/measure/detect"
	"github.com/cwbudde/stateful-filter/measure/score"
)

// EnvPrefix prefixes environment overrides, e.g. EVDETECT_PIPELINE_CHUNK_SIZE.
const EnvPrefix = "EVDETECT"

// Config is the complete evdetect configuration.
type Config struct {
	Input    InputConfig    `mapstructure:"input"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Filters  FiltersConfig  `mapstructure:"filters"`
	Log      logging.Config `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// InputConfig selects the recordings to analyze when none are named on the
// command line.
type InputConfig struct {
	Dir     string `mapstructure:"dir"`
	Pattern string `mapstructure:"pattern" validate:"required"`
}

// PipelineConfig holds detection settings.
type PipelineConfig struct {
	ChunkSize      int     `mapstructure:"chunk_size"      validate:"gt=0"`
	ThresholdSigma float64 `mapstructure:"threshold_sigma" validate:"gt=0"`
	MinFalseRun    int     `mapstructure:"min_false_run"   validate:"gte=0"`
	Precision      int     `mapstructure:"precision"       validate:"oneof=32 64"`
	Workers        int     `mapstructure:"workers"         validate:"gte=0"`
}

// FiltersConfig holds the coefficients of both pipeline filters.
type FiltersConfig struct {
	Baseline detect.FilterSpec `mapstructure:"baseline"`
	Feature  detect.FilterSpec `mapstructure:"feature"`
}

// MetricsConfig controls the Prometheus text file written after a batch.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input.dir", ".")
	v.SetDefault("input.pattern", "*.dat")

	v.SetDefault("pipeline.chunk_size", core.DefaultChunkSize)
	v.SetDefault("pipeline.threshold_sigma", detect.DefaultThresholdSigma)
	v.SetDefault("pipeline.min_false_run", score.DefaultMinFalseRun)
	v.SetDefault("pipeline.precision", 64)
	v.SetDefault("pipeline.workers", 0)

	baseline, feature := detect.DefaultBaseline(), detect.DefaultFeature()
	v.SetDefault("filters.baseline.a", baseline.A)
	v.SetDefault("filters.baseline.b", baseline.B)
	v.SetDefault("filters.feature.a", feature.A)
	v.SetDefault("filters.feature.b", feature.B)

	v.SetDefault("log.service", "evdetect")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)

	v.SetDefault("metrics.textfile", "")
}

// Load reads path (any format viper understands, chosen by extension),
// applies EVDETECT_* environment overrides on top, and validates the
// result. An empty path uses defaults and the environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and that both filters can be built.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	if err := detect.ApplyOptions(c.DetectOptions()...).Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DetectOptions translates the pipeline and filter settings.
func (c *Config) DetectOptions() []detect.Option {
	return []detect.Option{
		detect.WithChunkSize(c.Pipeline.ChunkSize),
		detect.WithThresholdSigma(c.Pipeline.ThresholdSigma),
		detect.WithMinFalseRun(c.Pipeline.MinFalseRun),
		detect.WithWorkers(c.Pipeline.Workers),
		detect.WithBaseline(c.Filters.Baseline.A, c.Filters.Baseline.B),
		detect.WithFeature(c.Filters.Feature.A, c.Filters.Feature.B),
	}
}
