package core

// DefaultChunkSize is the number of samples processed per block when no
// size is configured.
const DefaultChunkSize = 100_000

// ProcessorConfig defines common stream processing settings.
type ProcessorConfig struct {
	// SampleInterval is the time between samples in seconds. It is
	// informational and never enters filter math.
	SampleInterval float64
	ChunkSize      int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns defaults for offline chunked processing.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		ChunkSize: DefaultChunkSize,
	}
}

// SampleRate returns 1/SampleInterval, or 0 when the interval is unknown.
func (c ProcessorConfig) SampleRate() float64 {
	if c.SampleInterval <= 0 {
		return 0
	}
	return 1 / c.SampleInterval
}

// WithSampleInterval sets the sampling interval in seconds.
func WithSampleInterval(seconds float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if seconds > 0 {
			cfg.SampleInterval = seconds
		}
	}
}

// WithChunkSize sets the processing chunk length.
func WithChunkSize(n int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if n > 0 {
			cfg.ChunkSize = n
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
