package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleInterval(1e-5), WithChunkSize(2048))
	require.Equal(t, 1e-5, cfg.SampleInterval)
	require.Equal(t, 2048, cfg.ChunkSize)
	require.InEpsilon(t, 100000, cfg.SampleRate(), 1e-9)
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleInterval(0), WithChunkSize(-1), nil)
	require.Equal(t, DefaultProcessorConfig(), cfg)
	require.Zero(t, cfg.SampleRate(), "unknown interval")
}
