package detect_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/stateful-filter/internal/testutil"
	"github.com/cwbudde/stateful-filter/measure/detect"
)

func BenchmarkProcessChunk(b *testing.B) {
	ev := testutil.SyntheticEvents(1, 100_000, 1000, 8, 1, 0.01)
	p, err := detect.New[float64](nil)
	require.NoError(b, err)

	b.SetBytes(int64(len(ev.Samples) * 8))
	b.ResetTimer()

	for range b.N {
		_, err := p.ProcessChunk(ev.Samples)
		require.NoError(b, err)
	}
}
