package iir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFirstOrderMatchesFactory(t *testing.T) {
	direct := NewFirstOrder(firstOrderA[1], firstOrderB[0], firstOrderB[1])
	built := mustNew(t, firstOrderA, firstOrderB)

	input := []float64{0, 1, 2, 3, 4, 5}
	want := built.Filt(input)
	for i, x := range input {
		require.Equal(t, want[i], direct.ProcessSample(x), "sample %d", i)
	}

	xPrev, yPrev := direct.State()
	require.Equal(t, 5.0, xPrev)
	require.Equal(t, want[5], yPrev)
}

func TestFirstOrderInit(t *testing.T) {
	f := NewFirstOrder[float32](-0.5, 0.25, 0.25)
	f.Init(4)

	xPrev, yPrev := f.State()
	require.Equal(t, float32(4), xPrev)
	require.Equal(t, float32(4), yPrev)

	// 0.25*4 + 0.5*4 + 0.25*4
	require.Equal(t, float32(4), f.ProcessSample(4))
}
