package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNearlyEqual(t *testing.T) {
	require.True(t, NearlyEqual(1.0, 1.0+1e-13, 1e-12))
	require.False(t, NearlyEqual(1.0, 1.1, 1e-3))
	require.True(t, NearlyEqual(1e9, 1e9+1, 1e-6), "relative tolerance for large values")
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want bool
	}{
		{name: "zero", v: 0, want: true},
		{name: "negative", v: -3.5, want: true},
		{name: "nan", v: math.NaN(), want: false},
		{name: "+inf", v: math.Inf(1), want: false},
		{name: "-inf", v: math.Inf(-1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsFinite(tt.v))
		})
	}
}

func TestAllFiniteFloat32(t *testing.T) {
	require.True(t, AllFinite([]float32{1, 2, 3}))
	require.False(t, AllFinite([]float32{1, float32(math.Inf(1))}))
	require.True(t, AllFinite[float64](nil), "empty slice is finite")
}

func TestRound(t *testing.T) {
	require.Equal(t, 0.86067, Round(0.860666463, 5))
	require.Equal(t, -1.2, Round(-1.234, 1))
}
