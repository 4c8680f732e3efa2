package core

import "github.com/cwbudde/algo-vecmath"

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Fill sets all values in buf to v.
func Fill[T Sample](buf []T, v T) {
	for i := range buf {
		buf[i] = v
	}
}

// Sub writes a[i] - b[i] into dst. All slices must have the same length.
//
// float64 slices go through the vecmath block kernels; the result is
// bit-identical to the scalar loop because negation is exact. dst may alias
// a or b.
func Sub[T Sample](dst, a, b []T) {
	if len(a) != len(dst) || len(b) != len(dst) {
		panic("core: Sub length mismatch")
	}
	if d, ok := any(dst).([]float64); ok && len(d) > 0 && &dst[0] != &a[0] {
		vecmath.ScaleBlock(d, any(b).([]float64), -1)
		vecmath.AddBlockInPlace(d, any(a).([]float64))
		return
	}
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

// ToFloat64 converts src into dst (resized as needed) and returns it.
// A []float64 source is returned as is.
func ToFloat64[T Sample](dst []float64, src []T) []float64 {
	if f, ok := any(src).([]float64); ok {
		return f
	}
	dst = EnsureLen(dst, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

// FromFloat64 converts src into a new []T.
func FromFloat64[T Sample](src []float64) []T {
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = T(v)
	}
	return out
}
