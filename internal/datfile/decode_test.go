package datfile_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/stateful-filter/internal/datfile"
)

// layout builds a .dat buffer field by field.
func layout(centroids []uint64, dt, resolution float64, raw []uint16) []byte {
	var b []byte
	b = binary.LittleEndian.AppendUint64(b, uint64(len(centroids)))
	for _, c := range centroids {
		b = binary.LittleEndian.AppendUint64(b, c)
	}
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(dt))
	b = binary.LittleEndian.AppendUint64(b, math.Float64bits(resolution))
	b = binary.LittleEndian.AppendUint64(b, uint64(len(raw)))
	for _, v := range raw {
		b = binary.LittleEndian.AppendUint16(b, v)
	}
	return b
}

func TestParse(t *testing.T) {
	buf := layout([]uint64{5, 17, 1 << 40}, 1e-5, 0.25, []uint16{0, 1, 2, 65535})

	s, err := datfile.Parse(buf)
	require.NoError(t, err)
	require.Equal(t, []uint64{5, 17, 1 << 40}, s.Centroids)
	require.Equal(t, 1e-5, s.SampleInterval)
	require.InDelta(t, 100_000, s.SampleRate(), 1e-6)
	require.Equal(t, 0.25, s.Resolution)
	require.Equal(t, 4, s.Len())
	require.Equal(t, []float64{0, 0.25, 0.5, 16383.75}, s.Samples())
	require.Equal(t, []float32{0, 0.25, 0.5, 16383.75}, datfile.Samples[float32](s))
}

func TestParseByteOrder(t *testing.T) {
	buf := []byte{
		1, 0, 0, 0, 0, 0, 0, 0, // one centroid
		0x02, 0x01, 0, 0, 0, 0, 0, 0, // 258
	}
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(1))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(1))
	buf = append(buf, 2, 0, 0, 0, 0, 0, 0, 0)
	buf = append(buf, 0x34, 0x12, 0xff, 0x00)

	s, err := datfile.Parse(buf)
	require.NoError(t, err)
	require.Equal(t, []uint64{258}, s.Centroids)
	require.Equal(t, []uint16{0x1234, 0x00ff}, s.Raw)
}

func TestParseEmptyStream(t *testing.T) {
	s, err := datfile.Parse(layout(nil, 1, 1, nil))
	require.NoError(t, err)
	require.Empty(t, s.Centroids)
	require.Empty(t, s.Raw)
}

func TestParseIgnoresTrailingBytes(t *testing.T) {
	buf := append(layout([]uint64{1}, 1, 1, []uint16{7}), 0xde, 0xad)
	s, err := datfile.Parse(buf)
	require.NoError(t, err)
	require.Equal(t, []uint16{7}, s.Raw)
}

func TestParseTruncated(t *testing.T) {
	full := layout([]uint64{10, 20}, 1e-5, 0.5, []uint16{1, 2, 3})

	// Every proper prefix is rejected.
	for n := range len(full) {
		_, err := datfile.Parse(full[:n])
		require.ErrorIs(t, err, datfile.ErrTruncated, "prefix %d", n)
	}
}

func TestParseHugeCounts(t *testing.T) {
	buf := binary.LittleEndian.AppendUint64(nil, math.MaxUint64)
	_, err := datfile.Parse(buf)
	require.ErrorIs(t, err, datfile.ErrTruncated)

	buf = layout(nil, 1, 1, nil)
	binary.LittleEndian.PutUint64(buf[len(buf)-8:], 1<<62)
	_, err = datfile.Parse(buf)
	require.ErrorIs(t, err, datfile.ErrTruncated)
}

func TestParseInvalidHeader(t *testing.T) {
	tests := []struct {
		name           string
		dt, resolution float64
	}{
		{name: "zero interval", dt: 0, resolution: 1},
		{name: "negative interval", dt: -1, resolution: 1},
		{name: "nan interval", dt: math.NaN(), resolution: 1},
		{name: "inf resolution", dt: 1, resolution: math.Inf(1)},
		{name: "zero resolution", dt: 1, resolution: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := datfile.Parse(layout(nil, tc.dt, tc.resolution, []uint16{1}))
			require.ErrorIs(t, err, datfile.ErrInvalidHeader)
		})
	}
}

func TestDecodeWrapsStreamError(t *testing.T) {
	_, err := datfile.Decode(bytes.NewReader([]byte{1, 2, 3}))

	var se *datfile.StreamError
	require.True(t, errors.As(err, &se))
	require.Empty(t, se.Path)
	require.ErrorIs(t, err, datfile.ErrTruncated)
	require.Contains(t, err.Error(), "datfile: ")
}

func TestEncodeMatchesLayout(t *testing.T) {
	s := &datfile.Stream{
		Centroids:      []uint64{3, 9},
		SampleInterval: 2e-6,
		Resolution:     0.125,
		Raw:            []uint16{4, 5, 6},
	}

	var buf bytes.Buffer
	require.NoError(t, datfile.Encode(&buf, s))
	require.Equal(t, layout(s.Centroids, s.SampleInterval, s.Resolution, s.Raw), buf.Bytes())

	got, err := datfile.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rec.dat")
	s := &datfile.Stream{Centroids: []uint64{1}, SampleInterval: 1e-4, Resolution: 1, Raw: []uint16{9, 8}}
	require.NoError(t, datfile.WriteFile(path, s))

	got, err := datfile.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, s, got)

	require.NoError(t, os.WriteFile(path, []byte{0}, 0o600))
	_, err = datfile.ReadFile(path)
	var se *datfile.StreamError
	require.ErrorAs(t, err, &se)
	require.Equal(t, path, se.Path)
	require.ErrorIs(t, err, datfile.ErrTruncated)

	_, err = datfile.ReadFile(filepath.Join(dir, "missing.dat"))
	require.ErrorAs(t, err, &se)
	require.ErrorIs(t, err, os.ErrNotExist)
}
