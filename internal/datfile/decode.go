// Package datfile reads recordings stored in the little-endian .dat layout:
//
//	u64 nEvents
//	nEvents × u64 event centroid (sample index)
//	f64 sample interval in seconds
//	f64 resolution
//	u64 nPoints
//	nPoints × u16 raw sample
//
// Samples are raw × resolution. Bytes after the last sample are ignored.
package datfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/stateful-filter/dsp/core"
)

// Stream is one decoded recording.
type Stream struct {
	Centroids      []uint64
	SampleInterval float64
	Resolution     float64
	Raw            []uint16
}

// SampleRate returns 1/SampleInterval.
func (s *Stream) SampleRate() float64 {
	return 1 / s.SampleInterval
}

// Len returns the number of samples.
func (s *Stream) Len() int {
	return len(s.Raw)
}

// Samples returns the scaled samples as float64.
func (s *Stream) Samples() []float64 {
	return Samples[float64](s)
}

// Samples returns raw × resolution converted to T. The product is formed in
// float64 before conversion.
func Samples[T core.Sample](s *Stream) []T {
	out := make([]T, len(s.Raw))
	for i, v := range s.Raw {
		out[i] = T(float64(v) * s.Resolution)
	}
	return out
}

type reader struct {
	buf []byte
	off int
}

func (r *reader) next(n int, what string) ([]byte, error) {
	if n < 0 || len(r.buf)-r.off < n {
		return nil, fmt.Errorf("%w: %s needs %d bytes at offset %d, %d left",
			ErrTruncated, what, n, r.off, len(r.buf)-r.off)
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

func (r *reader) u64(what string) (uint64, error) {
	b, err := r.next(8, what)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *reader) f64(what string) (float64, error) {
	v, err := r.u64(what)
	return math.Float64frombits(v), err
}

// count reads an element count and checks that count elements of size
// bytes fit in the remaining buffer.
func (r *reader) count(size int, what string) (int, error) {
	n, err := r.u64(what + " count")
	if err != nil {
		return 0, err
	}
	left := uint64(len(r.buf) - r.off)
	if n > left/uint64(size) {
		return 0, fmt.Errorf("%w: %d %s of %d bytes, %d bytes left",
			ErrTruncated, n, what, size, left)
	}
	return int(n), nil
}

// Parse decodes a complete in-memory recording.
func Parse(buf []byte) (*Stream, error) {
	r := &reader{buf: buf}

	nEvents, err := r.count(8, "centroids")
	if err != nil {
		return nil, err
	}
	raw, _ := r.next(8*nEvents, "centroids")
	centroids := make([]uint64, nEvents)
	for i := range centroids {
		centroids[i] = binary.LittleEndian.Uint64(raw[8*i:])
	}

	dt, err := r.f64("sample interval")
	if err != nil {
		return nil, err
	}
	resolution, err := r.f64("resolution")
	if err != nil {
		return nil, err
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: sample interval %v", ErrInvalidHeader, dt)
	}
	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return nil, fmt.Errorf("%w: resolution %v", ErrInvalidHeader, resolution)
	}

	nPoints, err := r.count(2, "samples")
	if err != nil {
		return nil, err
	}
	raw, _ = r.next(2*nPoints, "samples")
	points := make([]uint16, nPoints)
	for i := range points {
		points[i] = binary.LittleEndian.Uint16(raw[2*i:])
	}

	return &Stream{
		Centroids:      centroids,
		SampleInterval: dt,
		Resolution:     resolution,
		Raw:            points,
	}, nil
}

// Decode reads r to the end and parses it. Errors are *StreamError.
func Decode(r io.Reader) (*Stream, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, &StreamError{Err: err}
	}
	s, err := Parse(buf)
	if err != nil {
		return nil, &StreamError{Err: err}
	}
	return s, nil
}

// ReadFile loads the recording at path. Errors are *StreamError carrying
// the path.
func ReadFile(path string) (*Stream, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &StreamError{Path: path, Err: err}
	}
	s, err := Parse(buf)
	if err != nil {
		return nil, &StreamError{Path: path, Err: err}
	}
	return s, nil
}

// Encode writes s in the .dat layout.
func Encode(w io.Writer, s *Stream) error {
	buf := make([]byte, 0, 8+8*len(s.Centroids)+24+2*len(s.Raw))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(s.Centroids)))
	for _, c := range s.Centroids {
		buf = binary.LittleEndian.AppendUint64(buf, c)
	}
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.SampleInterval))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(s.Resolution))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(s.Raw)))
	for _, v := range s.Raw {
		buf = binary.LittleEndian.AppendUint16(buf, v)
	}
	_, err := w.Write(buf)
	return err
}

// WriteFile writes s to path in the .dat layout.
func WriteFile(path string, s *Stream) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
