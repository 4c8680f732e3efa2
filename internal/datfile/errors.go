package datfile

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when the stream ends before a field that its
	// header announced.
	ErrTruncated = errors.New("datfile: truncated stream")

	// ErrInvalidHeader is returned for a non-positive or non-finite sample
	// interval or resolution.
	ErrInvalidHeader = errors.New("datfile: invalid header")
)

// StreamError reports why a stream could not be loaded.
type StreamError struct {
	Path string
	Err  error
}

func (e *StreamError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}
