package detect

import "errors"

var (
	// ErrFinished is returned when a chunk is submitted after Finish.
	ErrFinished = errors.New("detect: pipeline already finished")

	// ErrInvalidConfig is returned for unusable pipeline settings.
	ErrInvalidConfig = errors.New("detect: invalid configuration")
)
