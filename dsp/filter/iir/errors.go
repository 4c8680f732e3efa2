package iir

import (
	"errors"
	"fmt"

	"github.com/cwbudde/stateful-filter/dsp/core"
)

// ErrConstruction is returned when coefficient vectors cannot form a filter.
var ErrConstruction = errors.New("iir: invalid filter coefficients")

func validate[T core.Sample](a, b []T) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: len(a)=%d != len(b)=%d", ErrConstruction, len(a), len(b))
	}
	if len(a) < 2 {
		return fmt.Errorf("%w: need at least 2 coefficients, got %d", ErrConstruction, len(a))
	}
	if a[0] == 0 {
		return fmt.Errorf("%w: a[0] must be non-zero", ErrConstruction)
	}
	if !core.AllFinite(a) || !core.AllFinite(b) {
		return fmt.Errorf("%w: coefficients must be finite", ErrConstruction)
	}
	return nil
}
