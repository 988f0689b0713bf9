package design

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/sos"
)

// Errors shared with the prototype and sos packages, so errors.Is works
// with either name.
var (
	ErrInvalidOrder        = prototype.ErrInvalidOrder
	ErrOrderTooHigh        = prototype.ErrOrderTooHigh
	ErrInvalidRipple       = prototype.ErrInvalidRipple
	ErrInvalidAttenuation  = prototype.ErrInvalidAttenuation
	ErrNumericallyUnstable = sos.ErrNumericallyUnstable
)

var (
	ErrInvalidCutoff     = errors.New("design: invalid cutoff frequency")
	ErrInvalidBandEdges  = errors.New("design: invalid band edges")
	ErrUnsupportedKind   = errors.New("design: unsupported filter kind")
	ErrUnsupportedFamily = errors.New("design: unsupported filter family")
	ErrInvalidSampleRate = errors.New("design: invalid sample rate")
	ErrInvalidTaps       = errors.New("design: invalid FIR tap count")
	ErrUnsupportedWindow = errors.New("design: unsupported window")
)

// parameterErrors are reported as they are; anything else that escapes the
// numeric stages is filed under ErrNumericallyUnstable.
var parameterErrors = []error{
	ErrInvalidOrder,
	ErrInvalidRipple,
	ErrInvalidAttenuation,
	ErrInvalidCutoff,
	ErrInvalidBandEdges,
	ErrUnsupportedKind,
	ErrUnsupportedFamily,
	ErrInvalidSampleRate,
	ErrInvalidTaps,
	ErrUnsupportedWindow,
	ErrNumericallyUnstable,
}

func classify(err error) error {
	for _, target := range parameterErrors {
		if errors.Is(err, target) {
			return err
		}
	}

	return fmt.Errorf("%w: %w", ErrNumericallyUnstable, err)
}
