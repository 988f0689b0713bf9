package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/prototype"
)

const (
	DefaultRippleDB           = 1.0
	DefaultAttenuationDB      = 40.0
	DefaultLinkwitzRileyOrder = 4
)

// Cutoff holds the critical frequencies in Hz. Lowpass and highpass
// designs use F1 only; band designs use F1 < F2.
type Cutoff struct {
	F1, F2 float64
}

// Freq returns a single-frequency cutoff.
func Freq(fc float64) Cutoff { return Cutoff{F1: fc} }

// Band returns the band edges f1 < f2.
func Band(f1, f2 float64) Cutoff { return Cutoff{F1: f1, F2: f2} }

func (c Cutoff) validate(kind Kind, fs float64) error {
	nyq := fs / 2

	if !kind.IsBand() {
		if !(c.F1 > 0 && c.F1 < nyq) {
			return fmt.Errorf("%w: %g Hz must lie in (0, %g)", ErrInvalidCutoff, c.F1, nyq)
		}

		return nil
	}

	if !(c.F1 > 0 && c.F1 < c.F2 && c.F2 < nyq) {
		return fmt.Errorf("%w: need 0 < f1 < f2 < %g, got f1=%g f2=%g", ErrInvalidBandEdges, nyq, c.F1, c.F2)
	}

	return nil
}

// Spec describes one design request. It is the serialisable form used by
// Design and the command-line tool.
type Spec struct {
	Family        Family
	Kind          Kind
	Cutoff        Cutoff
	SampleRate    float64
	Order         int
	RippleDB      float64
	AttenuationDB float64
}

func (s Spec) withDefaults() Spec {
	if s.RippleDB == 0 {
		s.RippleDB = DefaultRippleDB
	}

	if s.AttenuationDB == 0 {
		s.AttenuationDB = DefaultAttenuationDB
	}

	if s.Family == FamilyLinkwitzRiley && s.Order == 0 {
		s.Order = DefaultLinkwitzRileyOrder
	}

	return s
}

// validateCommon checks kind, order, sample rate and cutoff in that order.
func validateCommon(kind Kind, cutoff Cutoff, fs float64, order int) error {
	if !kind.valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedKind, kind)
	}

	if err := prototype.ValidateOrder(order); err != nil {
		return err
	}

	if !(fs > 0) || math.IsInf(fs, 1) {
		return fmt.Errorf("%w: %g Hz must be positive and finite", ErrInvalidSampleRate, fs)
	}

	return cutoff.validate(kind, fs)
}
