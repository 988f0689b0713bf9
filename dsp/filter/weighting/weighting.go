package weighting

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/sos"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/transform"
)

// IEC 61672 pole frequencies in Hz.
const (
	f1 = 20.598997 // double pole of A, B and C
	f2 = 107.65265 // A and B
	f3 = 158.48932 // B only
	f4 = 737.86223 // A only
	f5 = 12194.217 // double pole of A, B and C
)

// ReferenceHz is the frequency at which every curve has 0 dB gain.
const ReferenceHz = 1000

// MinSampleRate is the lowest sample rate at which the highest pole still
// lies below Nyquist.
const MinSampleRate = 2 * f5

var ErrUnknownType = errors.New("weighting: unknown type")

// Type identifies a frequency weighting curve.
type Type int

const (
	// TypeA approximates the 40-phon equal-loudness contour.
	TypeA Type = iota
	// TypeB approximates the 70-phon contour.
	TypeB
	// TypeC approximates the 100-phon contour.
	TypeC
	// TypeZ is flat.
	TypeZ
)

func (t Type) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeB:
		return "B"
	case TypeC:
		return "C"
	case TypeZ:
		return "Z"
	}

	return "Unknown"
}

// analog returns the pole frequencies and the number of zeros at DC of
// each curve:
//
//	H_A(s) = s^4 / ((s+w1)^2 (s+w2) (s+w4) (s+w5)^2)
//	H_B(s) = s^3 / ((s+w1)^2 (s+w3) (s+w5)^2)
//	H_C(s) = s^2 / ((s+w1)^2 (s+w5)^2)
func (t Type) analog() (poles []float64, dcZeros int, ok bool) {
	switch t {
	case TypeA:
		return []float64{f1, f1, f2, f4, f5, f5}, 4, true
	case TypeB:
		return []float64{f1, f1, f3, f5, f5}, 3, true
	case TypeC:
		return []float64{f1, f1, f5, f5}, 2, true
	case TypeZ:
		return nil, 0, true
	}

	return nil, 0, false
}

// ZPK returns the analog curve of t with every pole frequency prewarped
// for fs, so that the digital poles land on the analog frequencies.
func ZPK(t Type, fs float64) (transform.ZPK, error) {
	freqs, dcZeros, ok := t.analog()
	if !ok {
		return transform.ZPK{}, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}

	if t != TypeZ && (!(fs > MinSampleRate) || math.IsInf(fs, 1)) {
		return transform.ZPK{}, fmt.Errorf("%w: %g Hz, need more than %g", design.ErrInvalidSampleRate, fs, MinSampleRate)
	}

	z := transform.ZPK{Zeros: make([]complex128, dcZeros), Gain: 1}
	for _, f := range freqs {
		z.Poles = append(z.Poles, complex(-transform.Prewarp(f, fs), 0))
	}

	return z, nil
}

// Sections returns the digital sections of t at fs with 0 dB gain at
// ReferenceHz.
func Sections(t Type, fs float64) ([]biquad.Coefficients, error) {
	if t == TypeZ {
		if !(fs > 0) || math.IsInf(fs, 1) {
			return nil, fmt.Errorf("%w: %g Hz", design.ErrInvalidSampleRate, fs)
		}

		return []biquad.Coefficients{{B0: 1}}, nil
	}

	z, err := ZPK(t, fs)
	if err != nil {
		return nil, err
	}

	sections, err := sos.FromAnalog(z, fs)
	if err != nil {
		return nil, fmt.Errorf("weighting %v: %w", t, err)
	}

	if _, err := sos.Normalize(sections, sos.AtFrequency(ReferenceHz, fs)); err != nil {
		return nil, fmt.Errorf("weighting %v: %w", t, err)
	}

	return sections, nil
}

// New returns a streaming filter for the curve t at fs.
func New(t Type, fs float64) (*biquad.Chain, error) {
	sections, err := Sections(t, fs)
	if err != nil {
		return nil, err
	}

	return biquad.NewChain(sections), nil
}
