package sos

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/transform"
	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

const (
	// AnalogPairTolerance is the relative tolerance for matching analog
	// conjugates. Analog roots come from closed forms and match tightly.
	AnalogPairTolerance = 1e-10

	// DigitalPairTolerance is looser because digital roots may come from
	// an iterative root finder.
	DigitalPairTolerance = polyroot.ConjugateTol

	// UnstableFloor is the smallest |H(z0)| that Normalize accepts.
	UnstableFloor = 1e-12
)

var (
	// ErrNumericallyUnstable is returned when the response at the
	// normalisation point vanishes or is not finite.
	ErrNumericallyUnstable = errors.New("sos: numerically unstable")

	// ErrUnmatchedZeros is returned when the zeros cannot be distributed
	// over the pole groups, which happens when there are more zeros than
	// poles.
	ErrUnmatchedZeros = errors.New("sos: more zeros than poles")
)

type sectionRoots struct {
	zeros, poles []complex128
}

// FromAnalog maps an s-domain ZPK to digital sections with the bilinear
// transform at sample rate fs. Missing zeros are zeros at infinity and land
// at z = -1. The ZPK gain is folded into the last section.
func FromAnalog(z transform.ZPK, fs float64) ([]biquad.Coefficients, error) {
	groups, err := groupRoots(z, AnalogPairTolerance)
	if err != nil {
		return nil, err
	}

	out := make([]biquad.Coefficients, len(groups))

	for i, g := range groups {
		num := polyroot.Quad(g.zeros)
		den := polyroot.Quad(g.poles)

		if i == len(groups)-1 {
			for j := range num {
				num[j] *= z.Gain
			}
		}

		var c biquad.Coefficients

		if len(g.poles) == 2 {
			c, err = transform.BilinearBiquad(pad3(num), [3]float64(den), fs)
		} else {
			c, err = transform.BilinearFirstOrder(pad2(num), [2]float64(den), fs)
		}

		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}

		out[i] = c
	}

	return out, nil
}

// FromDigital groups the roots of a z-domain ZPK into sections. A section
// with fewer zeros than poles has its missing zeros at the origin.
func FromDigital(z transform.ZPK) ([]biquad.Coefficients, error) {
	groups, err := groupRoots(z, DigitalPairTolerance)
	if err != nil {
		return nil, err
	}

	out := make([]biquad.Coefficients, len(groups))

	for i, g := range groups {
		b := asc3(polyroot.Quad(g.zeros))
		a := asc3(polyroot.Quad(g.poles))

		if i == len(groups)-1 {
			for j := range b {
				b[j] *= z.Gain
			}
		}

		out[i] = biquad.Coefficients{B0: b[0], B1: b[1], B2: b[2], A1: a[1], A2: a[2]}
	}

	return out, nil
}

// groupRoots pairs every pole group with a zero group. Second-order pole
// groups prefer zero pairs, then single zeros; a first-order pole group
// takes at most a single zero.
func groupRoots(z transform.ZPK, tol float64) ([]sectionRoots, error) {
	if len(z.Zeros) > len(z.Poles) {
		return nil, fmt.Errorf("%w: %d zeros, %d poles", ErrUnmatchedZeros, len(z.Zeros), len(z.Poles))
	}

	poleGroups, err := polyroot.Group(z.Poles, tol)
	if err != nil {
		return nil, fmt.Errorf("poles: %w", err)
	}

	zeroGroups, err := polyroot.Group(z.Zeros, tol)
	if err != nil {
		return nil, fmt.Errorf("zeros: %w", err)
	}

	var pairs, singles [][]complex128

	for _, g := range zeroGroups {
		if len(g) == 2 {
			pairs = append(pairs, g)
		} else {
			singles = append(singles, g)
		}
	}

	out := make([]sectionRoots, len(poleGroups))

	for i, pg := range poleGroups {
		out[i].poles = pg

		switch {
		case len(pg) == 2 && len(pairs) > 0:
			out[i].zeros, pairs = pairs[0], pairs[1:]
		case len(singles) > 0:
			out[i].zeros, singles = singles[0], singles[1:]
		}
	}

	if len(pairs)+len(singles) > 0 {
		return nil, ErrUnmatchedZeros
	}

	return out, nil
}

// pad3 right-aligns a descending polynomial of degree <= 2 in (s^2, s, 1).
func pad3(p []float64) [3]float64 {
	var out [3]float64
	copy(out[3-len(p):], p)

	return out
}

func pad2(p []float64) [2]float64 {
	var out [2]float64
	copy(out[2-len(p):], p)

	return out
}

// asc3 reads a monic descending polynomial in z as ascending powers of z^-1.
func asc3(p []float64) [3]float64 {
	var out [3]float64
	copy(out[:], p)

	return out
}

// Compose multiplies the sections out into one transfer function in
// ascending powers of z^-1. First-order sections contribute degree one.
func Compose(sections []biquad.Coefficients) (b, a []float64) {
	b, a = []float64{1}, []float64{1}

	for _, s := range sections {
		num, den := s.Num(), s.Den()
		n := s.Order() + 1

		b = polyroot.PolyMul(b, num[:n])
		a = polyroot.PolyMul(a, den[:n])
	}

	return b, a
}

// Response evaluates the cascade at z.
func Response(sections []biquad.Coefficients, z complex128) complex128 {
	h := complex(1, 0)
	for _, s := range sections {
		h *= s.ResponseAt(z)
	}

	return h
}

// Normalize scales the last section's numerator so that |H(z0)| = 1 and
// returns the applied factor.
func Normalize(sections []biquad.Coefficients, z0 complex128) (float64, error) {
	if len(sections) == 0 {
		return 1, nil
	}

	mag := cmplx.Abs(Response(sections, z0))
	if math.IsNaN(mag) || math.IsInf(mag, 0) || mag < UnstableFloor {
		return 0, fmt.Errorf("%w: |H(%v)| = %g", ErrNumericallyUnstable, z0, mag)
	}

	g := 1 / mag
	last := &sections[len(sections)-1]
	last.B0 *= g
	last.B1 *= g
	last.B2 *= g

	return g, nil
}

// Roots lists the digital zeros and poles of a cascade, one per order of
// each section.
func Roots(sections []biquad.Coefficients) (zeros, poles []complex128) {
	for _, s := range sections {
		n := s.Order()
		z, p := s.Zeros(), s.Poles()
		zeros = append(zeros, z[:n]...)
		poles = append(poles, p[:n]...)
	}

	return zeros, poles
}

// DC is the reference point for lowpass and bandstop normalisation.
func DC() complex128 { return 1 }

// Nyquist is the reference point for highpass normalisation.
func Nyquist() complex128 { return -1 }

// AtFrequency returns e^(j*2*pi*f/fs).
func AtFrequency(f, fs float64) complex128 {
	return polyroot.Expj(2 * math.Pi * f / fs)
}
