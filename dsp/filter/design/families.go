package design

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/prototype"
)

// Butterworth designs a maximally flat filter with -3 dB at the cutoff
// (each edge for band kinds).
func Butterworth(kind Kind, cutoff Cutoff, fs float64, order int, opts ...Option) (*Result, error) {
	if err := validateCommon(kind, cutoff, fs, order); err != nil {
		return nil, err
	}

	return newPipeline(FamilyButterworth, prototype.Butterworth, opts).design(kind, cutoff, fs, order)
}

// Chebyshev1 designs an equiripple-passband filter with rippleDB of ripple;
// DefaultRippleDB is the customary choice. Gain is unity at the reference
// point, so odd orders ripple between 0 and -rippleDB and reach -rippleDB
// at the cutoff. Even orders start at a ripple trough: the passband peaks
// at +rippleDB and the cutoff sits at 0 dB.
func Chebyshev1(kind Kind, cutoff Cutoff, fs float64, order int, rippleDB float64, opts ...Option) (*Result, error) {
	if err := validateCommon(kind, cutoff, fs, order); err != nil {
		return nil, err
	}

	if err := prototype.ValidateRipple(rippleDB); err != nil {
		return nil, err
	}

	proto := func(n int) (prototype.Prototype, error) { return prototype.Chebyshev1(n, rippleDB) }

	return newPipeline(FamilyChebyshev1, proto, opts).design(kind, cutoff, fs, order)
}

// Chebyshev2 designs an equiripple-stopband filter. The cutoff is the
// stopband edge, where the response reaches -attenuationDB.
func Chebyshev2(kind Kind, stopbandEdge Cutoff, fs float64, order int, attenuationDB float64, opts ...Option) (*Result, error) {
	if err := validateCommon(kind, stopbandEdge, fs, order); err != nil {
		return nil, err
	}

	if err := prototype.ValidateAttenuation(attenuationDB); err != nil {
		return nil, err
	}

	proto := func(n int) (prototype.Prototype, error) { return prototype.Chebyshev2(n, attenuationDB) }

	return newPipeline(FamilyChebyshev2, proto, opts).design(kind, stopbandEdge, fs, order)
}

// Elliptic designs a filter with equiripple passband and stopband. The
// cutoff is the passband edge, the last point of the ripple band: -rippleDB
// for odd orders and 0 dB for even orders, whose passband peaks at
// +rippleDB as with [Chebyshev1]. attenuationDB must exceed rippleDB.
func Elliptic(kind Kind, cutoff Cutoff, fs float64, order int, rippleDB, attenuationDB float64, opts ...Option) (*Result, error) {
	if err := validateCommon(kind, cutoff, fs, order); err != nil {
		return nil, err
	}

	if err := prototype.ValidateRipple(rippleDB); err != nil {
		return nil, err
	}

	if err := prototype.ValidateAttenuation(attenuationDB); err != nil {
		return nil, err
	}

	if attenuationDB <= rippleDB {
		return nil, fmt.Errorf("%w: %g dB must exceed the %g dB ripple", ErrInvalidAttenuation, attenuationDB, rippleDB)
	}

	proto := func(n int) (prototype.Prototype, error) { return prototype.Elliptic(n, rippleDB, attenuationDB) }

	return newPipeline(FamilyElliptic, proto, opts).design(kind, cutoff, fs, order)
}

// Bessel designs a maximally flat group delay filter with -3 dB at the
// cutoff.
func Bessel(kind Kind, cutoff Cutoff, fs float64, order int, opts ...Option) (*Result, error) {
	if err := validateCommon(kind, cutoff, fs, order); err != nil {
		return nil, err
	}

	return newPipeline(FamilyBessel, prototype.Bessel, opts).design(kind, cutoff, fs, order)
}

// LinkwitzRiley designs the square of a Butterworth filter of half the
// order, which is -6 dB at the cutoff. Odd orders are rounded up to the
// next even order.
func LinkwitzRiley(kind Kind, cutoff Cutoff, fs float64, order int, opts ...Option) (*Result, error) {
	if err := validateCommon(kind, cutoff, fs, order); err != nil {
		return nil, err
	}

	order += order % 2

	half, err := newPipeline(FamilyLinkwitzRiley, prototype.Butterworth, opts).design(kind, cutoff, fs, order/2)
	if err != nil {
		return nil, err
	}

	sections := squareSections(half.Sections)

	cfg := newConfig(opts)
	if _, err := normalize(sections, cfg.reference(kind, cutoff, fs), cfg.logger); err != nil {
		return nil, fmt.Errorf("design: %v %v: %w", FamilyLinkwitzRiley, kind, classify(err))
	}

	return newIIRResult(sections), nil
}

// squareSections returns a cascade with H^2. Second-order sections are
// repeated; a first-order section is squared into one biquad.
func squareSections(in []biquad.Coefficients) []biquad.Coefficients {
	out := make([]biquad.Coefficients, 0, 2*len(in))

	var firstOrder []biquad.Coefficients

	for _, s := range in {
		if s.IsFirstOrder() {
			firstOrder = append(firstOrder, s)
			continue
		}

		out = append(out, s, s)
	}

	for _, s := range firstOrder {
		out = append(out, biquad.Coefficients{
			B0: s.B0 * s.B0,
			B1: 2 * s.B0 * s.B1,
			B2: s.B1 * s.B1,
			A1: 2 * s.A1,
			A2: s.A1 * s.A1,
		})
	}

	return out
}

// Design dispatches a Spec to its family. Zero ripple, attenuation and
// Linkwitz-Riley order take their defaults.
func Design(spec Spec, opts ...Option) (*Result, error) {
	s := spec.withDefaults()

	switch s.Family {
	case FamilyButterworth:
		return Butterworth(s.Kind, s.Cutoff, s.SampleRate, s.Order, opts...)
	case FamilyChebyshev1:
		return Chebyshev1(s.Kind, s.Cutoff, s.SampleRate, s.Order, s.RippleDB, opts...)
	case FamilyChebyshev2:
		return Chebyshev2(s.Kind, s.Cutoff, s.SampleRate, s.Order, s.AttenuationDB, opts...)
	case FamilyElliptic:
		return Elliptic(s.Kind, s.Cutoff, s.SampleRate, s.Order, s.RippleDB, s.AttenuationDB, opts...)
	case FamilyBessel:
		return Bessel(s.Kind, s.Cutoff, s.SampleRate, s.Order, opts...)
	case FamilyLinkwitzRiley:
		return LinkwitzRiley(s.Kind, s.Cutoff, s.SampleRate, s.Order, opts...)
	}

	return nil, fmt.Errorf("%w: %v", ErrUnsupportedFamily, s.Family)
}
