package prototype

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

const (
	// MaxOrder is the highest supported prototype order. Beyond it the
	// cascaded sections of the narrower-band designs lose precision in
	// double arithmetic.
	MaxOrder = 12

	// MaxRippleDB is the largest accepted passband ripple in dB.
	MaxRippleDB = 10.0
)

var (
	// ErrInvalidOrder is returned for an order below 1.
	ErrInvalidOrder = errors.New("prototype: order must be at least 1")

	// ErrOrderTooHigh is returned for an order above MaxOrder. It wraps
	// ErrInvalidOrder.
	ErrOrderTooHigh = fmt.Errorf("%w (maximum %d)", ErrInvalidOrder, MaxOrder)

	// ErrInvalidRipple is returned for passband ripple outside (0, MaxRippleDB].
	ErrInvalidRipple = errors.New("prototype: invalid passband ripple")

	// ErrInvalidAttenuation is returned for stopband attenuation that is not
	// positive (or, for elliptic designs, not above the passband ripple).
	ErrInvalidAttenuation = errors.New("prototype: invalid stopband attenuation")
)

// Prototype is a normalised analog lowpass filter in zeros/poles/gain form.
type Prototype struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Order returns the number of poles.
func (p Prototype) Order() int { return len(p.Poles) }

// Response evaluates H(jw) for the angular frequency w in rad/s.
func (p Prototype) Response(w float64) complex128 {
	s := complex(0, w)
	h := complex(p.Gain, 0)

	for _, z := range p.Zeros {
		h *= s - z
	}

	for _, pole := range p.Poles {
		h /= s - pole
	}

	return h
}

// MagnitudeDB returns 20*log10|H(jw)|.
func (p Prototype) MagnitudeDB(w float64) float64 {
	return 20 * math.Log10(cmplx.Abs(p.Response(w)))
}

// ValidateOrder reports whether n lies in [1, MaxOrder].
func ValidateOrder(n int) error {
	switch {
	case n < 1:
		return fmt.Errorf("%w: got %d", ErrInvalidOrder, n)
	case n > MaxOrder:
		return fmt.Errorf("%w: got %d", ErrOrderTooHigh, n)
	}

	return nil
}

// ValidateRipple reports whether rippleDB lies in (0, MaxRippleDB].
func ValidateRipple(rippleDB float64) error {
	if !(rippleDB > 0 && rippleDB <= MaxRippleDB) {
		return fmt.Errorf("%w: %g dB not in (0, %g]", ErrInvalidRipple, rippleDB, MaxRippleDB)
	}

	return nil
}

// ValidateAttenuation reports whether attenuationDB is positive and finite.
func ValidateAttenuation(attenuationDB float64) error {
	if !(attenuationDB > 0) || math.IsInf(attenuationDB, 1) {
		return fmt.Errorf("%w: %g dB must be positive and finite", ErrInvalidAttenuation, attenuationDB)
	}

	return nil
}

// gainFromPoles returns prod(-p)/prod(-z), the gain that puts |H(0)| at 1.
func gainFromPoles(zeros, poles []complex128) float64 {
	num := complex(1, 0)
	for _, p := range poles {
		num *= -p
	}

	den := complex(1, 0)
	for _, z := range zeros {
		den *= -z
	}

	return real(num / den)
}

// withConjugates expands upper-half-plane roots into adjacent conjugate pairs.
// Roots with a zero imaginary part are kept once and moved to the end.
func withConjugates(upper []complex128) []complex128 {
	out := make([]complex128, 0, 2*len(upper))

	var reals []complex128

	for _, r := range upper {
		if imag(r) == 0 {
			reals = append(reals, r)
			continue
		}

		r = complex(real(r), math.Abs(imag(r)))
		out = append(out, r, cmplx.Conj(r))
	}

	return append(out, reals...)
}

func dbToMinusOne(db float64) float64 {
	return math.Expm1(math.Ln10 * db / 10)
}
