package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
)

// ErrDegenerateSection is returned when a bilinear map would divide by zero:
// an analog root at s = 2*fs or a section whose denominator vanishes at the
// transform's pole.
var ErrDegenerateSection = errors.New("transform: degenerate section")

// BilinearZPK maps an analog filter to the z-domain with
// z = (2fs + s)/(2fs - s). Zeros at infinity land at z = -1 (Nyquist), and
// the gain is adjusted so that H_d(z(s)) = H_a(s).
func BilinearZPK(p ZPK, fs float64) (ZPK, error) {
	if err := p.validate(); err != nil {
		return ZPK{}, err
	}

	k := complex(2*fs, 0)

	out := ZPK{
		Zeros: make([]complex128, 0, len(p.Poles)),
		Poles: make([]complex128, 0, len(p.Poles)),
	}

	num := complex(1, 0)

	for _, z := range p.Zeros {
		if k-z == 0 {
			return ZPK{}, fmt.Errorf("%w: zero at s = 2fs", ErrDegenerateSection)
		}

		num *= k - z
		out.Zeros = append(out.Zeros, (k+z)/(k-z))
	}

	den := complex(1, 0)

	for _, pole := range p.Poles {
		if k-pole == 0 {
			return ZPK{}, fmt.Errorf("%w: pole at s = 2fs", ErrDegenerateSection)
		}

		den *= k - pole
		out.Poles = append(out.Poles, (k+pole)/(k-pole))
	}

	for range p.Degree() {
		out.Zeros = append(out.Zeros, -1)
	}

	out.Gain = p.Gain * real(num/den)

	return out, nil
}

// BilinearBiquad maps the analog section
//
//	H(s) = (num[0] s^2 + num[1] s + num[2]) / (den[0] s^2 + den[1] s + den[2])
//
// through s = K(1-z^-1)/(1+z^-1), K = 2fs, and normalises the result to
// a0 = 1:
//
//	B0 = b2K^2 + b1K + b0, B1 = 2(b0 - b2K^2), B2 = b2K^2 - b1K + b0
//	A0 = a2K^2 + a1K + a0, A1 = 2(a0 - a2K^2), A2 = a2K^2 - a1K + a0
func BilinearBiquad(num, den [3]float64, fs float64) (biquad.Coefficients, error) {
	k := 2 * fs
	k2 := k * k

	b2, b1, b0 := num[0], num[1], num[2]
	a2, a1, a0 := den[0], den[1], den[2]

	A0 := a2*k2 + a1*k + a0
	if A0 == 0 || math.IsNaN(A0) || math.IsInf(A0, 0) {
		return biquad.Coefficients{}, fmt.Errorf("%w: a0 = %g", ErrDegenerateSection, A0)
	}

	return biquad.Coefficients{
		B0: (b2*k2 + b1*k + b0) / A0,
		B1: 2 * (b0 - b2*k2) / A0,
		B2: (b2*k2 - b1*k + b0) / A0,
		A1: 2 * (a0 - a2*k2) / A0,
		A2: (a2*k2 - a1*k + a0) / A0,
	}, nil
}

// BilinearFirstOrder maps the analog section
// (num[0] s + num[1]) / (den[0] s + den[1]) to a first-order digital section
// stored with B2 = A2 = 0.
func BilinearFirstOrder(num, den [2]float64, fs float64) (biquad.Coefficients, error) {
	k := 2 * fs

	b1, b0 := num[0], num[1]
	a1, a0 := den[0], den[1]

	A0 := a1*k + a0
	if A0 == 0 || math.IsNaN(A0) || math.IsInf(A0, 0) {
		return biquad.Coefficients{}, fmt.Errorf("%w: a0 = %g", ErrDegenerateSection, A0)
	}

	return biquad.Coefficients{
		B0: (b1*k + b0) / A0,
		B1: (b0 - b1*k) / A0,
		A1: (a0 - a1*k) / A0,
	}, nil
}
