package transform

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Prewarp returns the analog angular frequency 2*fs*tan(pi*f/fs) that the
// bilinear transform maps onto the digital frequency f (Hz).
func Prewarp(f, fs float64) float64 {
	return 2 * fs * math.Tan(math.Pi*f/fs)
}

// Unwarp is the inverse of Prewarp: the digital frequency in Hz that the
// bilinear transform assigns to the analog angular frequency w.
func Unwarp(w, fs float64) float64 {
	return fs / math.Pi * math.Atan(w/(2*fs))
}

// LowpassToLowpass moves the cutoff of a normalised lowpass to wc rad/s by
// scaling every root with wc. The gain is scaled by wc^(np-nz) so that the
// response at DC is unchanged.
func LowpassToLowpass(p ZPK, wc float64) (ZPK, error) {
	if err := p.validate(); err != nil {
		return ZPK{}, err
	}

	out := ZPK{
		Zeros: scaleRoots(p.Zeros, wc),
		Poles: scaleRoots(p.Poles, wc),
		Gain:  p.Gain * math.Pow(wc, float64(p.Degree())),
	}

	return out, nil
}

// LowpassToHighpass applies s -> wc/s. A finite zero r maps to wc/r; a zero
// exactly at the origin maps to infinity and is dropped. The np-nz zeros at
// infinity of the lowpass become zeros at the origin. The gain keeps the
// high-frequency response equal to the lowpass response at DC.
func LowpassToHighpass(p ZPK, wc float64) (ZPK, error) {
	if err := p.validate(); err != nil {
		return ZPK{}, err
	}

	out := ZPK{
		Zeros: make([]complex128, 0, len(p.Poles)),
		Poles: make([]complex128, 0, len(p.Poles)),
	}

	num := complex(1, 0)

	for _, z := range p.Zeros {
		if z == 0 {
			num *= complex(wc, 0)
			continue
		}

		num *= -z
		out.Zeros = append(out.Zeros, complex(wc, 0)/z)
	}

	for _, pole := range p.Poles {
		if pole == 0 {
			return ZPK{}, fmt.Errorf("%w: pole at the origin", ErrInvalidZPK)
		}

		out.Poles = append(out.Poles, complex(wc, 0)/pole)
	}

	for range p.Degree() {
		out.Zeros = append(out.Zeros, 0)
	}

	out.Gain = p.Gain * real(num/prodNeg(p.Poles))

	return out, nil
}

// LowpassToBandpass applies s -> (s^2 + w0^2)/(bw*s) for the centre w0 and
// bandwidth bw (rad/s). Every root r becomes the two roots of
// s^2 - r*bw*s + w0^2 = 0, so a root at the origin becomes +-j*w0. The np-nz
// zeros at infinity contribute as many zeros at the origin.
func LowpassToBandpass(p ZPK, w0, bw float64) (ZPK, error) {
	if err := p.validate(); err != nil {
		return ZPK{}, err
	}

	out := ZPK{
		Zeros: make([]complex128, 0, 2*len(p.Poles)),
		Poles: make([]complex128, 0, 2*len(p.Poles)),
		Gain:  p.Gain * math.Pow(bw, float64(p.Degree())),
	}

	for _, z := range p.Zeros {
		out.Zeros = append(out.Zeros, bandpassPair(z, w0, bw)...)
	}

	for _, pole := range p.Poles {
		out.Poles = append(out.Poles, bandpassPair(pole, w0, bw)...)
	}

	for range p.Degree() {
		out.Zeros = append(out.Zeros, 0)
	}

	return out, nil
}

// LowpassToBandstop applies s -> bw*s/(s^2 + w0^2). Every non-zero root r
// becomes the two roots of s^2 - (bw/r)*s + w0^2 = 0; a zero at the origin
// stays at the origin with its partner at infinity. The np-nz zeros at
// infinity contribute np-nz zero pairs at +-j*w0, the notch.
func LowpassToBandstop(p ZPK, w0, bw float64) (ZPK, error) {
	if err := p.validate(); err != nil {
		return ZPK{}, err
	}

	out := ZPK{
		Zeros: make([]complex128, 0, 2*len(p.Poles)),
		Poles: make([]complex128, 0, 2*len(p.Poles)),
	}

	num := complex(1, 0)

	for _, z := range p.Zeros {
		if z == 0 {
			num *= complex(bw, 0)
			out.Zeros = append(out.Zeros, 0)

			continue
		}

		num *= -z
		out.Zeros = append(out.Zeros, bandstopPair(z, w0, bw)...)
	}

	for _, pole := range p.Poles {
		if pole == 0 {
			return ZPK{}, fmt.Errorf("%w: pole at the origin", ErrInvalidZPK)
		}

		out.Poles = append(out.Poles, bandstopPair(pole, w0, bw)...)
	}

	for range p.Degree() {
		out.Zeros = append(out.Zeros, complex(0, w0), complex(0, -w0))
	}

	out.Gain = p.Gain * real(num/prodNeg(p.Poles))

	return out, nil
}

func scaleRoots(roots []complex128, s float64) []complex128 {
	out := make([]complex128, len(roots))
	for i, r := range roots {
		out[i] = r * complex(s, 0)
	}

	return out
}

// bandpassPair solves s^2 - r*bw*s + w0^2 = 0.
func bandpassPair(r complex128, w0, bw float64) []complex128 {
	b := r * complex(bw, 0)
	d := cmplx.Sqrt(b*b - complex(4*w0*w0, 0))

	return []complex128{(b + d) / 2, (b - d) / 2}
}

// bandstopPair solves s^2 - (bw/r)*s + w0^2 = 0.
func bandstopPair(r complex128, w0, bw float64) []complex128 {
	b := complex(bw, 0) / r
	d := cmplx.Sqrt(b*b - complex(4*w0*w0, 0))

	return []complex128{(b + d) / 2, (b - d) / 2}
}
