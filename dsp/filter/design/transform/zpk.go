package transform

import (
	"errors"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/prototype"
)

// ErrInvalidZPK is returned when a transform would divide by a root at the
// origin or when a filter has more zeros than poles.
var ErrInvalidZPK = errors.New("transform: invalid zeros/poles/gain")

// ZPK is a filter in zeros/poles/gain form. In the s-domain it describes
// H(s) = Gain * prod(s - Zeros[i]) / prod(s - Poles[i]); in the z-domain the
// same expression in z.
//
// Zeros at infinity are not stored: an analog ZPK with fewer zeros than
// poles has the remaining zeros at infinity.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// FromPrototype copies a normalised analog prototype into ZPK form.
func FromPrototype(p prototype.Prototype) ZPK {
	return ZPK{
		Zeros: append([]complex128(nil), p.Zeros...),
		Poles: append([]complex128(nil), p.Poles...),
		Gain:  p.Gain,
	}
}

// Degree returns the number of poles minus the number of zeros, the count
// of zeros at infinity.
func (z ZPK) Degree() int { return len(z.Poles) - len(z.Zeros) }

// Eval evaluates the rational function at x.
func (z ZPK) Eval(x complex128) complex128 {
	h := complex(z.Gain, 0)
	for _, r := range z.Zeros {
		h *= x - r
	}

	for _, p := range z.Poles {
		h /= x - p
	}

	return h
}

func (z ZPK) validate() error {
	if z.Degree() < 0 {
		return ErrInvalidZPK
	}

	return nil
}

func prodNeg(roots []complex128) complex128 {
	out := complex(1, 0)
	for _, r := range roots {
		out *= -r
	}

	return out
}
