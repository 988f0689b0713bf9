package transform

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// ParallelPairTolerance bounds how far a numerically found zero of a
// parallel sum may sit from its conjugate partner before the pair is made
// exact.
const ParallelPairTolerance = 1e-6

// Parallel returns a + b over the common denominator:
//
//	num = ka*za(s)*pb(s) + kb*zb(s)*pa(s)
//	den = pa(s)*pb(s)
//
// The poles are those of both inputs. The zeros are the roots of num, which
// are found numerically and snapped to exact conjugate pairs. The sum is
// best conditioned when both inputs have their roots near the unit circle,
// so callers scale the frequency axis first.
func Parallel(a, b ZPK) (ZPK, error) {
	if err := a.validate(); err != nil {
		return ZPK{}, err
	}

	if err := b.validate(); err != nil {
		return ZPK{}, err
	}

	left, err := branch(a.Gain, a.Zeros, b.Poles)
	if err != nil {
		return ZPK{}, err
	}

	right, err := branch(b.Gain, b.Zeros, a.Poles)
	if err != nil {
		return ZPK{}, err
	}

	num := trimLeading(polyroot.PolyAdd(left, right))
	if len(num) == 0 {
		return ZPK{}, fmt.Errorf("%w: parallel branches cancel", ErrInvalidZPK)
	}

	var zeros []complex128
	if len(num) > 1 {
		roots, err := polyroot.RealRoots(num)
		if err != nil {
			return ZPK{}, fmt.Errorf("parallel numerator: %w", err)
		}

		zeros, err = polyroot.SnapConjugates(roots, ParallelPairTolerance)
		if err != nil {
			return ZPK{}, fmt.Errorf("parallel numerator: %w", err)
		}
	}

	poles := make([]complex128, 0, len(a.Poles)+len(b.Poles))
	poles = append(poles, a.Poles...)
	poles = append(poles, b.Poles...)

	return ZPK{Zeros: zeros, Poles: poles, Gain: num[0]}, nil
}

// branch expands k * prod(s - zeros) * prod(s - poles) in descending powers.
func branch(k float64, zeros, poles []complex128) ([]float64, error) {
	z, err := polyroot.PolyFromRoots(zeros)
	if err != nil {
		return nil, err
	}

	p, err := polyroot.PolyFromRoots(poles)
	if err != nil {
		return nil, err
	}

	out := polyroot.PolyMul(z, p)
	for i := range out {
		out[i] *= k
	}

	return out, nil
}

// trimLeading drops leading coefficients that cancelled to rounding noise.
func trimLeading(p []float64) []float64 {
	scale := 0.0
	for _, v := range p {
		scale = math.Max(scale, math.Abs(v))
	}

	for len(p) > 0 && math.Abs(p[0]) <= 1e-12*scale {
		p = p[1:]
	}

	return p
}
