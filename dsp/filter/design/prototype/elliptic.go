package prototype

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterdesign/internal/ellipticmath"
)

// errEllipticNumeric reports a failure inside the Jacobi function evaluation.
// It only surfaces for parameter combinations at the edge of double
// precision, such as attenuation many hundreds of dB above the ripple.
var errEllipticNumeric = errors.New("prototype: elliptic function evaluation failed")

const ellipticEpsilon = 2.220446049250313e-16

// Elliptic returns the order-n elliptic (Cauer) prototype with rippleDB of
// passband ripple up to w = 1 and at least attenuationDB in the stopband
// w >= EllipticStopbandEdge(n, rippleDB, attenuationDB).
//
// The discrimination k1 = eps/sqrt(A^2-1) fixes the selectivity k through
// the degree equation. Zeros are j/(k sn(jK/n, k)) and poles follow from
// sn, cn and dn at the shifted argument v0, so that floor(n/2) conjugate
// pole and zero pairs result, plus one real pole for odd n.
func Elliptic(n int, rippleDB, attenuationDB float64) (Prototype, error) {
	if err := ValidateOrder(n); err != nil {
		return Prototype{}, err
	}

	if err := ValidateRipple(rippleDB); err != nil {
		return Prototype{}, err
	}

	if err := ValidateAttenuation(attenuationDB); err != nil {
		return Prototype{}, err
	}

	if attenuationDB <= rippleDB {
		return Prototype{}, fmt.Errorf("%w: %g dB must exceed the %g dB ripple",
			ErrInvalidAttenuation, attenuationDB, rippleDB)
	}

	epsSq := dbToMinusOne(rippleDB)
	k1 := math.Sqrt(epsSq / dbToMinusOne(attenuationDB))

	if n == 1 {
		p := -1 / math.Sqrt(epsSq)
		return Prototype{Poles: []complex128{complex(p, 0)}, Gain: -p}, nil
	}

	k := ellipticmath.Degree(n, k1)
	if !(k > 0 && k < 1) {
		return Prototype{}, fmt.Errorf("%w: selectivity %g", errEllipticNumeric, k)
	}

	capK := ellipticmath.K(k)
	capK1 := ellipticmath.K(k1)

	r, ok := ellipticmath.ArcSC1(1/math.Sqrt(epsSq), k1)
	if !ok || !(r > 0) {
		return Prototype{}, fmt.Errorf("%w: inverse sc", errEllipticNumeric)
	}

	v0 := capK * r / (float64(n) * capK1)

	sv, cv, dv, ok := ellipticmath.Jacobi(v0, math.Sqrt((1-k)*(1+k)))
	if !ok {
		return Prototype{}, fmt.Errorf("%w: jacobi at v0", errEllipticNumeric)
	}

	upperPoles := make([]complex128, 0, (n+1)/2)
	upperZeros := make([]complex128, 0, n/2)

	// j runs over 1, 3, 5, ... for even n and 0, 2, 4, ... for odd n; the
	// j = 0 term is the real pole.
	for j := 1 - n%2; j < n; j += 2 {
		sn, cn, dn, ok := ellipticmath.Jacobi(float64(j)*capK/float64(n), k)
		if !ok {
			return Prototype{}, fmt.Errorf("%w: jacobi at %d/%d", errEllipticNumeric, j, n)
		}

		if math.Abs(sn) > ellipticEpsilon {
			upperZeros = append(upperZeros, complex(0, 1/(k*sn)))
		}

		den := 1 - (dn*sv)*(dn*sv)
		if math.Abs(den) <= ellipticEpsilon {
			return Prototype{}, fmt.Errorf("%w: pole denominator", errEllipticNumeric)
		}

		upperPoles = append(upperPoles, complex(-cn*dn*sv*cv/den, sn*dv/den))
	}

	p := Prototype{Zeros: withConjugates(upperZeros), Poles: withConjugates(upperPoles)}

	p.Gain = gainFromPoles(p.Zeros, p.Poles)
	if n%2 == 0 {
		p.Gain /= math.Sqrt(1 + epsSq)
	}

	if p.Gain == 0 || math.IsNaN(p.Gain) || math.IsInf(p.Gain, 0) {
		return Prototype{}, fmt.Errorf("%w: gain %g", errEllipticNumeric, p.Gain)
	}

	return p, nil
}

// EllipticStopbandEdge returns the normalised frequency 1/k at which an
// Elliptic(n, rippleDB, attenuationDB) prototype reaches its stopband
// attenuation. It returns NaN for parameters Elliptic would reject.
func EllipticStopbandEdge(n int, rippleDB, attenuationDB float64) float64 {
	if n < 1 || !(rippleDB > 0) || !(attenuationDB > rippleDB) {
		return math.NaN()
	}

	k1 := math.Sqrt(dbToMinusOne(rippleDB) / dbToMinusOne(attenuationDB))

	return 1 / ellipticmath.Degree(n, k1)
}
