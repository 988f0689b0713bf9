package prototype

import "math"

// Chebyshev1 returns the order-n Chebyshev Type I prototype with rippleDB of
// equiripple in the passband |w| <= 1.
//
// With eps = sqrt(10^(Rp/10) - 1) and a = asinh(1/eps)/n the poles lie on an
// ellipse at (-sinh(a) sin(t_k), cosh(a) cos(t_k)), t_k = pi*(2k-1)/(2n).
// The gain puts H(0) at 1 for odd n and at 1/sqrt(1+eps^2), the bottom of
// the ripple, for even n.
func Chebyshev1(n int, rippleDB float64) (Prototype, error) {
	if err := ValidateOrder(n); err != nil {
		return Prototype{}, err
	}

	if err := ValidateRipple(rippleDB); err != nil {
		return Prototype{}, err
	}

	epsSq := dbToMinusOne(rippleDB)
	a := math.Asinh(1/math.Sqrt(epsSq)) / float64(n)
	poles := withConjugates(ellipsePoles(n, a))

	gain := gainFromPoles(nil, poles)
	if n%2 == 0 {
		gain /= math.Sqrt(1 + epsSq)
	}

	return Prototype{Poles: poles, Gain: gain}, nil
}

// Chebyshev2 returns the order-n Chebyshev Type II (inverse Chebyshev)
// prototype with attenuationDB of equiripple in the stopband |w| >= 1.
// Unlike the other families, w = 1 is the stopband edge: |H(j1)| is exactly
// -attenuationDB.
//
// With eps2 = 1/sqrt(10^(Rs/10) - 1) and b = asinh(1/eps2)/n the poles are
// the reciprocals of the Type I ellipse points built with b. The n/2 zero
// pairs lie on the imaginary axis at +-j sec(t_k). H(0) = 1.
func Chebyshev2(n int, attenuationDB float64) (Prototype, error) {
	if err := ValidateOrder(n); err != nil {
		return Prototype{}, err
	}

	if err := ValidateAttenuation(attenuationDB); err != nil {
		return Prototype{}, err
	}

	eps2 := 1 / math.Sqrt(dbToMinusOne(attenuationDB))
	b := math.Asinh(1/eps2) / float64(n)

	upper := ellipsePoles(n, b)
	for i, q := range upper {
		upper[i] = 1 / q
	}

	zeros := make([]complex128, 0, n/2)
	for k := 1; 2*k <= n; k++ {
		zeros = append(zeros, complex(0, 1/math.Cos(chebyshevAngle(n, k))))
	}

	p := Prototype{Zeros: withConjugates(zeros), Poles: withConjugates(upper)}
	p.Gain = gainFromPoles(p.Zeros, p.Poles)

	return p, nil
}

// ellipsePoles returns the upper-half-plane Chebyshev poles for the hyperbolic
// parameter a, plus the real pole -sinh(a) when n is odd.
func ellipsePoles(n int, a float64) []complex128 {
	sh, ch := math.Sinh(a), math.Cosh(a)

	upper := make([]complex128, 0, (n+1)/2)
	for k := 1; 2*k <= n; k++ {
		t := chebyshevAngle(n, k)
		upper = append(upper, complex(-sh*math.Sin(t), ch*math.Cos(t)))
	}

	if n%2 == 1 {
		upper = append(upper, complex(-sh, 0))
	}

	return upper
}

func chebyshevAngle(n, k int) float64 {
	return math.Pi * float64(2*k-1) / float64(2*n)
}
