// Package ellipticmath evaluates the complete elliptic integral of the first
// kind and the Jacobi elliptic functions needed to place elliptic (Cauer)
// filter poles and zeros.
//
// All functions take the modulus k, not the parameter m = k^2.
package ellipticmath

import (
	"math"
	"math/cmplx"
)

// Iteration limits. Landen descents and the AGM converge quadratically, so
// double precision is reached after a handful of steps for any k < 1; the
// caps only bound the work for pathological inputs.
const (
	// Tolerance ends a Landen descent once the modulus falls below it.
	Tolerance = 2.2e-16
	// MaxLandenSteps caps Landen descents and AGM iterations.
	MaxLandenSteps = 100
	// SeriesTerms is the number of nome-series terms in Degree.
	SeriesTerms = 7
	// ArcSNIterations is the number of Landen steps used by ArcSN.
	ArcSNIterations = 10
)

// Landen returns the sequence of descending Landen moduli for k, stopping
// once a modulus falls below tol or after MaxLandenSteps steps.
func Landen(k, tol float64) []float64 {
	if k == 0 || k == 1 {
		return []float64{k}
	}

	v := make([]float64, 0, 8)
	for range MaxLandenSteps {
		t := k / (1 + math.Sqrt((1-k)*(1+k)))
		k = t * t
		v = append(v, k)

		if k <= tol {
			break
		}
	}

	return v
}

// AGM returns the arithmetic-geometric mean of a and b.
func AGM(a, b float64) float64 {
	for range MaxLandenSteps {
		if math.Abs(a-b) <= Tolerance*math.Abs(a) {
			break
		}

		a, b = 0.5*(a+b), math.Sqrt(a*b)
	}

	return a
}

// K returns the complete elliptic integral of the first kind,
// K(k) = pi / (2 AGM(1, sqrt(1-k^2))). K(1) is +Inf; k outside [0, 1] is NaN.
func K(k float64) float64 {
	switch {
	case k < 0 || k > 1 || math.IsNaN(k):
		return math.NaN()
	case k == 1:
		return math.Inf(1)
	}

	return math.Pi / (2 * AGM(1, math.Sqrt((1-k)*(1+k))))
}

// KPair returns K(k) and the complementary integral K'(k) = K(sqrt(1-k^2)).
func KPair(k float64) (float64, float64) {
	return K(k), K(math.Sqrt((1 - k) * (1 + k)))
}

// Jacobi returns sn(u, k), cn(u, k) and dn(u, k) for real u and 0 <= k < 1.
// The functions are evaluated at the normalised argument u/K(k) by ascending
// through the Landen moduli, starting from sin and cos. ok is false when k is
// out of range or the result is not finite.
func Jacobi(u, k float64) (sn, cn, dn float64, ok bool) {
	if !(k >= 0 && k < 1) {
		return 0, 0, 0, false
	}

	kk := K(k)
	x := u / kk * math.Pi / 2
	v := Landen(k, Tolerance)

	sn = math.Sin(x)
	cd := math.Cos(x)

	for i := len(v) - 1; i >= 0; i-- {
		sn = (1 + v[i]) * sn / (1 + v[i]*sn*sn)
		cd = (1 + v[i]) * cd / (1 + v[i]*cd*cd)
	}

	dn2 := 1 - k*k*sn*sn
	if dn2 < -1e-12 {
		return 0, 0, 0, false
	}

	dn = math.Sqrt(math.Max(dn2, 0))
	cn = cd * dn

	if math.IsNaN(sn) || math.IsNaN(cn) || math.IsInf(sn, 0) {
		return 0, 0, 0, false
	}

	return sn, cn, dn, true
}

// ArcSN returns the inverse Jacobi sn for a complex argument, i.e. u with
// sn(u, k) = w, using ArcSNIterations descending Landen steps.
func ArcSN(w complex128, k float64) complex128 {
	if k < 0 || k > 1 {
		return cmplx.NaN()
	}

	if k == 1 {
		return cmplx.Atanh(w)
	}

	ks := make([]complex128, 1, ArcSNIterations)
	ks[0] = complex(k, 0)

	for len(ks) < ArcSNIterations {
		kn := ks[len(ks)-1]
		if kn == 0 {
			break
		}

		kp := complement(kn)
		ks = append(ks, (1-kp)/(1+kp))
	}

	scale := math.Pi / 2
	for _, kn := range ks[1:] {
		scale *= real(1 + kn)
	}

	for i := range len(ks) - 1 {
		den := (1 + ks[i+1]) * (1 + complement(ks[i]*w))
		if den == 0 {
			return cmplx.NaN()
		}

		w = 2 * w / den
	}

	return complex(scale*2/math.Pi, 0) * cmplx.Asin(w)
}

// ArcSC1 returns the real u with sc(u, k') = w, where k' is the complementary
// modulus of k. It is evaluated as Im(ArcSN(jw, k)); ok is false when the
// result carries a significant real part.
func ArcSC1(w, k float64) (float64, bool) {
	z := ArcSN(complex(0, w), k)
	if cmplx.IsNaN(z) || math.Abs(real(z)) > 1e-7*math.Max(1, math.Abs(imag(z))) {
		return 0, false
	}

	return imag(z), true
}

// Degree solves the degree equation n K'(k)/K(k) = K'(k1)/K(k1) for the
// selectivity modulus k, given the discrimination modulus k1, through the
// nome series q = q1^(1/n) truncated at SeriesTerms terms. The result is NaN
// when n < 1 or k1 is outside (0, 1).
func Degree(n int, k1 float64) float64 {
	if n < 1 || !(k1 > 0 && k1 < 1) {
		return math.NaN()
	}

	kk, kp := KPair(k1)
	q := math.Exp(-math.Pi * kp / kk / float64(n))

	num, den := 0.0, 1.0
	for m := range SeriesTerms + 1 {
		num += math.Pow(q, float64(m*(m+1)))
		den += 2 * math.Pow(q, float64((m+1)*(m+1)))
	}

	r := num / den

	return math.Min(1, 4*math.Sqrt(q)*r*r)
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1 - k) * (1 + k))
}
