package polyroot

import (
	"math"
	"math/cmplx"
)

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// Expj returns e^{j*theta}.
func Expj(theta float64) complex128 {
	s, c := math.Sincos(theta)
	return complex(c, s)
}

// Scale multiplies c by the real factor s.
func Scale(c complex128, s float64) complex128 {
	return complex(real(c)*s, imag(c)*s)
}

// NearlyEqual reports whether a and b differ by at most tol, measured
// relative to max(1, |a|).
func NearlyEqual(a, b complex128, tol float64) bool {
	return cmplx.Abs(a-b) <= tol*math.Max(1, cmplx.Abs(a))
}

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}

	if math.Abs(imag(a)+imag(b)) > tol*math.Max(1, math.Abs(imag(a))) {
		return false
	}

	return true
}

// SnapReal zeroes the imaginary part of c when it is below tol relative to
// max(1, |c|). Roots computed from trigonometric placements carry ulp-level
// imaginary residue that would otherwise defeat real-root detection.
func SnapReal(c complex128, tol float64) complex128 {
	if math.Abs(imag(c)) <= tol*math.Max(1, cmplx.Abs(c)) {
		return complex(real(c), 0)
	}

	return c
}
