package polyroot

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// PolyEval evaluates a polynomial at x using Horner's method. Coefficients
// are in descending power order: coeff[0]*x^n + ... + coeff[n].
func PolyEval(coeff []complex128, x complex128) complex128 {
	if len(coeff) == 0 {
		return 0
	}

	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}

	return v
}

// PolyEvalReal is PolyEval for real coefficients.
func PolyEvalReal(coeff []float64, x complex128) complex128 {
	if len(coeff) == 0 {
		return 0
	}

	v := complex(coeff[0], 0)
	for i := 1; i < len(coeff); i++ {
		v = v*x + complex(coeff[i], 0)
	}

	return v
}

// PolyMul returns the product of two polynomials (full linear convolution).
// The power order of the result matches that of the inputs.
func PolyMul(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	out := make([]float64, len(a)+len(b)-1)
	tmp := make([]float64, len(b))

	for i, ai := range a {
		if ai == 0 {
			continue
		}

		vecmath.ScaleBlock(tmp, b, ai)
		vecmath.AddBlockInPlace(out[i:i+len(b)], tmp)
	}

	return out
}

// PolyAdd returns a + b for polynomials in descending power order, so the
// constant terms line up. The shorter operand is implicitly padded with
// leading zeros.
func PolyAdd(a, b []float64) []float64 {
	if len(a) < len(b) {
		a, b = b, a
	}

	out := make([]float64, len(a))
	copy(out, a)

	if len(b) > 0 {
		vecmath.AddBlockInPlace(out[len(a)-len(b):], b)
	}

	return out
}

// PolyFromRoots expands the monic real polynomial with the given roots.
// Complex roots must appear together with their conjugates; an imaginary
// residue larger than 1e-9 of the coefficient scale is reported as
// ErrDegeneratePolynomial.
func PolyFromRoots(roots []complex128) ([]float64, error) {
	acc := []complex128{1}
	for _, r := range roots {
		next := make([]complex128, len(acc)+1)
		for i, c := range acc {
			next[i] += c
			next[i+1] -= c * r
		}

		acc = next
	}

	scale := 0.0
	for _, c := range acc {
		scale = math.Max(scale, cmplx.Abs(c))
	}

	out := make([]float64, len(acc))
	for i, c := range acc {
		if math.Abs(imag(c)) > 1e-9*math.Max(1, scale) {
			return nil, ErrDegeneratePolynomial
		}

		out[i] = real(c)
	}

	return out, nil
}

// Derivative returns the coefficients of p'(x) for descending-order p.
func Derivative(coeff []complex128) []complex128 {
	n := len(coeff) - 1
	if n <= 0 {
		return []complex128{0}
	}

	out := make([]complex128, n)
	for i := range n {
		out[i] = coeff[i] * complex(float64(n-i), 0)
	}

	return out
}

// ToComplex converts real coefficients to complex128.
func ToComplex(coeff []float64) []complex128 {
	out := make([]complex128, len(coeff))
	for i, c := range coeff {
		out[i] = complex(c, 0)
	}

	return out
}
