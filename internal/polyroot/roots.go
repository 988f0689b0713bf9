package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

var (
	// ErrDegeneratePolynomial is returned when a polynomial has degenerate
	// coefficients (leading coefficient zero, unmatched conjugates, etc.).
	ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

	// ErrNoConvergence is returned when an iterative root finder ends
	// without meeting either the step or the residual criterion.
	ErrNoConvergence = errors.New("polyroot: root finder did not converge")
)

// Iteration limits of the simultaneous root finders. 200 Aberth steps are far
// beyond what double precision needs for degree <= 24 (cubic convergence
// near the roots); the step tolerance sits a few ulps above machine epsilon
// for roots of magnitude ~1.
const (
	MaxIterations    = 200
	Tolerance        = 1e-12
	CoincidenceFloor = 1e-14
	residualLimit    = 1e-6
)

// Aberth finds all roots of a polynomial with the Aberth-Ehrlich
// simultaneous iteration. Coefficients are in descending power order.
//
// Initial guesses lie on a circle whose radius is estimated from the
// coefficient magnitudes: the geometric mean |a_n/a_0|^(1/n) of the root
// moduli, bounded above by the Cauchy radius 1 + max|a_i/a_0|.
//
//nolint:cyclop
func Aberth(coeff []complex128) ([]complex128, error) {
	norm, err := monic(coeff)
	if err != nil {
		return nil, err
	}

	n := len(norm) - 1
	deriv := Derivative(norm)
	roots := initialGuesses(norm)

	for range MaxIterations {
		maxStep := 0.0

		for i := range n {
			zi := roots[i]

			p := PolyEval(norm, zi)
			if p == 0 {
				continue
			}

			dp := PolyEval(deriv, zi)
			if cmplx.Abs(dp) < CoincidenceFloor {
				dp = complex(CoincidenceFloor, 0)
			}

			ratio := p / dp

			var repulsion complex128

			for j := range n {
				if i == j {
					continue
				}

				d := zi - roots[j]
				if cmplx.Abs(d) < CoincidenceFloor {
					d = complex(CoincidenceFloor, 0)
				}

				repulsion += 1 / d
			}

			den := 1 - ratio*repulsion
			if cmplx.Abs(den) < CoincidenceFloor {
				den = complex(CoincidenceFloor, 0)
			}

			step := ratio / den
			roots[i] = zi - step

			if s := cmplx.Abs(step) / math.Max(1, cmplx.Abs(roots[i])); s > maxStep {
				maxStep = s
			}
		}

		if maxStep < Tolerance {
			return roots, nil
		}
	}

	if maxResidual(norm, roots) < residualLimit {
		return roots, nil
	}

	return nil, ErrNoConvergence
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration method. Coefficients are in descending
// power order: coeff[0]*z^n + coeff[1]*z^(n-1) + ... + coeff[n].
func DurandKerner(coeff []complex128) ([]complex128, error) {
	norm, err := monic(coeff)
	if err != nil {
		return nil, err
	}

	n := len(norm) - 1
	roots := initialGuesses(norm)

	for range 2 * MaxIterations {
		maxDelta := 0.0

		for i := range n {
			den := complex(1, 0)

			for j := range n {
				if i == j {
					continue
				}

				den *= roots[i] - roots[j]
			}

			if cmplx.Abs(den) == 0 {
				roots[i] += complex(1e-10, 1e-10)
				continue
			}

			delta := PolyEval(norm, roots[i]) / den

			roots[i] -= delta
			if d := cmplx.Abs(delta); d > maxDelta {
				maxDelta = d
			}
		}

		if maxDelta < Tolerance {
			return roots, nil
		}
	}

	if maxResidual(norm, roots) < residualLimit {
		return roots, nil
	}

	return nil, ErrNoConvergence
}

// RealRoots finds the roots of a real polynomial (descending order) with
// Aberth, falling back to Durand-Kerner and finally to the companion-matrix
// eigenvalues.
func RealRoots(coeff []float64) ([]complex128, error) {
	c := ToComplex(coeff)

	roots, err := Aberth(c)
	if err == nil {
		return roots, nil
	}

	roots, err = DurandKerner(c)
	if err == nil {
		return roots, nil
	}

	return CompanionRoots(coeff)
}

func monic(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 {
		return nil, ErrDegeneratePolynomial
	}

	lead := coeff[0]
	if lead == 0 || cmplx.IsNaN(lead) || cmplx.IsInf(lead) {
		return nil, ErrDegeneratePolynomial
	}

	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / lead
		if cmplx.IsNaN(norm[i]) || cmplx.IsInf(norm[i]) {
			return nil, ErrDegeneratePolynomial
		}
	}

	return norm, nil
}

// initialGuesses spreads n starting points on a circle of estimated radius.
// The angular offset breaks the conjugate symmetry of real polynomials.
func initialGuesses(norm []complex128) []complex128 {
	n := len(norm) - 1

	cauchy := 0.0
	for i := 1; i <= n; i++ {
		cauchy = math.Max(cauchy, cmplx.Abs(norm[i]))
	}

	cauchy++

	radius := cauchy
	if c := cmplx.Abs(norm[n]); c > 0 {
		radius = math.Min(cauchy, math.Pow(c, 1/float64(n)))
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.4
		r := radius * (1 + 0.05*float64(i)/float64(n))
		roots[i] = Scale(Expj(angle), r)
	}

	return roots
}

func maxResidual(norm, roots []complex128) float64 {
	out := 0.0
	for _, r := range roots {
		res := cmplx.Abs(PolyEval(norm, r)) / math.Max(1, math.Pow(cmplx.Abs(r), float64(len(norm)-1)))
		if res > out || math.IsNaN(res) {
			out = res
		}
	}

	return out
}
