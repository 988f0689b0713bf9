package polyroot

import (
	"cmp"
	"math"
	"math/cmplx"
	"slices"
)

// QuadFromRoots expands a conjugate root pair into monic second-order
// polynomial coefficients. Given roots (a+jb) and (a-jb), it returns the
// coefficients of z^2 - 2a*z + (a^2 + b^2) as (1, -2a, a^2+b^2).
func QuadFromRoots(pair [2]complex128) (float64, float64, float64, error) {
	root1 := pair[0]
	root2 := pair[1]

	if !IsConjugate(root1, root2, ConjugateTol) {
		return 0, 0, 0, ErrDegeneratePolynomial
	}

	a := real(root1)
	b := math.Abs(imag(root1))

	return 1.0, -2 * a, a*a + b*b, nil
}

// PairConjugates groups a slice of complex roots into conjugate pairs. For
// each unused root, it finds the closest match to the expected conjugate and
// validates the pairing within ConjugateTol.
func PairConjugates(roots []complex128) ([][2]complex128, error) {
	used := make([]bool, len(roots))
	pairs := make([][2]complex128, 0, len(roots)/2)

	for i := range roots {
		if used[i] {
			continue
		}

		root := roots[i]
		best, _ := nearest(roots, used, i, cmplx.Conj(root))

		if best == -1 || !IsConjugate(root, roots[best], ConjugateTol) {
			return nil, ErrDegeneratePolynomial
		}

		used[i] = true
		used[best] = true
		pairs = append(pairs, [2]complex128{root, roots[best]})
	}

	return pairs, nil
}

// Group splits roots into conjugate pairs, pairs of real roots and at most
// one single real root. Roots are matched globally, closest match first: a
// root matched with itself is real, and two roots form a conjugate pair when
// one lies near the mirror image of the other. Distances are relative to
// max(1,|r|), and a match farther apart than tol yields
// ErrDegeneratePolynomial. Pairs are ordered by decreasing |imag|, then real
// pairs, then the single real root.
func Group(roots []complex128, tol float64) ([][]complex128, error) {
	if len(roots) == 0 {
		return nil, nil
	}

	matches, worst := matchConjugates(roots)
	if worst > tol {
		return nil, ErrDegeneratePolynomial
	}

	complexPairs := make([][]complex128, 0, len(roots)/2)
	reals := make([]float64, 0, len(roots))

	for _, m := range matches {
		if m[0] == m[1] {
			reals = append(reals, real(roots[m[0]]))
			continue
		}

		complexPairs = append(complexPairs, averagePair(roots[m[0]], roots[m[1]]))
	}

	slices.SortStableFunc(complexPairs, func(a, b []complex128) int {
		return cmp.Compare(math.Abs(imag(b[0])), math.Abs(imag(a[0])))
	})
	slices.Sort(reals)

	groups := complexPairs
	for i := 0; i+1 < len(reals); i += 2 {
		groups = append(groups, []complex128{complex(reals[i], 0), complex(reals[i+1], 0)})
	}

	if len(reals)%2 == 1 {
		groups = append(groups, []complex128{complex(reals[len(reals)-1], 0)})
	}

	return groups, nil
}

// SnapConjugates returns roots with every conjugate pair made exact and
// every real root stripped of its imaginary residue. Matching follows
// Group; the order of the input is kept.
func SnapConjugates(roots []complex128, tol float64) ([]complex128, error) {
	matches, worst := matchConjugates(roots)
	if worst > tol {
		return nil, ErrDegeneratePolynomial
	}

	out := make([]complex128, len(roots))

	for _, m := range matches {
		if m[0] == m[1] {
			out[m[0]] = complex(real(roots[m[0]]), 0)
			continue
		}

		pair := averagePair(roots[m[0]], roots[m[1]])
		if imag(roots[m[0]]) < 0 {
			pair[0], pair[1] = pair[1], pair[0]
		}

		out[m[0]], out[m[1]] = pair[0], pair[1]
	}

	return out, nil
}

// matchConjugates pairs every root with itself or with one partner,
// repeatedly taking the closest remaining match. It returns the index pairs
// and the largest relative distance it had to accept.
func matchConjugates(roots []complex128) ([][2]int, float64) {
	used := make([]bool, len(roots))
	matches := make([][2]int, 0, len(roots))
	worst := 0.0

	for left := len(roots); left > 0; {
		bi, bj, best := -1, -1, math.Inf(1)

		for i, r := range roots {
			if used[i] {
				continue
			}

			scale := math.Max(1, cmplx.Abs(r))

			if d := math.Abs(imag(r)) / scale; d < best {
				bi, bj, best = i, i, d
			}

			for j := i + 1; j < len(roots); j++ {
				if used[j] {
					continue
				}

				if d := cmplx.Abs(r-cmplx.Conj(roots[j])) / scale; d < best {
					bi, bj, best = i, j, d
				}
			}
		}

		if bi < 0 {
			// Only NaN distances remain.
			return matches, math.Inf(1)
		}

		used[bi], used[bj] = true, true
		matches = append(matches, [2]int{bi, bj})
		worst = math.Max(worst, best)

		left--
		if bi != bj {
			left--
		}
	}

	return matches, worst
}

// averagePair returns the exact conjugate pair closest to a and b, upper
// half-plane root first.
func averagePair(a, b complex128) []complex128 {
	re := 0.5 * (real(a) + real(b))
	im := 0.5 * math.Abs(imag(a)-imag(b))

	return []complex128{complex(re, im), complex(re, -im)}
}

// Quad returns the monic polynomial (descending order) of a root group of
// size 0, 1 or 2: [1], [1, -r] or [1, -(r1+r2), r1*r2].
func Quad(group []complex128) []float64 {
	switch len(group) {
	case 0:
		return []float64{1}
	case 1:
		return []float64{1, -real(group[0])}
	default:
		r1, r2 := group[0], group[1]
		return []float64{1, -real(r1 + r2), real(r1 * r2)}
	}
}

func nearest(roots []complex128, used []bool, skip int, target complex128) (int, float64) {
	best := -1
	bestDist := math.MaxFloat64

	for j := range roots {
		if j == skip || used[j] {
			continue
		}

		d := cmplx.Abs(roots[j] - target)
		if d < bestDist {
			bestDist = d
			best = j
		}
	}

	return best, bestDist
}
