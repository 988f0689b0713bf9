package polyroot

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// CompanionRoots returns the roots of a real polynomial (descending order)
// as the eigenvalues of its companion matrix. It is slower than the
// simultaneous iterations but does not depend on starting points, which
// makes it the reference the iterative finders are checked against.
func CompanionRoots(coeff []float64) ([]complex128, error) {
	if len(coeff) < 2 || coeff[0] == 0 || math.IsNaN(coeff[0]) {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1
	lead := coeff[0]

	a := mat.NewDense(n, n, nil)
	for j := range n {
		a.Set(0, j, -coeff[j+1]/lead)
	}

	for i := 1; i < n; i++ {
		a.Set(i, i-1, 1)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return nil, ErrNoConvergence
	}

	return eig.Values(nil), nil
}
