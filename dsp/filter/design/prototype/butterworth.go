package prototype

import (
	"math"

	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// Butterworth returns the order-n Butterworth prototype: n poles evenly
// spaced on the left half of the unit circle at angles
// pi*(2k-1+n)/(2n), k = 1..n. There are no finite zeros and H(0) = 1.
func Butterworth(n int) (Prototype, error) {
	if err := ValidateOrder(n); err != nil {
		return Prototype{}, err
	}

	upper := make([]complex128, 0, (n+1)/2)
	for k := 1; 2*k <= n; k++ {
		theta := math.Pi * float64(2*k-1+n) / float64(2*n)
		upper = append(upper, polyroot.Expj(theta))
	}

	if n%2 == 1 {
		upper = append(upper, -1)
	}

	return Prototype{Poles: withConjugates(upper), Gain: 1}, nil
}
