package prototype

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

const maxTabulatedBesselOrder = 10

// Bessel returns the order-n Bessel (Thomson) prototype normalised to its
// -3 dB frequency. Orders up to 10 come from a static pole table; higher
// orders are found numerically as the roots of the reverse Bessel
// polynomial. There are no finite zeros and H(0) = 1.
func Bessel(n int) (Prototype, error) {
	if err := ValidateOrder(n); err != nil {
		return Prototype{}, err
	}

	var (
		upper []complex128
		scale float64
	)

	if n <= maxTabulatedBesselOrder {
		upper = append(upper, besselDelayPoles[n]...)
		scale = besselScaleFactors[n]
	} else {
		var err error

		upper, err = besselRoots(n)
		if err != nil {
			return Prototype{}, err
		}

		scale = BesselCutoffScale(n)
	}

	for i, p := range upper {
		upper[i] = polyroot.Scale(p, 1/scale)
	}

	poles := withConjugates(upper)

	return Prototype{Poles: poles, Gain: gainFromPoles(nil, poles)}, nil
}

// ReverseBesselPoly returns the coefficients, highest power first, of the
// degree-n reverse Bessel polynomial, built by the recurrence
// theta_n(s) = (2n-1) theta_{n-1}(s) + s^2 theta_{n-2}(s) with theta_0 = 1
// and theta_1 = s + 1. Its roots are the delay-normalised Bessel poles.
func ReverseBesselPoly(n int) []float64 {
	if n < 0 {
		return nil
	}

	// Ascending powers during the recurrence.
	prev := []float64{1}
	if n == 0 {
		return prev
	}

	cur := []float64{1, 1}
	for m := 2; m <= n; m++ {
		next := make([]float64, m+1)
		for i, c := range cur {
			next[i] = float64(2*m-1) * c
		}

		for i, c := range prev {
			next[i+2] += c
		}

		prev, cur = cur, next
	}

	out := make([]float64, len(cur))
	for i, c := range cur {
		out[len(cur)-1-i] = c
	}

	return out
}

// BesselCutoffScale returns the angular frequency at which the
// delay-normalised order-n Bessel response falls to -3 dB (|H|^2 = 1/2).
// Dividing the delay-normalised poles by it gives the -3 dB normalisation.
func BesselCutoffScale(n int) float64 {
	if n < 1 {
		return math.NaN()
	}

	if n <= maxTabulatedBesselOrder {
		return besselScaleFactors[n]
	}

	coeff := ReverseBesselPoly(n)
	dc := coeff[len(coeff)-1]

	mag2 := func(w float64) float64 {
		h := dc / cmplx.Abs(polyroot.PolyEvalReal(coeff, complex(0, w)))
		return h * h
	}

	lo, hi := 0.0, 1.0
	for mag2(hi) > 0.5 {
		lo, hi = hi, 2*hi
	}

	for range 200 {
		mid := 0.5 * (lo + hi)
		if mid == lo || mid == hi {
			break
		}

		if mag2(mid) > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 0.5 * (lo + hi)
}

// besselRoots returns the upper-half-plane and real roots of the reverse
// Bessel polynomial.
func besselRoots(n int) ([]complex128, error) {
	roots, err := polyroot.RealRoots(ReverseBesselPoly(n))
	if err != nil {
		return nil, err
	}

	groups, err := polyroot.Group(roots, 1e-9)
	if err != nil {
		return nil, err
	}

	upper := make([]complex128, 0, (n+1)/2)
	for _, g := range groups {
		switch {
		case len(g) == 1:
			upper = append(upper, complex(real(g[0]), 0))
		case imag(g[0]) != 0:
			upper = append(upper, g[0])
		default:
			// A pair of real roots does not occur for Bessel polynomials,
			// but keep both if it ever does.
			upper = append(upper, complex(real(g[0]), 0), complex(real(g[1]), 0))
		}
	}

	return upper, nil
}

// besselDelayPoles holds the delay-normalised Bessel poles for orders 1-10:
// the roots of ReverseBesselPoly(n), one per conjugate pair (positive
// imaginary part, in decreasing order) and the real pole last for odd n.
// The values are Newton-polished roots; C. R. Bond, "Bessel Filter
// Constants", lists the same poles to ten digits.
var besselDelayPoles = [maxTabulatedBesselOrder + 1][]complex128{
	// order 0: unused
	{},
	// order 1
	{
		complex(-1.0, 0),
	},
	// order 2
	{
		complex(-1.5, 0.8660254037844386),
	},
	// order 3
	{
		complex(-1.838907322686957, 1.7543809597837214),
		complex(-2.322185354626085, 0),
	},
	// order 4
	{
		complex(-2.1037893971796287, 2.657418041856753),
		complex(-2.896210602820372, 0.8672341289345051),
	},
	// order 5
	{
		complex(-2.3246743031816433, 3.5710229203379757),
		complex(-3.3519563991535386, 1.742661416183201),
		complex(-3.64673859532964, 0),
	},
	// order 6
	{
		complex(-2.5159322478108166, 4.492672953653946),
		complex(-3.735708356325785, 2.626272311447131),
		complex(-4.2483593958633685, 0.8675096732313669),
	},
	// order 7
	{
		complex(-2.685676878943263, 5.420694130716752),
		complex(-4.070139163638165, 3.5171740477097626),
		complex(-4.758290528154668, 1.739286061130472),
		complex(-4.971786858527967, 0),
	},
	// order 8
	{
		complex(-2.838983948897634, 6.353911298604886),
		complex(-4.368289217202354, 4.414442500471501),
		complex(-5.204840790636953, 2.6161751526423425),
		complex(-5.587886043263081, 0.8676144453525113),
	},
	// order 9
	{
		complex(-2.979260798180084, 7.291463688342168),
		complex(-4.63843988718048, 5.31727167543553),
		complex(-5.604421819508222, 3.498156917886188),
		complex(-6.129367904274144, 1.7378483834809035),
		complex(-6.297019181714095, 0),
	},
	// order 10
	{
		complex(-3.1089162336491105, 8.232699459073622),
		complex(-4.886219566858561, 6.224985482471145),
		complex(-5.967528328587327, 4.384947188941915),
		complex(-6.615290965476186, 2.6115679208007925),
		complex(-6.922044905427648, 0.8676651954429024),
	},
}

// besselScaleFactors holds BesselCutoffScale(n) for the tabulated orders.
var besselScaleFactors = [maxTabulatedBesselOrder + 1]float64{
	0, // order 0: unused
	1.0,
	1.3616541287161308,
	1.7556723686812106,
	2.113917674904216,
	2.4274107021526286,
	2.7033950612029223,
	2.951722147038722,
	3.1796172375106524,
	3.39169313891166,
	3.5909805945691637,
}
