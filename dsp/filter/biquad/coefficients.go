package biquad

import (
	"math"
	"math/cmplx"
)

// Coefficients holds one normalised section
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// Processing follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward
	A1, A2     float64 // feedback
}

// Num returns the numerator [B0, B1, B2] in ascending powers of z^-1.
func (c Coefficients) Num() [3]float64 { return [3]float64{c.B0, c.B1, c.B2} }

// Den returns the denominator [1, A1, A2] in ascending powers of z^-1.
func (c Coefficients) Den() [3]float64 { return [3]float64{1, c.A1, c.A2} }

// IsFirstOrder reports whether the section only uses one delay.
func (c Coefficients) IsFirstOrder() bool { return c.B2 == 0 && c.A2 == 0 }

// Order returns 1 for first-order sections and 2 otherwise.
func (c Coefficients) Order() int {
	if c.IsFirstOrder() {
		return 1
	}

	return 2
}

// ResponseAt evaluates H at an arbitrary point z of the complex plane.
func (c Coefficients) ResponseAt(z complex128) complex128 {
	zi := 1 / z
	zi2 := zi * zi

	num := complex(c.B0, 0) + complex(c.B1, 0)*zi + complex(c.B2, 0)*zi2
	den := 1 + complex(c.A1, 0)*zi + complex(c.A2, 0)*zi2

	return num / den
}

// Response returns H(e^jw) at freqHz for the sample rate fs.
func (c Coefficients) Response(freqHz, fs float64) complex128 {
	return c.ResponseAt(cmplx.Exp(complex(0, 2*math.Pi*freqHz/fs)))
}

// MagnitudeSquared returns |H(e^jw)|^2 without complex arithmetic.
func (c Coefficients) MagnitudeSquared(freqHz, fs float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freqHz/fs)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw

	return num / den
}

// MagnitudeDB returns 10*log10(|H|^2).
func (c Coefficients) MagnitudeDB(freqHz, fs float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, fs))
}

// Phase returns arg H(e^jw) in [-pi, pi].
func (c Coefficients) Phase(freqHz, fs float64) float64 {
	return cmplx.Phase(c.Response(freqHz, fs))
}

// Poles returns the roots of z^2 + A1 z + A2. A first-order section
// reports its single pole followed by 0.
func (c Coefficients) Poles() [2]complex128 {
	return quadraticRoots(1, c.A1, c.A2)
}

// Zeros returns the roots of B0 z^2 + B1 z + B2.
func (c Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// IsStable reports whether both poles lie strictly inside the unit circle.
// For a real quadratic this is the stability triangle |A2| < 1,
// |A1| < 1 + A2.
func (c Coefficients) IsStable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}

		return [2]complex128{complex(-c/b, 0), 0}
	}

	if c == 0 {
		return [2]complex128{complex(-b/a, 0), 0}
	}

	d := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)

	return [2]complex128{
		(-complex(b, 0) + d) / den,
		(-complex(b, 0) - d) / den,
	}
}
