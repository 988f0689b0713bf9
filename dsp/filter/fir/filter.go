package fir

import (
	"math"
	"math/cmplx"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Filter is a direct-form FIR filter.
type Filter struct {
	coeffs []float64
	// rev is coeffs reversed, aligned with the oldest-first delay window.
	rev []float64
	// delay holds every sample twice, at i and i+n.
	delay []float64
	pos   int
}

// New returns a filter with a copy of taps. It panics on an empty slice.
func New(taps []float64) *Filter {
	n := len(taps)
	if n == 0 {
		panic("fir: no taps")
	}

	f := &Filter{
		coeffs: append([]float64(nil), taps...),
		rev:    make([]float64, n),
		delay:  make([]float64, 2*n),
	}

	for i, c := range taps {
		f.rev[n-1-i] = c
	}

	return f
}

// ProcessSample returns sum h[k] * x[n-k].
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.coeffs)
	f.delay[f.pos] = x
	f.delay[f.pos+n] = x

	y := vecmath.DotProduct(f.rev, f.delay[f.pos+1:f.pos+1+n])

	f.pos++
	if f.pos == n {
		f.pos = 0
	}

	return y
}

// ProcessBlock filters buf in place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// ProcessBlockTo filters src into dst, which must be at least as long.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	dst = dst[:len(src)]
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Reset clears the delay line.
func (f *Filter) Reset() {
	clear(f.delay)
	f.pos = 0
}

// Order returns len(taps) - 1.
func (f *Filter) Order() int { return len(f.coeffs) - 1 }

// Coefficients returns a copy of the taps.
func (f *Filter) Coefficients() []float64 {
	return append([]float64(nil), f.coeffs...)
}

// IsLinearPhase reports whether the taps are symmetric or antisymmetric
// within tol.
func (f *Filter) IsLinearPhase(tol float64) bool {
	n := len(f.coeffs)
	sym, anti := true, true

	for i := range n / 2 {
		a, b := f.coeffs[i], f.coeffs[n-1-i]
		sym = sym && math.Abs(a-b) <= tol
		anti = anti && math.Abs(a+b) <= tol
	}

	if n%2 == 1 {
		anti = anti && math.Abs(f.coeffs[n/2]) <= tol
	}

	return sym || anti
}

// GroupDelay returns the group delay in samples of a linear-phase filter.
func (f *Filter) GroupDelay() float64 { return float64(f.Order()) / 2 }

// Response returns H(e^jw) at freqHz for the sample rate fs.
func (f *Filter) Response(freqHz, fs float64) complex128 {
	zi := cmplx.Exp(complex(0, -2*math.Pi*freqHz/fs))

	// Horner in z^-1 from the last tap.
	var h complex128
	for i := len(f.coeffs) - 1; i >= 0; i-- {
		h = h*zi + complex(f.coeffs[i], 0)
	}

	return h
}

// MagnitudeDB returns 20*log10|H| at freqHz.
func (f *Filter) MagnitudeDB(freqHz, fs float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, fs)))
}
