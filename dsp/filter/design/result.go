package design

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/sos"
	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// Result is a designed filter. B and A are the transfer-function
// polynomials in ascending powers of z^-1 with A[0] = 1. For IIR designs
// they are the product of Sections; FIR designs have A = [1] and no
// sections.
type Result struct {
	B, A     []float64
	Sections []biquad.Coefficients
}

func newIIRResult(sections []biquad.Coefficients) *Result {
	b, a := sos.Compose(sections)

	return &Result{B: b, A: a, Sections: sections}
}

// Order returns the filter order: the degree of A, or the FIR length
// minus one.
func (r *Result) Order() int {
	if len(r.Sections) == 0 {
		return max(len(r.B), len(r.A)) - 1
	}

	n := 0
	for _, s := range r.Sections {
		n += s.Order()
	}

	return n
}

// Poles returns the digital poles of the sections.
func (r *Result) Poles() []complex128 {
	_, p := sos.Roots(r.Sections)
	return p
}

// Zeros returns the digital zeros of the sections. FIR results carry no
// sections and report none.
func (r *Result) Zeros() []complex128 {
	z, _ := sos.Roots(r.Sections)
	return z
}

// ResponseAt evaluates H at an arbitrary z.
func (r *Result) ResponseAt(z complex128) complex128 {
	if len(r.Sections) > 0 {
		return sos.Response(r.Sections, z)
	}

	zi := 1 / z

	return polyroot.PolyEvalReal(reversed(r.B), zi) / polyroot.PolyEvalReal(reversed(r.A), zi)
}

// Response returns H(e^jw) at freqHz for the sample rate fs.
func (r *Result) Response(freqHz, fs float64) complex128 {
	return r.ResponseAt(sos.AtFrequency(freqHz, fs))
}

// MagnitudeDB returns 20*log10|H| at freqHz.
func (r *Result) MagnitudeDB(freqHz, fs float64) float64 {
	return 20 * math.Log10(cmplx.Abs(r.Response(freqHz, fs)))
}

// IsStable reports whether every pole lies strictly inside the unit circle.
func (r *Result) IsStable() bool {
	for _, s := range r.Sections {
		if !s.IsStable() {
			return false
		}
	}

	return true
}

// Chain returns a fresh streaming filter for the sections.
func (r *Result) Chain() *biquad.Chain {
	return biquad.NewChain(r.Sections)
}

func reversed(p []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}

	return out
}
