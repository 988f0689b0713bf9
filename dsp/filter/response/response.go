package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// MaxPoints bounds the grid size of Sample.
const MaxPoints = 1 << 20

var ErrInvalidPoints = errors.New("response: invalid number of points")

// Curve is a sampled response. All slices have the same length.
type Curve struct {
	Freq        []float64 // Hz
	Magnitude   []float64 // linear
	MagnitudeDB []float64
	Phase       []float64 // radians, wrapped to (-pi, pi]
	GroupDelay  []float64 // samples
}

// Len returns the number of points.
func (c *Curve) Len() int { return len(c.Freq) }

// Sample evaluates r at n frequencies k*fs/(2n), k = 0..n-1.
func Sample(r *design.Result, n int, fs float64) (*Curve, error) {
	if n < 1 || n > MaxPoints {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidPoints, n, MaxPoints)
	}

	if !(fs > 0) || math.IsInf(fs, 1) {
		return nil, fmt.Errorf("%w: %g", design.ErrInvalidSampleRate, fs)
	}

	h := make([]complex128, n)
	tau := make([]float64, n)

	for i := range h {
		h[i] = 1
	}

	for _, f := range factors(r) {
		if err := accumulate(h, tau, f.b, false); err != nil {
			return nil, err
		}

		if err := accumulate(h, tau, f.a, true); err != nil {
			return nil, err
		}
	}

	c := &Curve{
		Freq:        make([]float64, n),
		Magnitude:   make([]float64, n),
		MagnitudeDB: make([]float64, n),
		Phase:       make([]float64, n),
		GroupDelay:  tau,
	}

	re := make([]float64, n)
	im := make([]float64, n)

	for i, v := range h {
		c.Freq[i] = float64(i) * fs / float64(2*n)
		re[i], im[i] = real(v), imag(v)
		c.Phase[i] = cmplx.Phase(v)
	}

	vecmath.Magnitude(c.Magnitude, re, im)

	for i, m := range c.Magnitude {
		c.MagnitudeDB[i] = 20 * math.Log10(m)
	}

	return c, nil
}

// GroupDelay returns the group delay of r in samples at freqHz.
func GroupDelay(r *design.Result, freqHz, fs float64) float64 {
	zi := cmplx.Exp(complex(0, -2*math.Pi*freqHz/fs))

	tau := 0.0
	for _, f := range factors(r) {
		tau += polyDelay(f.b, zi) - polyDelay(f.a, zi)
	}

	return tau
}

// polyDelay is Re( sum k p[k] zi^k / sum p[k] zi^k ).
func polyDelay(p []float64, zi complex128) float64 {
	var num, den complex128
	for k := len(p) - 1; k >= 0; k-- {
		den = den*zi + complex(p[k], 0)
		num = num*zi + complex(float64(k)*p[k], 0)
	}

	return real(num / den)
}

type factor struct {
	b, a []float64
}

// factors splits r into the polynomials the response is built from. IIR
// results use their sections, which keeps the transforms short and well
// conditioned.
func factors(r *design.Result) []factor {
	if len(r.Sections) == 0 {
		return []factor{{b: r.B, a: r.A}}
	}

	out := make([]factor, len(r.Sections))
	for i, s := range r.Sections {
		num, den := s.Num(), s.Den()
		out[i] = factor{b: num[:], a: den[:]}
	}

	return out
}

// accumulate multiplies (or divides) h by the transform of p and adds (or
// subtracts) its group delay to tau.
func accumulate(h []complex128, tau []float64, p []float64, divide bool) error {
	n := len(h)

	weighted := make([]float64, len(p))
	for k, v := range p {
		weighted[k] = float64(k) * v
	}

	pw, err := grid(p, n)
	if err != nil {
		return err
	}

	kw, err := grid(weighted, n)
	if err != nil {
		return err
	}

	for i := range h {
		d := real(kw[i] / pw[i])
		if divide {
			h[i] /= pw[i]
			tau[i] -= d
		} else {
			h[i] *= pw[i]
			tau[i] += d
		}
	}

	return nil
}

// grid returns P(e^jw) at w = pi*k/n for k < n. The transform length is a
// multiple of 2n that holds all of p; the decimation picks the grid.
func grid(p []float64, n int) ([]complex128, error) {
	size := 2 * n
	step := 1

	for size < len(p) {
		size *= 2
		step *= 2
	}

	spec, err := transform(p, size)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, n)
	for i := range out {
		out[i] = spec[i*step]
	}

	return out, nil
}

// transform zero-pads p to size and returns its DFT. Powers of two go
// through a planned FFT; other sizes use a mixed-radix transform.
func transform(p []float64, size int) ([]complex128, error) {
	if size&(size-1) != 0 {
		padded := make([]float64, size)
		copy(padded, p)

		return fft.FFTReal(padded), nil
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("response: fft plan of %d: %w", size, err)
	}

	in := make([]complex128, size)
	for i, v := range p {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: fft: %w", err)
	}

	return out, nil
}
