package biquad

import (
	"math"
	"math/cmplx"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// Chain is a cascade of sections processed in series, with an optional
// input gain.
type Chain struct {
	sections []Section
	gain     float64
}

type chainConfig struct {
	gain float64
}

// ChainOption configures NewChain.
type ChainOption func(*chainConfig)

// WithGain scales the input before the first section. Default 1.
func WithGain(g float64) ChainOption {
	return func(cfg *chainConfig) { cfg.gain = g }
}

// NewChain builds a cascade with one section per coefficient set.
func NewChain(coeffs []Coefficients, opts ...ChainOption) *Chain {
	cfg := chainConfig{gain: 1}
	for _, o := range opts {
		o(&cfg)
	}

	c := &Chain{gain: cfg.gain}
	c.setSections(coeffs)

	return c
}

func (c *Chain) setSections(coeffs []Coefficients) {
	c.sections = make([]Section, len(coeffs))
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
}

// ProcessSample runs x through every section.
func (c *Chain) ProcessSample(x float64) float64 {
	x *= c.gain
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place through the cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	if c.gain != 1 {
		vecmath.ScaleBlockInPlace(buf, c.gain)
	}

	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears every delay line.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order is the sum of the section orders.
func (c *Chain) Order() int {
	n := 0
	for i := range c.sections {
		n += c.sections[i].Order()
	}

	return n
}

// NumSections returns the number of sections.
func (c *Chain) NumSections() int { return len(c.sections) }

// Gain returns the input gain.
func (c *Chain) Gain() float64 { return c.gain }

// SetGain replaces the input gain.
func (c *Chain) SetGain(g float64) { c.gain = g }

// Section returns the i-th section.
func (c *Chain) Section(i int) *Section { return &c.sections[i] }

// Coefficients returns a copy of the section coefficients in cascade order.
func (c *Chain) Coefficients() []Coefficients {
	out := make([]Coefficients, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].Coefficients
	}

	return out
}

// UpdateCoefficients swaps in new coefficients and gain. Section state
// survives when the section count is unchanged, which avoids a click when
// a filter is retuned while running.
func (c *Chain) UpdateCoefficients(coeffs []Coefficients, gain float64) {
	c.gain = gain

	if len(coeffs) != len(c.sections) {
		c.setSections(coeffs)
		return
	}

	for i := range c.sections {
		c.sections[i].Coefficients = coeffs[i]
	}
}

// State snapshots every delay line.
func (c *Chain) State() [][2]float64 {
	states := make([][2]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}

	return states
}

// SetState restores a snapshot taken with State.
func (c *Chain) SetState(states [][2]float64) {
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}

// ResponseAt evaluates the cascade at z.
func (c *Chain) ResponseAt(z complex128) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].ResponseAt(z)
	}

	return h
}

// Response returns the cascade's frequency response at freqHz.
func (c *Chain) Response(freqHz, fs float64) complex128 {
	return c.ResponseAt(cmplx.Exp(complex(0, 2*math.Pi*freqHz/fs)))
}

// MagnitudeDB returns 20*log10|H| at freqHz.
func (c *Chain) MagnitudeDB(freqHz, fs float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, fs)))
}

// ImpulseResponse returns n samples of the cascade impulse response without
// disturbing the running state.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	tmp := NewChain(c.Coefficients(), WithGain(c.gain))

	ir := make([]float64, n)
	ir[0] = 1
	tmp.ProcessBlock(ir)

	return ir
}
