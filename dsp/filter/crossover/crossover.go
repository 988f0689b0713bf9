package crossover

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

var (
	// ErrOddOrder is returned for odd Linkwitz-Riley orders. It wraps
	// design.ErrInvalidOrder.
	ErrOddOrder = fmt.Errorf("%w: crossover order must be even", design.ErrInvalidOrder)

	// ErrNoFrequencies is returned by NewMultiBand for an empty list.
	ErrNoFrequencies = errors.New("crossover: at least one frequency is required")

	// ErrUnorderedFrequencies is returned by NewMultiBand when the
	// frequencies are not strictly ascending.
	ErrUnorderedFrequencies = errors.New("crossover: frequencies must be strictly ascending")
)

// Crossover splits a signal into complementary Linkwitz-Riley lowpass and
// highpass outputs whose sum is allpass.
type Crossover struct {
	lp, hp *biquad.Chain
	freq   float64
	order  int
	fs     float64
}

// New designs a two-way crossover of the given even order at freq.
// Options are passed to the designer.
//
// For orders 2, 6 and 10 the highpass output is inverted, which is what
// makes LP + HP allpass for those orders.
func New(freq float64, order int, fs float64, opts ...design.Option) (*Crossover, error) {
	if order%2 != 0 {
		return nil, fmt.Errorf("%w: got %d", ErrOddOrder, order)
	}

	lp, err := design.LinkwitzRiley(design.Lowpass, design.Freq(freq), fs, order, opts...)
	if err != nil {
		return nil, fmt.Errorf("crossover: lowpass: %w", err)
	}

	hp, err := design.LinkwitzRiley(design.Highpass, design.Freq(freq), fs, order, opts...)
	if err != nil {
		return nil, fmt.Errorf("crossover: highpass: %w", err)
	}

	polarity := 1.0
	if NeedsHighpassInvert(order) {
		polarity = -1
	}

	return &Crossover{
		lp:    lp.Chain(),
		hp:    biquad.NewChain(hp.Sections, biquad.WithGain(polarity)),
		freq:  freq,
		order: order,
		fs:    fs,
	}, nil
}

// NeedsHighpassInvert reports whether an LR crossover of this order needs
// its highpass inverted to sum flat. That is the case for order = 2 mod 4.
func NeedsHighpassInvert(order int) bool { return order%4 == 2 }

// ProcessSample returns the lowpass and highpass outputs for x.
func (c *Crossover) ProcessSample(x float64) (lo, hi float64) {
	return c.lp.ProcessSample(x), c.hp.ProcessSample(x)
}

// ProcessBlock writes the lowpass and highpass outputs of input to lo and
// hi, which must be at least as long as input.
func (c *Crossover) ProcessBlock(input, lo, hi []float64) {
	n := len(input)
	if n == 0 {
		return
	}

	lo, hi = lo[:n], hi[:n]
	copy(lo, input)
	copy(hi, input)
	c.lp.ProcessBlock(lo)
	c.hp.ProcessBlock(hi)
}

// LP returns the lowpass chain.
func (c *Crossover) LP() *biquad.Chain { return c.lp }

// HP returns the highpass chain, including the polarity inversion when
// one is needed.
func (c *Crossover) HP() *biquad.Chain { return c.hp }

func (c *Crossover) Freq() float64       { return c.freq }
func (c *Crossover) Order() int          { return c.order }
func (c *Crossover) SampleRate() float64 { return c.fs }

// Reset clears both chains.
func (c *Crossover) Reset() {
	c.lp.Reset()
	c.hp.Reset()
}

// allpass returns a phase compensator equal to LP + HP of c.
func (c *Crossover) allpass() *allpass {
	return &allpass{
		lp: biquad.NewChain(c.lp.Coefficients(), biquad.WithGain(c.lp.Gain())),
		hp: biquad.NewChain(c.hp.Coefficients(), biquad.WithGain(c.hp.Gain())),
	}
}

// allpass runs a copy of both branches of a crossover and sums them.
type allpass struct {
	lp, hp *biquad.Chain
	tmp    []float64
}

func (a *allpass) processSample(x float64) float64 {
	return a.lp.ProcessSample(x) + a.hp.ProcessSample(x)
}

func (a *allpass) processBlock(buf []float64) {
	if cap(a.tmp) < len(buf) {
		a.tmp = make([]float64, len(buf))
	}

	tmp := a.tmp[:len(buf)]
	copy(tmp, buf)
	a.lp.ProcessBlock(buf)
	a.hp.ProcessBlock(tmp)

	for i := range buf {
		buf[i] += tmp[i]
	}
}

func (a *allpass) reset() {
	a.lp.Reset()
	a.hp.Reset()
}

// MultiBand splits a signal into len(freqs)+1 bands with cascaded two-way
// crossovers. Each band is delayed through the allpass of every crossover
// above it, so the sum of all bands is allpass for any spacing.
type MultiBand struct {
	stages []*Crossover
	// comp[i] holds the compensators applied to band i.
	comp [][]*allpass
}

// NewMultiBand builds a multi-way crossover from strictly ascending
// frequencies. The order applies to every stage.
func NewMultiBand(freqs []float64, order int, fs float64, opts ...design.Option) (*MultiBand, error) {
	if len(freqs) == 0 {
		return nil, ErrNoFrequencies
	}

	for i := 1; i < len(freqs); i++ {
		if freqs[i] <= freqs[i-1] {
			return nil, fmt.Errorf("%w: %g after %g", ErrUnorderedFrequencies, freqs[i], freqs[i-1])
		}
	}

	m := &MultiBand{
		stages: make([]*Crossover, len(freqs)),
		comp:   make([][]*allpass, len(freqs)+1),
	}

	for i, f := range freqs {
		xo, err := New(f, order, fs, opts...)
		if err != nil {
			return nil, fmt.Errorf("crossover: stage %d: %w", i, err)
		}

		m.stages[i] = xo
	}

	// Band i leaves the cascade at stage i and still needs the phase of
	// stages i+1 and above.
	for i := range freqs {
		for _, later := range m.stages[i+1:] {
			m.comp[i] = append(m.comp[i], later.allpass())
		}
	}

	return m, nil
}

// NumBands returns the number of output bands.
func (m *MultiBand) NumBands() int { return len(m.stages) + 1 }

// Stages returns the two-way stages from lowest to highest frequency.
func (m *MultiBand) Stages() []*Crossover { return m.stages }

// ProcessSample returns one output per band, lowest band first.
func (m *MultiBand) ProcessSample(x float64) []float64 {
	out := make([]float64, m.NumBands())
	m.ProcessSampleTo(out, x)

	return out
}

// ProcessSampleTo writes the band outputs for x into out, which must hold
// NumBands values.
func (m *MultiBand) ProcessSampleTo(out []float64, x float64) {
	rest := x
	for i, stage := range m.stages {
		lo, hi := stage.ProcessSample(rest)
		for _, ap := range m.comp[i] {
			lo = ap.processSample(lo)
		}

		out[i] = lo
		rest = hi
	}

	out[len(m.stages)] = rest
}

// ProcessBlock returns one block per band, each as long as input.
func (m *MultiBand) ProcessBlock(input []float64) [][]float64 {
	n := len(input)

	out := make([][]float64, m.NumBands())
	for i := range out {
		out[i] = make([]float64, n)
	}

	rest := append([]float64(nil), input...)
	hi := make([]float64, n)

	for i, stage := range m.stages {
		stage.ProcessBlock(rest, out[i], hi)

		for _, ap := range m.comp[i] {
			ap.processBlock(out[i])
		}

		rest, hi = hi, rest
	}

	copy(out[len(m.stages)], rest)

	return out
}

// Reset clears every stage and compensator.
func (m *MultiBand) Reset() {
	for _, s := range m.stages {
		s.Reset()
	}

	for _, band := range m.comp {
		for _, ap := range band {
			ap.reset()
		}
	}
}
