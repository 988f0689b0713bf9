package bank

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

// octaveRatio is G = 10^(3/10) per IEC 61260.
var octaveRatio = math.Pow(10, 0.3)

const (
	defaultOrder     = 4
	defaultLowerFreq = 20.0
	defaultUpperFreq = 20000.0
)

var (
	ErrInvalidFraction  = errors.New("bank: fraction must be positive")
	ErrInvalidBandwidth = errors.New("bank: bandwidth must be positive")
	ErrInvalidRange     = errors.New("bank: invalid frequency range")
	ErrNoBands          = errors.New("bank: no band fits below Nyquist")
)

// Band is one bandpass filter of a bank.
type Band struct {
	Center float64 // Hz
	Low    float64 // lower edge in Hz
	High   float64 // upper edge in Hz

	Result *design.Result
	chain  *biquad.Chain
}

// MagnitudeDB returns the band's response in dB at freqHz.
func (b *Band) MagnitudeDB(freqHz, fs float64) float64 {
	return b.Result.MagnitudeDB(freqHz, fs)
}

// Bank is a set of bandpass filters fed from the same input.
type Bank struct {
	bands []Band
	fs    float64
	spec  design.Spec
}

type config struct {
	spec    design.Spec
	lowerHz float64
	upperHz float64
	opts    []design.Option
}

// Option configures a Bank.
type Option func(*config)

// WithOrder sets the prototype order of every band. The resulting
// bandpass filters have twice this order. Default 4.
func WithOrder(n int) Option {
	return func(c *config) { c.spec.Order = n }
}

// WithFamily selects the approximation of every band. rippleDB and
// attenuationDB are used by the families that take them; zero selects the
// design defaults. Default Butterworth.
func WithFamily(f design.Family, rippleDB, attenuationDB float64) Option {
	return func(c *config) {
		c.spec.Family = f
		c.spec.RippleDB = rippleDB
		c.spec.AttenuationDB = attenuationDB
	}
}

// WithFrequencyRange limits Octave to centre frequencies in [lower, upper].
func WithFrequencyRange(lower, upper float64) Option {
	return func(c *config) {
		c.lowerHz, c.upperHz = lower, upper
	}
}

// WithDesignOptions passes options such as design.WithBandStrategy to
// every band design.
func WithDesignOptions(opts ...design.Option) Option {
	return func(c *config) { c.opts = append(c.opts, opts...) }
}

func newConfig(opts []Option) config {
	c := config{
		spec:    design.Spec{Family: design.FamilyButterworth, Kind: design.Bandpass, Order: defaultOrder},
		lowerHz: defaultLowerFreq,
		upperHz: defaultUpperFreq,
	}

	for _, o := range opts {
		o(&c)
	}

	return c
}

// Octave builds a 1/fraction-octave bank with IEC 61260 base-10 centres
//
//	f_m = 1000 * G^(k/N),  edges f_m * G^(+-1/(2N)),  G = 10^(3/10)
//
// for every k whose centre lies in the frequency range and whose upper
// edge lies below Nyquist.
func Octave(fraction int, fs float64, opts ...Option) (*Bank, error) {
	if fraction <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFraction, fraction)
	}

	cfg := newConfig(opts)
	if !(cfg.lowerHz > 0 && cfg.upperHz > cfg.lowerHz) {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidRange, cfg.lowerHz, cfg.upperHz)
	}

	n := float64(fraction)
	half := math.Pow(octaveRatio, 1/(2*n))
	logG := math.Log(octaveRatio)

	kMin := int(math.Ceil(n*math.Log(cfg.lowerHz/1000)/logG - 1e-9))
	kMax := int(math.Floor(n*math.Log(cfg.upperHz/1000)/logG + 1e-9))

	var centres []float64
	for k := kMin; k <= kMax; k++ {
		centres = append(centres, 1000*math.Pow(octaveRatio, float64(k)/n))
	}

	return build(centres, half, fs, cfg)
}

// Custom builds a bank around arbitrary centre frequencies, each band
// spanning bandwidth octaves. Bands that do not fit below Nyquist are
// skipped.
func Custom(centres []float64, bandwidth, fs float64, opts ...Option) (*Bank, error) {
	if !(bandwidth > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidBandwidth, bandwidth)
	}

	return build(centres, math.Pow(2, bandwidth/2), fs, newConfig(opts))
}

func build(centres []float64, half, fs float64, cfg config) (*Bank, error) {
	b := &Bank{fs: fs, spec: cfg.spec}

	for _, fc := range centres {
		lo, hi := fc/half, fc*half
		if fc <= 0 || hi >= fs/2 {
			continue
		}

		spec := cfg.spec
		spec.Cutoff = design.Band(lo, hi)
		spec.SampleRate = fs

		r, err := design.Design(spec, cfg.opts...)
		if err != nil {
			return nil, fmt.Errorf("bank: band at %.1f Hz: %w", fc, err)
		}

		b.bands = append(b.bands, Band{Center: fc, Low: lo, High: hi, Result: r, chain: r.Chain()})
	}

	if len(b.bands) == 0 {
		return nil, ErrNoBands
	}

	slices.SortFunc(b.bands, func(x, y Band) int {
		switch {
		case x.Center < y.Center:
			return -1
		case x.Center > y.Center:
			return 1
		}

		return 0
	})

	return b, nil
}

// Bands returns the bands from lowest to highest centre frequency.
func (b *Bank) Bands() []Band { return b.bands }

func (b *Bank) NumBands() int       { return len(b.bands) }
func (b *Bank) SampleRate() float64 { return b.fs }

// Spec returns the design request shared by all bands, without cutoff and
// sample rate.
func (b *Bank) Spec() design.Spec { return b.spec }

// ProcessSample feeds x to every band and returns one output per band.
func (b *Bank) ProcessSample(x float64) []float64 {
	out := make([]float64, len(b.bands))
	for i := range b.bands {
		out[i] = b.bands[i].chain.ProcessSample(x)
	}

	return out
}

// ProcessBlock returns one filtered copy of input per band.
func (b *Bank) ProcessBlock(input []float64) [][]float64 {
	out := make([][]float64, len(b.bands))
	for i := range b.bands {
		out[i] = append([]float64(nil), input...)
		b.bands[i].chain.ProcessBlock(out[i])
	}

	return out
}

// Reset clears every band.
func (b *Bank) Reset() {
	for i := range b.bands {
		b.bands[i].chain.Reset()
	}
}
