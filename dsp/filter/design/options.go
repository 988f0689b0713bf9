package design

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/sos"
)

// BandStrategy selects how bandpass and bandstop filters are built.
type BandStrategy int

const (
	// BandCascade composes a highpass and a lowpass design: in series for
	// bandpass, in parallel for bandstop. It is the default.
	BandCascade BandStrategy = iota

	// BandTransform applies the analog band transform to the prototype.
	BandTransform
)

func (b BandStrategy) String() string {
	if b == BandTransform {
		return "transform"
	}

	return "cascade"
}

type config struct {
	strategy     BandStrategy
	warpedCentre bool
	logger       *zap.Logger
}

// Option configures a designer call.
type Option func(*config)

// WithBandStrategy selects the band construction. Lowpass and highpass
// designs ignore it.
func WithBandStrategy(s BandStrategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithWarpedCentre normalises bandpass designs at [BandCentre], the
// geometric centre of the prewarped edges, instead of sqrt(f1*f2). The
// band transform peaks exactly there, so its edges land on their nominal
// level.
func WithWarpedCentre() Option {
	return func(c *config) { c.warpedCentre = true }
}

// WithLogger routes debug output of the pipeline stages to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{strategy: BandCascade, logger: zap.NewNop()}
	for _, o := range opts {
		o(&cfg)
	}

	return cfg
}

// reference is the normalisation point of a design under this config.
func (c config) reference(kind Kind, cutoff Cutoff, fs float64) complex128 {
	if kind == Bandpass && c.warpedCentre {
		return sos.AtFrequency(BandCentre(cutoff, fs), fs)
	}

	return referencePoint(kind, cutoff, fs)
}
