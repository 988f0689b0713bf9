package design

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/sos"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/transform"
)

// protoFunc builds the normalised analog prototype of one family. Parameters
// are validated by the caller; the order is the only input that varies
// inside a pipeline.
type protoFunc func(order int) (prototype.Prototype, error)

// pipeline is the shared prototype -> transform -> bilinear -> sos skeleton.
type pipeline struct {
	family Family
	proto  protoFunc
	cfg    config
}

func newPipeline(family Family, proto protoFunc, opts []Option) *pipeline {
	return &pipeline{family: family, proto: proto, cfg: newConfig(opts)}
}

// design runs a validated request.
func (p *pipeline) design(kind Kind, cutoff Cutoff, fs float64, order int) (*Result, error) {
	log := p.cfg.logger.With(
		zap.Stringer("family", p.family),
		zap.Stringer("kind", kind),
		zap.Int("order", order),
		zap.Float64("fs", fs),
	)
	if kind.IsBand() {
		log = log.With(zap.Stringer("strategy", p.cfg.strategy))
	}

	var (
		sections []biquad.Coefficients
		err      error
	)

	switch {
	case !kind.IsBand():
		sections, err = p.passFilter(kind, cutoff.F1, fs, order, log)
	case p.cfg.strategy == BandTransform:
		sections, err = p.bandTransform(kind, cutoff, fs, order, log)
	case kind == Bandpass:
		sections, err = p.bandpassCascade(cutoff, fs, order, log)
	default:
		sections, err = p.bandstopCascade(cutoff, fs, order, log)
	}

	if err != nil {
		return nil, fmt.Errorf("design: %v %v: %w", p.family, kind, classify(err))
	}

	return newIIRResult(sections), nil
}

func (p *pipeline) prototype(order int, log *zap.Logger) (transform.ZPK, error) {
	proto, err := p.proto(order)
	if err != nil {
		return transform.ZPK{}, err
	}

	log.Debug("prototype",
		zap.Int("poles", len(proto.Poles)),
		zap.Int("zeros", len(proto.Zeros)),
		zap.Float64("gain", proto.Gain),
	)

	return transform.FromPrototype(proto), nil
}

// passFilter designs a lowpass or highpass filter at fc.
func (p *pipeline) passFilter(kind Kind, fc, fs float64, order int, log *zap.Logger) ([]biquad.Coefficients, error) {
	proto, err := p.prototype(order, log)
	if err != nil {
		return nil, err
	}

	wc := transform.Prewarp(fc, fs)

	var analog transform.ZPK
	if kind == Highpass {
		analog, err = transform.LowpassToHighpass(proto, wc)
	} else {
		analog, err = transform.LowpassToLowpass(proto, wc)
	}

	if err != nil {
		return nil, err
	}

	return p.finish(analog, fs, referencePoint(kind, Cutoff{F1: fc}, fs), log)
}

// bandTransform applies the analog band transform between the prewarped
// edges.
func (p *pipeline) bandTransform(kind Kind, c Cutoff, fs float64, order int, log *zap.Logger) ([]biquad.Coefficients, error) {
	proto, err := p.prototype(order, log)
	if err != nil {
		return nil, err
	}

	w1, w2 := transform.Prewarp(c.F1, fs), transform.Prewarp(c.F2, fs)
	w0, bw := math.Sqrt(w1*w2), w2-w1

	var analog transform.ZPK
	if kind == Bandpass {
		analog, err = transform.LowpassToBandpass(proto, w0, bw)
	} else {
		analog, err = transform.LowpassToBandstop(proto, w0, bw)
	}

	if err != nil {
		return nil, err
	}

	return p.finish(analog, fs, p.cfg.reference(kind, c, fs), log)
}

// finish maps an analog filter to sections and normalises it at z0.
func (p *pipeline) finish(analog transform.ZPK, fs float64, z0 complex128, log *zap.Logger) ([]biquad.Coefficients, error) {
	sections, err := sos.FromAnalog(analog, fs)
	if err != nil {
		return nil, err
	}

	return normalize(sections, z0, log)
}

// bandpassCascade is HP(f1) followed by LP(f2).
func (p *pipeline) bandpassCascade(c Cutoff, fs float64, order int, log *zap.Logger) ([]biquad.Coefficients, error) {
	hp, err := p.passFilter(Highpass, c.F1, fs, order, log)
	if err != nil {
		return nil, err
	}

	lp, err := p.passFilter(Lowpass, c.F2, fs, order, log)
	if err != nil {
		return nil, err
	}

	return normalize(append(hp, lp...), p.cfg.reference(Bandpass, c, fs), log)
}

// bandstopCascade sums LP(f1) and HP(f2). The sum is formed in the analog
// domain with the frequency axis scaled by w0 = sqrt(w1*w2), which keeps
// both branches' roots near the unit circle and the numerator well
// conditioned. The bilinear transform then runs at fs/w0, so the result
// equals the sum of the two digital filters up to the gain.
func (p *pipeline) bandstopCascade(c Cutoff, fs float64, order int, log *zap.Logger) ([]biquad.Coefficients, error) {
	proto, err := p.prototype(order, log)
	if err != nil {
		return nil, err
	}

	w1, w2 := transform.Prewarp(c.F1, fs), transform.Prewarp(c.F2, fs)
	w0 := math.Sqrt(w1 * w2)

	lp, err := transform.LowpassToLowpass(proto, w1/w0)
	if err != nil {
		return nil, err
	}

	hp, err := transform.LowpassToHighpass(proto, w2/w0)
	if err != nil {
		return nil, err
	}

	sum, err := transform.Parallel(lp, hp)
	if err != nil {
		return nil, err
	}

	log.Debug("parallel numerator factored", zap.Int("zeros", len(sum.Zeros)))

	return p.finish(sum, fs/w0, referencePoint(Bandstop, c, fs), log)
}

func normalize(sections []biquad.Coefficients, z0 complex128, log *zap.Logger) ([]biquad.Coefficients, error) {
	g, err := sos.Normalize(sections, z0)
	if err != nil {
		return nil, err
	}

	log.Debug("normalised", zap.Int("sections", len(sections)), zap.Float64("gain", g))

	return sections, nil
}

// referencePoint is the z at which a design of the given kind has unit
// gain. Bandpass designs are normalised at f0 = sqrt(f1*f2).
func referencePoint(kind Kind, c Cutoff, fs float64) complex128 {
	switch kind {
	case Highpass:
		return sos.Nyquist()
	case Bandpass:
		return sos.AtFrequency(math.Sqrt(c.F1*c.F2), fs)
	default:
		return sos.DC()
	}
}

// BandCentre returns the digital frequency of the geometric centre of the
// prewarped edges, fs/pi * atan(sqrt(tan(pi f1/fs) * tan(pi f2/fs))). It
// lies above sqrt(f1*f2) and is where [WithWarpedCentre] normalises.
func BandCentre(c Cutoff, fs float64) float64 {
	w1, w2 := transform.Prewarp(c.F1, fs), transform.Prewarp(c.F2, fs)
	return transform.Unwarp(math.Sqrt(w1*w2), fs)
}
