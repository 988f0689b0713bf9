// Package design computes IIR and FIR filter coefficients.
//
// Every IIR family shares one pipeline: a normalised analog prototype from
// package prototype is moved to the requested cutoff (package transform),
// mapped to the z-domain with the prewarped bilinear transform and grouped
// into biquad sections (package sos). The response is then normalised to
// unity at the reference point of the filter kind:
//
//	Lowpass   z = 1 (DC)
//	Highpass  z = -1 (Nyquist)
//	Bandpass  f0 = sqrt(f1*f2), or [BandCentre] with [WithWarpedCentre]
//	Bandstop  z = 1 (DC)
//
// Bandpass and bandstop filters are built with one of two strategies. The
// default [BandCascade] composes two lowpass/highpass designs: a bandpass
// is HP(f1) in series with LP(f2), a bandstop is LP(f1) in parallel with
// HP(f2). This is an approximation of a band filter, not a prototype
// transform. [BandTransform] applies the analog lowpass-to-bandpass or
// lowpass-to-bandstop transform to the prototype before a single bilinear
// pass. Both strategies double the order.
//
// All functions are pure and safe for concurrent use. Parameter errors are
// reported before any numeric work; see the Err* values.
package design
