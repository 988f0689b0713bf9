// Package transform maps normalised analog lowpass prototypes to analog
// lowpass, highpass, bandpass and bandstop filters, and analog filters to
// the digital domain with the bilinear transform.
//
// Filters are carried in zeros/poles/gain form ([ZPK]). The bilinear stage
// additionally offers closed-form maps for first- and second-order analog
// sections, which is what the section assembly in package sos uses.
// [Parallel] adds two filters over a common denominator.
package transform
