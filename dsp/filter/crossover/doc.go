// Package crossover splits a signal into frequency bands with
// Linkwitz-Riley filters from the design package.
//
// [Crossover] is a two-way network whose lowpass and highpass outputs are
// -6.02 dB at the crossover frequency and sum to an allpass response.
// [MultiBand] cascades two-way stages and phase-compensates the lower
// bands so that all bands still sum to an allpass.
//
//	xo, err := crossover.New(1000, 4, 48000) // LR4 at 1 kHz
//	lo, hi := xo.ProcessSample(x)
package crossover
