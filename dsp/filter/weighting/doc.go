// Package weighting builds the IEC 61672 A, B, C and Z frequency weighting
// filters.
//
// Each curve is defined by real analog poles and zeros at DC. The poles
// are prewarped for the sample rate, mapped with the bilinear transform
// into second-order sections and scaled to 0 dB at 1 kHz. Sample rates
// must exceed [MinSampleRate] so that the 12.2 kHz pole pair stays below
// Nyquist.
package weighting
