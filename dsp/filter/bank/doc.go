// Package bank builds octave, fractional-octave and custom filter banks
// from the bandpass designs of the design package.
//
// Centre frequencies follow the IEC 61260 base-10 system:
//
//	G = 10^(3/10)
//	f_m = 1000 * G^(k/N)         for 1/N-octave bands
//	f_1, f_2 = f_m * G^(-+1/(2N))
//
// Every band is a bandpass filter between f_1 and f_2, Butterworth by
// default, with 0 dB gain at sqrt(f_1*f_2) = f_m.
//
//	b, err := bank.Octave(3, 48000, bank.WithFrequencyRange(100, 10000))
//	outputs := b.ProcessSample(x)
package bank
