// Package fir runs finite impulse response filters, such as the windowed
// sinc designs of the design package.
//
// A [Filter] keeps a doubled delay line so that each output is a single
// contiguous dot product. It suits filters up to a few thousand taps; it
// does not do partitioned convolution.
package fir
