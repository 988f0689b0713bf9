// Package response samples the frequency response of designed filters on
// a uniform grid from DC to just below Nyquist.
//
// The transfer-function polynomials are transformed with one FFT each, so
// a dense grid costs O(n log n) instead of one polynomial evaluation per
// point. Group delay comes from the same transforms using
//
//	tau(w) = Re( FFT(k*p[k]) / FFT(p[k]) )
//
// for numerator and denominator of every section.
package response
