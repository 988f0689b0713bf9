// Package prototype computes normalised analog lowpass prototypes for the
// classical IIR filter families.
//
// Every prototype is a zeros/poles/gain description of H(s) with its critical
// frequency at 1 rad/s:
//
//	H(s) = Gain * prod(s - Zeros[i]) / prod(s - Poles[i])
//
// All poles lie strictly in the left half-plane. Complex roots are listed as
// adjacent conjugate pairs with the positive imaginary part first; a real
// pole of an odd-order design is listed last.
//
// For Butterworth, Chebyshev Type I and Elliptic prototypes 1 rad/s is the
// passband edge. Chebyshev Type II places the stopband edge there, and Bessel
// prototypes are normalised to their -3 dB frequency.
package prototype
