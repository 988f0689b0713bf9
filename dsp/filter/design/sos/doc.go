// Package sos turns zeros/poles/gain into cascades of biquad sections and
// owns the gain-normalisation step shared by every designer.
//
// Poles and zeros are grouped into conjugate pairs, pairs of real roots and
// at most one single real root. Each pole group becomes one section, second
// order first in order of decreasing imaginary part, so a trailing
// first-order section is always last. Gain corrections are applied to the
// numerator of the last section only.
package sos
