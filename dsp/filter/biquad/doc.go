// Package biquad is the runtime for second-order IIR sections.
//
// A [Section] filters samples in Direct Form II Transposed using one set of
// [Coefficients]. A [Chain] cascades sections in series; designed filters
// are handed out as chains. Coefficients carry a0 = 1 implicitly and a
// first-order section is stored with B2 = A2 = 0.
//
// Block processing picks its kernel once per process from the CPU features
// reported by algo-vecmath/cpu: a fused multiply-add loop where math.FMA is
// a hardware instruction, an unrolled plain loop elsewhere.
package biquad
