// Package testutil holds signal generators and measurements shared by the
// filter tests.
package testutil

import (
	"math"
	"math/rand"
)

// Sine returns n samples of a unit-amplitude sine at freqHz.
func Sine(freqHz, fs float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freqHz / fs

	for i := range out {
		out[i] = math.Sin(step * float64(i))
	}

	return out
}

// Noise returns n samples of uniform white noise in [-1, 1) from a fixed
// seed.
func Noise(seed int64, n int) []float64 {
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}

	return out
}

// Impulse returns a unit impulse of length n at index 0.
func Impulse(n int) []float64 {
	out := make([]float64, n)
	if n > 0 {
		out[0] = 1
	}

	return out
}

// RMS returns the root mean square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var sum float64
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(x)))
}

// ToneGainDB runs a sine at freqHz through process and returns the
// steady-state gain in dB, measured by RMS over the second half of n
// samples. process filters the block in place.
func ToneGainDB(process func([]float64), freqHz, fs float64, n int) float64 {
	x := Sine(freqHz, fs, n)
	process(x)

	// A unit sine has RMS 1/sqrt(2).
	return 20 * math.Log10(RMS(x[n/2:])*math.Sqrt2)
}
