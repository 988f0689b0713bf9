package design

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/window"
	"github.com/tphakala/simd/f64"
)

// MaxTaps bounds the length of windowed-sinc designs.
const MaxTaps = 8191

// Window selects the taper of a windowed-sinc FIR design.
type Window int

const (
	WindowHamming Window = iota
	WindowHann
	WindowBlackman
	WindowBartlett
	WindowFlatTop
	WindowRectangular
)

var windows = [...]struct {
	name string
	fn   func(int) []float64
}{
	WindowHamming:     {"hamming", window.Hamming},
	WindowHann:        {"hann", window.Hann},
	WindowBlackman:    {"blackman", window.Blackman},
	WindowBartlett:    {"bartlett", window.Bartlett},
	WindowFlatTop:     {"flattop", window.FlatTop},
	WindowRectangular: {"rectangular", window.Rectangular},
}

func (w Window) String() string {
	if w >= 0 && int(w) < len(windows) {
		return windows[w].name
	}

	return fmt.Sprintf("Window(%d)", int(w))
}

// ParseWindow resolves a window by name.
func ParseWindow(s string) (Window, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, w := range windows {
		if w.name == name {
			return Window(i), nil
		}
	}

	if name == "hanning" {
		return WindowHann, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedWindow, s)
}

// FIR designs a linear-phase windowed-sinc filter with an odd number of
// taps. Highpass and bandstop responses are obtained by spectral inversion
// of the lowpass and bandpass kernels. The taps are scaled to unit gain at
// the same reference points as the IIR designs.
func FIR(kind Kind, cutoff Cutoff, fs float64, taps int, win Window) (*Result, error) {
	if !kind.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedKind, kind)
	}

	if taps < 3 || taps%2 == 0 || taps > MaxTaps {
		return nil, fmt.Errorf("%w: %d must be odd and in [3, %d]", ErrInvalidTaps, taps, MaxTaps)
	}

	if !(fs > 0) || math.IsInf(fs, 1) {
		return nil, fmt.Errorf("%w: %g Hz must be positive and finite", ErrInvalidSampleRate, fs)
	}

	if err := cutoff.validate(kind, fs); err != nil {
		return nil, err
	}

	if win < 0 || int(win) >= len(windows) {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedWindow, win)
	}

	var h []float64
	if kind.IsBand() {
		h = bandSinc(taps, cutoff.F1/fs, cutoff.F2/fs)
	} else {
		h = sinc(taps, cutoff.F1/fs)
	}

	vecmath.MulBlockInPlace(h, windows[win].fn(taps))

	if kind == Highpass || kind == Bandstop {
		invert(h)
	}

	res := &Result{B: h, A: []float64{1}}

	var mag float64
	if z0 := referencePoint(kind, cutoff, fs); z0 == 1 {
		mag = math.Abs(f64.Sum(h))
	} else {
		mag = cmplx.Abs(res.ResponseAt(z0))
	}

	if mag < 1e-12 || math.IsNaN(mag) {
		return nil, fmt.Errorf("%w: FIR gain %g at the reference point", ErrNumericallyUnstable, mag)
	}

	f64.Scale(h, h, 1/mag)

	return res, nil
}

// sinc returns the ideal lowpass kernel for the normalised cutoff fc
// (cycles per sample), centred in taps samples.
func sinc(taps int, fc float64) []float64 {
	h := make([]float64, taps)
	mid := taps / 2

	for n := range h {
		x := float64(n - mid)
		if x == 0 {
			h[n] = 2 * fc
			continue
		}

		h[n] = math.Sin(2*math.Pi*fc*x) / (math.Pi * x)
	}

	return h
}

func bandSinc(taps int, f1, f2 float64) []float64 {
	h := sinc(taps, f2)
	lo := sinc(taps, f1)

	for i := range h {
		h[i] -= lo[i]
	}

	return h
}

// invert turns h into delta - h in place.
func invert(h []float64) {
	for i := range h {
		h[i] = -h[i]
	}

	h[len(h)/2]++
}
