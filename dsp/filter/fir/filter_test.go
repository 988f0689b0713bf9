package fir

import (
	"math"
	"math/cmplx"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func run(f *Filter, input []float64) []float64 {
	out := make([]float64, len(input))
	for i, x := range input {
		out[i] = f.ProcessSample(x)
	}

	return out
}

func TestNew_CopiesTaps(t *testing.T) {
	taps := []float64{0.25, 0.5, 0.25}
	f := New(taps)
	taps[0] = 999

	if f.Order() != 2 {
		t.Fatalf("Order = %d, want 2", f.Order())
	}

	c := f.Coefficients()
	if c[0] != 0.25 {
		t.Fatalf("New did not copy: %v", c)
	}

	c[1] = 999
	if f.coeffs[1] != 0.5 {
		t.Error("Coefficients did not return a copy")
	}
}

func TestNew_PanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()

	New(nil)
}

func TestProcessSample(t *testing.T) {
	tests := []struct {
		name  string
		taps  []float64
		input []float64
		want  []float64
	}{
		{"impulse", []float64{0.25, 0.5, 0.25}, []float64{1, 0, 0, 0, 0}, []float64{0.25, 0.5, 0.25, 0, 0}},
		{"moving average", []float64{1.0 / 3, 1.0 / 3, 1.0 / 3}, []float64{1, 1, 1, 1, 1}, []float64{1.0 / 3, 2.0 / 3, 1, 1, 1}},
		{"difference", []float64{1, -1}, []float64{0, 1, 3, 6, 10}, []float64{0, 1, 2, 3, 4}},
		{"gain", []float64{0.5}, []float64{1, 2, 3}, []float64{0.5, 1, 1.5}},
		{"delay", []float64{0, 0, 0, 1}, []float64{1, 2, 3, 4, 5, 6}, []float64{0, 0, 0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(New(tt.taps), tt.input)
			for i := range tt.want {
				if !almostEqual(got[i], tt.want[i], eps) {
					t.Errorf("y[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	taps := []float64{0.1, -0.2, 0.4, 0.3, -0.05}
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, 0.1, -0.4, 0.9}
	ref := run(New(taps), input)

	block := append([]float64(nil), input...)
	New(taps).ProcessBlock(block)

	dst := make([]float64, len(input))
	New(taps).ProcessBlockTo(dst, input)

	for i := range ref {
		if !almostEqual(block[i], ref[i], eps) || !almostEqual(dst[i], ref[i], eps) {
			t.Errorf("sample %d: block %v, to %v, scalar %v", i, block[i], dst[i], ref[i])
		}
	}
}

func TestReset(t *testing.T) {
	f := New([]float64{0.25, 0.5, 0.25})
	f.ProcessSample(1)
	f.ProcessSample(0.5)
	f.Reset()

	got := run(f, []float64{1, 0, 0})
	for i, want := range []float64{0.25, 0.5, 0.25} {
		if !almostEqual(got[i], want, eps) {
			t.Errorf("y[%d] after reset = %v, want %v", i, got[i], want)
		}
	}
}

func TestResponse(t *testing.T) {
	f := New([]float64{0.25, 0.5, 0.25})

	if h := f.Response(0, 48000); !almostEqual(real(h), 1, eps) || !almostEqual(imag(h), 0, eps) {
		t.Errorf("DC response = %v, want 1", h)
	}

	if h := f.Response(24000, 48000); !almostEqual(cmplx.Abs(h), 0, eps) {
		t.Errorf("Nyquist response = %v, want 0", h)
	}

	// H(w) = e^{-jw} * (0.5 + 0.5 cos w)
	w := 2 * math.Pi * 6000 / 48000
	want := cmplx.Exp(complex(0, -w)) * complex(0.5+0.5*math.Cos(w), 0)

	if h := f.Response(6000, 48000); cmplx.Abs(h-want) > eps {
		t.Errorf("Response(6 kHz) = %v, want %v", h, want)
	}

	if db := f.MagnitudeDB(6000, 48000); !almostEqual(db, 20*math.Log10(cmplx.Abs(want)), 1e-10) {
		t.Errorf("MagnitudeDB = %v", db)
	}
}

func TestIsLinearPhase(t *testing.T) {
	tests := []struct {
		taps []float64
		want bool
	}{
		{[]float64{0.25, 0.5, 0.25}, true},
		{[]float64{1, -1}, true},
		{[]float64{1, 0, -1}, true},
		{[]float64{1, 0.5, -1}, false},
		{[]float64{0.3, 0.5, 0.1}, false},
	}

	for _, tt := range tests {
		if got := New(tt.taps).IsLinearPhase(1e-12); got != tt.want {
			t.Errorf("IsLinearPhase(%v) = %v, want %v", tt.taps, got, tt.want)
		}
	}

	if d := New(make([]float64, 101)).GroupDelay(); d != 50 {
		t.Errorf("GroupDelay = %v, want 50", d)
	}
}

func BenchmarkProcessBlock(b *testing.B) {
	taps := make([]float64, 127)
	for i := range taps {
		taps[i] = math.Sin(float64(i)) / 127
	}

	f := New(taps)
	buf := make([]float64, 1024)

	for b.Loop() {
		f.ProcessBlock(buf)
	}
}
