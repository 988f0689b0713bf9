package transform

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design/prototype"
)

const minus3dB = -3.010299956639812

func butterworth(t *testing.T, n int) ZPK {
	t.Helper()

	p, err := prototype.Butterworth(n)
	if err != nil {
		t.Fatal(err)
	}

	return FromPrototype(p)
}

func db(h complex128) float64 { return 20 * math.Log10(cmplx.Abs(h)) }

func TestPrewarpUnwarp(t *testing.T) {
	const fs = 48000.0

	for _, f := range []float64{10, 1000, 12000, 23000} {
		w := Prewarp(f, fs)
		if got := Unwarp(w, fs); math.Abs(got-f) > 1e-9*f {
			t.Errorf("Unwarp(Prewarp(%v)) = %v", f, got)
		}
	}

	// Low frequencies are barely warped.
	if w := Prewarp(10, fs); math.Abs(w-2*math.Pi*10)/(2*math.Pi*10) > 1e-6 {
		t.Errorf("Prewarp(10) = %v, want ~%v", w, 2*math.Pi*10)
	}
}

func TestLowpassToLowpass(t *testing.T) {
	const wc = 250.0

	lp, err := LowpassToLowpass(butterworth(t, 4), wc)
	if err != nil {
		t.Fatal(err)
	}

	if got := cmplx.Abs(lp.Eval(0)); math.Abs(got-1) > 1e-12 {
		t.Errorf("|H(0)| = %v, want 1", got)
	}

	if got := db(lp.Eval(complex(0, wc))); math.Abs(got-minus3dB) > 1e-9 {
		t.Errorf("|H(j wc)| = %v dB, want -3.01", got)
	}
}

func TestLowpassToHighpass(t *testing.T) {
	const wc = 3.0

	for _, n := range []int{3, 4} {
		hp, err := LowpassToHighpass(butterworth(t, n), wc)
		if err != nil {
			t.Fatal(err)
		}

		if len(hp.Zeros) != n {
			t.Fatalf("n=%d: %d zeros, want %d at the origin", n, len(hp.Zeros), n)
		}

		for _, z := range hp.Zeros {
			if z != 0 {
				t.Errorf("zero %v not at the origin", z)
			}
		}

		if got := cmplx.Abs(hp.Eval(complex(0, 1e7))); math.Abs(got-1) > 1e-6 {
			t.Errorf("n=%d: |H(j inf)| = %v, want 1", n, got)
		}

		if got := db(hp.Eval(complex(0, wc))); math.Abs(got-minus3dB) > 1e-9 {
			t.Errorf("n=%d: |H(j wc)| = %v dB, want -3.01", n, got)
		}
	}
}

func TestLowpassToHighpass_DropsZeroAtOrigin(t *testing.T) {
	// H(s) = s/(s+1) has a zero at the origin; its highpass image
	// (wc/s)/(wc/s+1) = wc/(s+wc) has no finite zero.
	lp := ZPK{Zeros: []complex128{0}, Poles: []complex128{-1}, Gain: 1}

	hp, err := LowpassToHighpass(lp, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(hp.Zeros) != 0 || len(hp.Poles) != 1 || hp.Poles[0] != -2 {
		t.Fatalf("got %+v", hp)
	}

	for _, w := range []float64{0, 1, 5} {
		s := complex(0, w)
		want := 2 / (s + 2)

		if got := hp.Eval(s); cmplx.Abs(got-want) > 1e-12 {
			t.Errorf("H(j%v) = %v, want %v", w, got, want)
		}
	}
}

func TestLowpassToBandpass(t *testing.T) {
	const w1, w2 = 2.0, 8.0

	w0 := math.Sqrt(w1 * w2)

	for _, n := range []int{2, 3} {
		bp, err := LowpassToBandpass(butterworth(t, n), w0, w2-w1)
		if err != nil {
			t.Fatal(err)
		}

		if len(bp.Poles) != 2*n || len(bp.Zeros) != n {
			t.Fatalf("n=%d: %d poles, %d zeros", n, len(bp.Poles), len(bp.Zeros))
		}

		if got := cmplx.Abs(bp.Eval(complex(0, w0))); math.Abs(got-1) > 1e-12 {
			t.Errorf("n=%d: |H(j w0)| = %v, want 1", n, got)
		}

		for _, w := range []float64{w1, w2} {
			if got := db(bp.Eval(complex(0, w))); math.Abs(got-minus3dB) > 1e-9 {
				t.Errorf("n=%d: |H(j%v)| = %v dB, want -3.01", n, w, got)
			}
		}

		for _, p := range bp.Poles {
			if real(p) >= 0 {
				t.Errorf("n=%d: pole %v in the right half-plane", n, p)
			}
		}
	}
}

func TestLowpassToBandstop(t *testing.T) {
	const w1, w2 = 2.0, 8.0

	w0 := math.Sqrt(w1 * w2)

	bs, err := LowpassToBandstop(butterworth(t, 3), w0, w2-w1)
	if err != nil {
		t.Fatal(err)
	}

	if len(bs.Poles) != 6 || len(bs.Zeros) != 6 {
		t.Fatalf("%d poles, %d zeros", len(bs.Poles), len(bs.Zeros))
	}

	for _, z := range bs.Zeros {
		if math.Abs(real(z)) > 1e-12 || math.Abs(math.Abs(imag(z))-w0) > 1e-12 {
			t.Errorf("zero %v not at +-j w0", z)
		}
	}

	if got := cmplx.Abs(bs.Eval(0)); math.Abs(got-1) > 1e-12 {
		t.Errorf("|H(0)| = %v, want 1", got)
	}

	if got := cmplx.Abs(bs.Eval(complex(0, 1e6))); math.Abs(got-1) > 1e-6 {
		t.Errorf("|H(j inf)| = %v, want 1", got)
	}

	for _, w := range []float64{w1, w2} {
		if got := db(bs.Eval(complex(0, w))); math.Abs(got-minus3dB) > 1e-9 {
			t.Errorf("|H(j%v)| = %v dB, want -3.01", w, got)
		}
	}
}

func TestLowpassToBandstop_FiniteZeros(t *testing.T) {
	p, err := prototype.Chebyshev2(4, 40)
	if err != nil {
		t.Fatal(err)
	}

	bs, err := LowpassToBandstop(FromPrototype(p), 3, 2)
	if err != nil {
		t.Fatal(err)
	}

	if len(bs.Zeros) != 8 || len(bs.Poles) != 8 {
		t.Fatalf("%d zeros, %d poles", len(bs.Zeros), len(bs.Poles))
	}

	// s -> bw*s/(s^2+w0^2) maps DC and infinity onto the prototype DC.
	if got := cmplx.Abs(bs.Eval(0)); math.Abs(got-1) > 1e-12 {
		t.Errorf("|H(0)| = %v, want 1", got)
	}
}

func TestBilinearZPK_MatchesAnalogOnWarpedAxis(t *testing.T) {
	const fs = 1000.0

	lp, err := LowpassToLowpass(butterworth(t, 5), Prewarp(100, fs))
	if err != nil {
		t.Fatal(err)
	}

	d, err := BilinearZPK(lp, fs)
	if err != nil {
		t.Fatal(err)
	}

	if len(d.Zeros) != 5 {
		t.Fatalf("%d zeros, want 5 at z = -1", len(d.Zeros))
	}

	for _, p := range d.Poles {
		if cmplx.Abs(p) >= 1 {
			t.Errorf("digital pole %v outside the unit circle", p)
		}
	}

	for _, f := range []float64{0, 50, 100, 300, 450} {
		omega := 2 * math.Pi * f / fs
		z := cmplx.Exp(complex(0, omega))
		s := complex(0, 2*fs*math.Tan(omega/2))

		if got, want := d.Eval(z), lp.Eval(s); cmplx.Abs(got-want) > 1e-9 {
			t.Errorf("f=%v: digital %v, analog %v", f, got, want)
		}
	}
}

func TestBilinearBiquad_MatchesAnalog(t *testing.T) {
	const fs = 8000.0

	num := [3]float64{1, 0, 4e6}
	den := [3]float64{1, 1500, 9e6}

	c, err := BilinearBiquad(num, den, fs)
	if err != nil {
		t.Fatal(err)
	}

	for _, f := range []float64{0, 200, 1000, 3000} {
		omega := 2 * math.Pi * f / fs
		s := complex(0, 2*fs*math.Tan(omega/2))
		want := (s*s + 4e6) / (s*s + 1500*s + 9e6)

		if got := c.Response(f, fs); cmplx.Abs(got-want) > 1e-12 {
			t.Errorf("f=%v: got %v, want %v", f, got, want)
		}
	}
}

func TestBilinearFirstOrder(t *testing.T) {
	const fs = 1000.0

	wc := Prewarp(100, fs)

	c, err := BilinearFirstOrder([2]float64{0, wc}, [2]float64{1, wc}, fs)
	if err != nil {
		t.Fatal(err)
	}

	if c.B2 != 0 || c.A2 != 0 {
		t.Fatalf("first-order section has B2=%v A2=%v", c.B2, c.A2)
	}

	if got := cmplx.Abs(c.Response(0, fs)); math.Abs(got-1) > 1e-12 {
		t.Errorf("|H(DC)| = %v, want 1", got)
	}

	if got := db(c.Response(100, fs)); math.Abs(got-minus3dB) > 1e-9 {
		t.Errorf("|H(100 Hz)| = %v dB, want -3.01", got)
	}
}

func TestErrors(t *testing.T) {
	improper := ZPK{Zeros: []complex128{-1, -2}, Poles: []complex128{-1}, Gain: 1}
	if _, err := LowpassToLowpass(improper, 2); !errors.Is(err, ErrInvalidZPK) {
		t.Errorf("expected ErrInvalidZPK, got %v", err)
	}

	originPole := ZPK{Poles: []complex128{0}, Gain: 1}
	if _, err := LowpassToHighpass(originPole, 2); !errors.Is(err, ErrInvalidZPK) {
		t.Errorf("expected ErrInvalidZPK, got %v", err)
	}

	if _, err := BilinearBiquad([3]float64{1, 0, 0}, [3]float64{0, 0, 0}, 1000); !errors.Is(err, ErrDegenerateSection) {
		t.Errorf("expected ErrDegenerateSection, got %v", err)
	}

	if _, err := BilinearZPK(ZPK{Poles: []complex128{2000}}, 1000); !errors.Is(err, ErrDegenerateSection) {
		t.Errorf("expected ErrDegenerateSection, got %v", err)
	}
}

func TestParallel_MatchesSum(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8, 12} {
		lp, err := LowpassToLowpass(butterworth(t, n), 0.6)
		if err != nil {
			t.Fatal(err)
		}

		hp, err := LowpassToHighpass(butterworth(t, n), 1.7)
		if err != nil {
			t.Fatal(err)
		}

		sum, err := Parallel(lp, hp)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		if len(sum.Poles) != 2*n || len(sum.Zeros) > 2*n {
			t.Fatalf("n=%d: %d zeros, %d poles", n, len(sum.Zeros), len(sum.Poles))
		}

		for i, z := range sum.Zeros {
			found := false
			for _, w := range sum.Zeros {
				if w == cmplx.Conj(z) {
					found = true
					break
				}
			}

			if !found {
				t.Errorf("n=%d: zero %d = %v has no exact conjugate", n, i, z)
			}
		}

		for _, w := range []float64{0, 0.1, 0.6, 1, 1.7, 5, 40} {
			s := complex(0, w)
			want := lp.Eval(s) + hp.Eval(s)

			if got := sum.Eval(s); cmplx.Abs(got-want) > 1e-9*math.Max(1, cmplx.Abs(want)) {
				t.Errorf("n=%d w=%v: H = %v, want %v", n, w, got, want)
			}
		}
	}
}

func TestParallel_Errors(t *testing.T) {
	improper := ZPK{Zeros: []complex128{-1, -2}, Poles: []complex128{-1}, Gain: 1}
	if _, err := Parallel(improper, ZPK{Poles: []complex128{-1}, Gain: 1}); !errors.Is(err, ErrInvalidZPK) {
		t.Errorf("expected ErrInvalidZPK, got %v", err)
	}

	a := ZPK{Poles: []complex128{-1}, Gain: 1}
	b := ZPK{Poles: []complex128{-1}, Gain: -1}

	if _, err := Parallel(a, b); !errors.Is(err, ErrInvalidZPK) {
		t.Errorf("expected ErrInvalidZPK for cancelling branches, got %v", err)
	}
}
