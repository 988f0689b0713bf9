package prototype

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

func assertLeftHalfPlane(t *testing.T, p Prototype) {
	t.Helper()

	for i, pole := range p.Poles {
		if real(pole) >= 0 {
			t.Fatalf("pole %d = %v is not in the left half-plane", i, pole)
		}
	}
}

func assertConjugateLayout(t *testing.T, roots []complex128) {
	t.Helper()

	i := 0
	for i < len(roots) {
		r := roots[i]
		if imag(r) == 0 {
			i++
			continue
		}

		if i+1 >= len(roots) || roots[i+1] != cmplx.Conj(r) || imag(r) < 0 {
			t.Fatalf("root %d = %v is not followed by its conjugate: %v", i, r, roots)
		}

		i += 2
	}
}

func TestButterworth(t *testing.T) {
	for n := 1; n <= MaxOrder; n++ {
		p, err := Butterworth(n)
		if err != nil {
			t.Fatalf("order %d: %v", n, err)
		}

		if p.Order() != n || len(p.Zeros) != 0 {
			t.Fatalf("order %d: got %d poles, %d zeros", n, p.Order(), len(p.Zeros))
		}

		assertLeftHalfPlane(t, p)
		assertConjugateLayout(t, p.Poles)

		for i, pole := range p.Poles {
			if math.Abs(cmplx.Abs(pole)-1) > 1e-14 {
				t.Errorf("order %d pole %d: |p| = %v, want 1", n, i, cmplx.Abs(pole))
			}
		}

		if got := cmplx.Abs(p.Response(0)); math.Abs(got-1) > 1e-12 {
			t.Errorf("order %d: |H(0)| = %v, want 1", n, got)
		}

		if got := p.MagnitudeDB(1); math.Abs(got+10*math.Log10(2)) > 1e-9 {
			t.Errorf("order %d: |H(j1)| = %v dB, want -3.0103", n, got)
		}
	}
}

func TestChebyshev1_Ripple(t *testing.T) {
	for _, rippleDB := range []float64{0.1, 0.5, 1, 3} {
		for n := 1; n <= 8; n++ {
			p, err := Chebyshev1(n, rippleDB)
			if err != nil {
				t.Fatal(err)
			}

			assertLeftHalfPlane(t, p)
			assertConjugateLayout(t, p.Poles)

			if got := p.MagnitudeDB(1); math.Abs(got+rippleDB) > 1e-9 {
				t.Errorf("n=%d Rp=%v: |H(j1)| = %v dB, want %v", n, rippleDB, got, -rippleDB)
			}

			wantDC := 0.0
			if n%2 == 0 {
				wantDC = -rippleDB
			}

			if got := p.MagnitudeDB(0); math.Abs(got-wantDC) > 1e-9 {
				t.Errorf("n=%d Rp=%v: |H(0)| = %v dB, want %v", n, rippleDB, got, wantDC)
			}

			for w := 0.0; w <= 1; w += 0.01 {
				db := p.MagnitudeDB(w)
				if db > 1e-9 || db < -rippleDB-1e-9 {
					t.Fatalf("n=%d Rp=%v: %v dB at w=%v outside ripple band", n, rippleDB, db, w)
				}
			}
		}
	}
}

func TestChebyshev1_PolesOnEllipse(t *testing.T) {
	const n, rippleDB = 5, 0.5

	p, err := Chebyshev1(n, rippleDB)
	if err != nil {
		t.Fatal(err)
	}

	eps := math.Sqrt(math.Pow(10, rippleDB/10) - 1)
	a := math.Asinh(1/eps) / n

	for i, pole := range p.Poles {
		x := real(pole) / math.Sinh(a)
		y := imag(pole) / math.Cosh(a)

		if v := x*x + y*y; math.Abs(v-1) > 1e-12 {
			t.Errorf("pole %d = %v: ellipse equation gives %v", i, pole, v)
		}
	}
}

func TestChebyshev2_StopbandEdge(t *testing.T) {
	for _, attenuationDB := range []float64{20, 40, 60} {
		for n := 1; n <= 9; n++ {
			p, err := Chebyshev2(n, attenuationDB)
			if err != nil {
				t.Fatal(err)
			}

			assertLeftHalfPlane(t, p)

			if len(p.Zeros) != 2*(n/2) {
				t.Fatalf("n=%d: %d zeros, want %d", n, len(p.Zeros), 2*(n/2))
			}

			for _, z := range p.Zeros {
				if real(z) != 0 || math.Abs(imag(z)) < 1 {
					t.Errorf("n=%d: zero %v not on the imaginary axis beyond 1", n, z)
				}
			}

			if got := cmplx.Abs(p.Response(0)); math.Abs(got-1) > 1e-12 {
				t.Errorf("n=%d: |H(0)| = %v, want 1", n, got)
			}

			if got := p.MagnitudeDB(1); math.Abs(got+attenuationDB) > 1e-8 {
				t.Errorf("n=%d: |H(j1)| = %v dB, want %v", n, got, -attenuationDB)
			}

			for w := 1.0; w < 20; w *= 1.05 {
				if db := p.MagnitudeDB(w); db > -attenuationDB+1e-8 {
					t.Fatalf("n=%d: %v dB at w=%v above the stopband floor", n, db, w)
				}
			}
		}
	}
}

func TestElliptic(t *testing.T) {
	cases := []struct{ rippleDB, attenuationDB float64 }{
		{1, 40},
		{0.5, 60},
		{3, 20},
		{0.1, 80},
	}

	for _, c := range cases {
		for n := 1; n <= MaxOrder; n++ {
			p, err := Elliptic(n, c.rippleDB, c.attenuationDB)
			if err != nil {
				t.Fatalf("n=%d %+v: %v", n, c, err)
			}

			assertLeftHalfPlane(t, p)
			assertConjugateLayout(t, p.Poles)

			if p.Order() != n || len(p.Zeros) != 2*(n/2) {
				t.Fatalf("n=%d: %d poles, %d zeros", n, p.Order(), len(p.Zeros))
			}

			if got := p.MagnitudeDB(1); math.Abs(got+c.rippleDB) > 1e-6 {
				t.Errorf("n=%d %+v: |H(j1)| = %v dB", n, c, got)
			}

			for w := 0.0; w <= 1; w += 0.005 {
				db := p.MagnitudeDB(w)
				if db > 1e-6 || db < -c.rippleDB-1e-6 {
					t.Fatalf("n=%d %+v: %v dB at w=%v outside the ripple band", n, c, db, w)
				}
			}

			ws := EllipticStopbandEdge(n, c.rippleDB, c.attenuationDB)
			for i := range 200 {
				w := ws * (1 + float64(i)/50)
				if db := p.MagnitudeDB(w); db > -c.attenuationDB+1e-6 {
					t.Fatalf("n=%d %+v: %v dB at w=%v above the stopband floor", n, c, db, w)
				}
			}
		}
	}
}

func TestElliptic_RejectsAttenuationBelowRipple(t *testing.T) {
	_, err := Elliptic(4, 3, 3)
	if !errors.Is(err, ErrInvalidAttenuation) {
		t.Fatalf("expected ErrInvalidAttenuation, got %v", err)
	}
}

func TestBessel_MinusThreeDB(t *testing.T) {
	for n := 1; n <= MaxOrder; n++ {
		p, err := Bessel(n)
		if err != nil {
			t.Fatalf("order %d: %v", n, err)
		}

		if p.Order() != n {
			t.Fatalf("order %d: got %d poles", n, p.Order())
		}

		assertLeftHalfPlane(t, p)
		assertConjugateLayout(t, p.Poles)

		if got := p.MagnitudeDB(1); math.Abs(got+10*math.Log10(2)) > 1e-9 {
			t.Errorf("order %d: |H(j1)| = %v dB, want -3.0103", n, got)
		}

		if got := cmplx.Abs(p.Response(0)); math.Abs(got-1) > 1e-12 {
			t.Errorf("order %d: |H(0)| = %v, want 1", n, got)
		}
	}
}

// The static table must match the roots of the generating polynomial, found
// here independently through the companion matrix.
func TestBessel_TableMatchesPolynomialRoots(t *testing.T) {
	for n := 1; n <= maxTabulatedBesselOrder; n++ {
		roots, err := polyroot.CompanionRoots(ReverseBesselPoly(n))
		if err != nil {
			t.Fatalf("order %d: %v", n, err)
		}

		for _, want := range withConjugates(besselDelayPoles[n]) {
			best := math.Inf(1)
			for _, r := range roots {
				best = math.Min(best, cmplx.Abs(r-want))
			}

			if best > 1e-8*cmplx.Abs(want) {
				t.Errorf("order %d: table pole %v is %e away from the nearest root", n, want, best)
			}
		}

		if got := BesselCutoffScale(n); got != besselScaleFactors[n] {
			t.Errorf("order %d: BesselCutoffScale = %v, want table value", n, got)
		}
	}
}

func TestReverseBesselPoly(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{0, []float64{1}},
		{1, []float64{1, 1}},
		{2, []float64{1, 3, 3}},
		{3, []float64{1, 6, 15, 15}},
		{4, []float64{1, 10, 45, 105, 105}},
	}
	for _, tt := range tests {
		got := ReverseBesselPoly(tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("n=%d: got %v, want %v", tt.n, got, tt.want)
		}

		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("n=%d: got %v, want %v", tt.n, got, tt.want)
			}
		}
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
		want error
	}{
		{"order zero", func() error { _, err := Butterworth(0); return err }, ErrInvalidOrder},
		{"order too high", func() error { _, err := Bessel(MaxOrder + 1); return err }, ErrOrderTooHigh},
		{"zero ripple", func() error { _, err := Chebyshev1(4, 0); return err }, ErrInvalidRipple},
		{"ripple above ceiling", func() error { _, err := Elliptic(4, 12, 40); return err }, ErrInvalidRipple},
		{"negative attenuation", func() error { _, err := Chebyshev2(4, -1); return err }, ErrInvalidAttenuation},
		{"NaN attenuation", func() error { _, err := Chebyshev2(4, math.NaN()); return err }, ErrInvalidAttenuation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}

	if !errors.Is(ErrOrderTooHigh, ErrInvalidOrder) {
		t.Fatal("ErrOrderTooHigh must wrap ErrInvalidOrder")
	}
}
