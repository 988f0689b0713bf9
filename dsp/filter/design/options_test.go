package design

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestValidationOrder(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"kind before order", func() error {
			_, err := Butterworth(Kind(9), Freq(100), 1000, 0)
			return err
		}, ErrUnsupportedKind},
		{"order before sample rate", func() error {
			_, err := Butterworth(Lowpass, Freq(100), 0, 0)
			return err
		}, ErrInvalidOrder},
		{"sample rate before cutoff", func() error {
			_, err := Butterworth(Lowpass, Freq(-1), math.NaN(), 2)
			return err
		}, ErrInvalidSampleRate},
		{"cutoff before ripple", func() error {
			_, err := Chebyshev1(Lowpass, Freq(600), 1000, 2, -1)
			return err
		}, ErrInvalidCutoff},
		{"band edges before attenuation", func() error {
			_, err := Chebyshev2(Bandpass, Band(300, 200), 1000, 2, 0)
			return err
		}, ErrInvalidBandEdges},
		{"ripple", func() error {
			_, err := Chebyshev1(Lowpass, Freq(100), 1000, 2, 11)
			return err
		}, ErrInvalidRipple},
		{"attenuation", func() error {
			_, err := Chebyshev2(Lowpass, Freq(100), 1000, 2, -3)
			return err
		}, ErrInvalidAttenuation},
		{"elliptic attenuation below ripple", func() error {
			_, err := Elliptic(Lowpass, Freq(100), 1000, 3, 3, 2)
			return err
		}, ErrInvalidAttenuation},
		{"band edge at nyquist", func() error {
			_, err := Bessel(Bandstop, Band(100, 500), 1000, 2)
			return err
		}, ErrInvalidBandEdges},
		{"linkwitz-riley order 13", func() error {
			_, err := LinkwitzRiley(Lowpass, Freq(100), 1000, 13)
			return err
		}, ErrOrderTooHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.run(), tt.want)
		})
	}
}

func TestDesign_DispatchAndDefaults(t *testing.T) {
	got, err := Design(Spec{
		Family:     FamilyElliptic,
		Kind:       Highpass,
		Cutoff:     Freq(200),
		SampleRate: 8000,
		Order:      5,
	})
	require.NoError(t, err)

	want, err := Elliptic(Highpass, Freq(200), 8000, 5, DefaultRippleDB, DefaultAttenuationDB)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	lr, err := Design(Spec{Family: FamilyLinkwitzRiley, Kind: Lowpass, Cutoff: Freq(200), SampleRate: 8000})
	require.NoError(t, err)
	assert.Equal(t, DefaultLinkwitzRileyOrder, lr.Order())

	_, err = Design(Spec{Family: Family(42), Kind: Lowpass, Cutoff: Freq(200), SampleRate: 8000, Order: 2})
	require.ErrorIs(t, err, ErrUnsupportedFamily)
}

func TestParse(t *testing.T) {
	k, err := ParseKind(" HP ")
	require.NoError(t, err)
	assert.Equal(t, Highpass, k)

	k, err = ParseKind("notch")
	require.NoError(t, err)
	assert.Equal(t, Bandstop, k)

	_, err = ParseKind("allpass")
	require.ErrorIs(t, err, ErrUnsupportedKind)

	f, err := ParseFamily("LR")
	require.NoError(t, err)
	assert.Equal(t, FamilyLinkwitzRiley, f)
	assert.Equal(t, "linkwitz-riley", f.String())

	_, err = ParseFamily("gaussian")
	require.ErrorIs(t, err, ErrUnsupportedFamily)

	assert.Equal(t, "Kind(7)", Kind(7).String())
	assert.Equal(t, "transform", BandTransform.String())
}

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	_, err := Chebyshev1(Bandstop, Band(100, 200), 1000, 3, 1, WithLogger(zap.New(core)))
	require.NoError(t, err)

	assert.Positive(t, logs.FilterMessage("prototype").Len())
	assert.Positive(t, logs.FilterMessage("parallel numerator factored").Len())

	entries := logs.FilterMessage("normalised").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "chebyshev1", entries[0].ContextMap()["family"])
	assert.Equal(t, "cascade", entries[len(entries)-1].ContextMap()["strategy"])

	// A nil logger keeps the no-op default.
	_, err = Butterworth(Lowpass, Freq(100), 1000, 2, WithLogger(nil))
	require.NoError(t, err)
}

func TestResult_ChainMatchesResponse(t *testing.T) {
	r, err := Butterworth(Lowpass, Freq(100), 1000, 3)
	require.NoError(t, err)

	c := r.Chain()
	ir := c.ImpulseResponse(4096)

	sum := 0.0
	for _, v := range ir {
		sum += v
	}

	assert.InDelta(t, 1, sum, 1e-9, "impulse response sums to the DC gain")
	assert.Equal(t, r.Order(), c.Order())
}
