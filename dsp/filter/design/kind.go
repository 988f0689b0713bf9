package design

import (
	"fmt"
	"strings"
)

// Kind selects the passband shape.
type Kind int

const (
	Lowpass Kind = iota
	Highpass
	Bandpass
	Bandstop
)

var kindNames = [...]string{"lowpass", "highpass", "bandpass", "bandstop"}

func (k Kind) String() string {
	if k.valid() {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) valid() bool { return k >= Lowpass && k <= Bandstop }

// IsBand reports whether the kind takes two band edges.
func (k Kind) IsBand() bool { return k == Bandpass || k == Bandstop }

// ParseKind accepts the kind names and the short forms lp, hp, bp, bs and
// notch.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lowpass", "lp":
		return Lowpass, nil
	case "highpass", "hp":
		return Highpass, nil
	case "bandpass", "bp":
		return Bandpass, nil
	case "bandstop", "bs", "notch":
		return Bandstop, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}

// Family selects the approximation.
type Family int

const (
	FamilyButterworth Family = iota
	FamilyChebyshev1
	FamilyChebyshev2
	FamilyElliptic
	FamilyBessel
	FamilyLinkwitzRiley
)

var familyNames = [...]string{"butterworth", "chebyshev1", "chebyshev2", "elliptic", "bessel", "linkwitz-riley"}

func (f Family) String() string {
	if f >= FamilyButterworth && f <= FamilyLinkwitzRiley {
		return familyNames[f]
	}

	return fmt.Sprintf("Family(%d)", int(f))
}

// ParseFamily accepts the family names plus common abbreviations.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "butterworth", "butter":
		return FamilyButterworth, nil
	case "chebyshev1", "cheby1", "cheb1":
		return FamilyChebyshev1, nil
	case "chebyshev2", "cheby2", "cheb2":
		return FamilyChebyshev2, nil
	case "elliptic", "ellip", "cauer":
		return FamilyElliptic, nil
	case "bessel":
		return FamilyBessel, nil
	case "linkwitz-riley", "linkwitzriley", "lr":
		return FamilyLinkwitzRiley, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFamily, s)
}
