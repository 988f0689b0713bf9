package design_test

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
)

func ExampleButterworth() {
	r, err := design.Butterworth(design.Lowpass, design.Freq(1000), 48000, 4)
	if err != nil {
		panic(err)
	}

	fmt.Printf("order %d in %d sections\n", r.Order(), len(r.Sections))
	fmt.Printf("|H(DC)| = %.4f, cutoff %.2f dB\n", cmplx.Abs(r.Response(0, 48000)), r.MagnitudeDB(1000, 48000))
	// Output:
	// order 4 in 2 sections
	// |H(DC)| = 1.0000, cutoff -3.01 dB
}

func ExampleDesign() {
	r, err := design.Design(design.Spec{
		Family:     design.FamilyLinkwitzRiley,
		Kind:       design.Highpass,
		Cutoff:     design.Freq(2000),
		SampleRate: 48000,
	})
	if err != nil {
		panic(err)
	}

	fmt.Printf("order %d, %.2f dB at the crossover\n", r.Order(), r.MagnitudeDB(2000, 48000))
	// Output:
	// order 4, -6.02 dB at the crossover
}
