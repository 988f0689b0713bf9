package fir_test

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/fir"
)

func ExampleFilter_ProcessSample() {
	f := fir.New([]float64{1.0 / 3, 1.0 / 3, 1.0 / 3})

	for i, x := range []float64{0, 1, 2, 3, 3, 3} {
		fmt.Printf("y[%d] = %.4f\n", i, f.ProcessSample(x))
	}
	// Output:
	// y[0] = 0.0000
	// y[1] = 0.3333
	// y[2] = 1.0000
	// y[3] = 2.0000
	// y[4] = 2.6667
	// y[5] = 3.0000
}

func ExampleNew_windowedSinc() {
	r, err := design.FIR(design.Lowpass, design.Freq(1000), 48000, 63, design.WindowHamming)
	if err != nil {
		panic(err)
	}

	f := fir.New(r.B)
	fmt.Printf("order %d, linear phase %v, delay %.0f samples\n", f.Order(), f.IsLinearPhase(1e-12), f.GroupDelay())
	// Output:
	// order 62, linear phase true, delay 31 samples
}
