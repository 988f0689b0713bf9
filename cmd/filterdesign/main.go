// Command filterdesign designs IIR and FIR filters and applies them to
// WAV files.
//
// Usage:
//
//	filterdesign design --family cheby1 --kind bandpass --cutoff 300,3000 --order 4
//	filterdesign design --file filters.yaml -o yaml
//	filterdesign response --family bessel --cutoff 1000 --points 32
//	filterdesign apply --family lr --cutoff 120 --order 4 in.wav out.wav
//
// Every design flag can also be set in the config file or through the
// environment as FILTERDESIGN_<FLAG>, e.g. FILTERDESIGN_SAMPLE_RATE=44100.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
