package biquad

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

type processFn func(c Coefficients, d0, d1 float64, buf []float64) (float64, float64)

type kernel struct {
	name      string
	supported func(cpu.Features) bool
	process   processFn
}

// kernels is ordered by preference; the last entry must run everywhere.
var kernels = []kernel{
	{name: "fma", supported: hasFMA, process: processFMA},
	{name: "unroll2", supported: func(cpu.Features) bool { return true }, process: processUnroll2},
}

var (
	kernelOnce sync.Once
	selected   kernel
)

func activeKernel() kernel {
	kernelOnce.Do(func() { selected = selectKernel(cpu.DetectFeatures()) })

	return selected
}

func selectKernel(f cpu.Features) kernel {
	for _, k := range kernels {
		if k.supported(f) {
			return k
		}
	}

	return kernels[len(kernels)-1]
}

// hasFMA reports whether math.FMA compiles to a hardware instruction.
// Every AVX2 part also implements FMA3, and arm64 always has fused
// multiply-add. Elsewhere math.FMA falls back to a slow software routine.
func hasFMA(f cpu.Features) bool {
	return cpu.Supports(f, cpu.SIMDAVX2) || cpu.Supports(f, cpu.SIMDNEON)
}

func processUnroll2(c Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i, n := 0, len(buf)
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		e0 := b1*x0 - a1*y0 + d1
		e1 := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + e0
		d0 = b1*x1 - a1*y1 + e1
		d1 = b2*x1 - a2*y1

		buf[i], buf[i+1] = y0, y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}

// processFMA rounds once per tap and leaves two fused operations on the
// feedback path from y[n] to y[n+1] instead of a multiply and two adds.
func processFMA(c Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	na1, na2 := -c.A1, -c.A2

	for i, x := range buf {
		y := math.FMA(b0, x, d0)
		d0 = math.FMA(na1, y, math.FMA(b1, x, d1))
		d1 = math.FMA(na2, y, b2*x)
		buf[i] = y
	}

	return d0, d1
}
