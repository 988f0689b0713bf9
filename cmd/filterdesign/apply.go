package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/fir"
)

// applyBlockFrames is the number of frames read per block.
const applyBlockFrames = 8192

var errInvalidWAV = errors.New("invalid WAV file")

// processor filters one channel in place.
type processor interface {
	ProcessBlock(buf []float64)
}

func newProcessor(r *design.Result) processor {
	if len(r.Sections) == 0 {
		return fir.New(r.B)
	}

	return r.Chain()
}

func newApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <in.wav> <out.wav>",
		Short: "Filter a WAV file",
		Long: `Filter every channel of a PCM WAV file with the filter described by
the flags. The output keeps the input format; the sample rate of the file
overrides --sample-rate.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.apply(args[0], args[1])
		},
	}
}

func (a *app) apply(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer in.Close()

	dec := wav.NewDecoder(in)
	if !dec.IsValidFile() {
		return fmt.Errorf("%w: %s", errInvalidWAV, inPath)
	}

	format := dec.Format()
	bitDepth := int(dec.BitDepth)
	channels := format.NumChannels

	if channels < 1 {
		return fmt.Errorf("%w: %s has %d channels", errInvalidWAV, inPath, channels)
	}

	if bitDepth < 8 || bitDepth > 32 || bitDepth%8 != 0 {
		return fmt.Errorf("%w: %s has unsupported bit depth %d", errInvalidWAV, inPath, bitDepth)
	}

	req, err := a.request()
	if err != nil {
		return err
	}

	req.SampleRate = float64(format.SampleRate)

	r, err := req.Design(design.WithLogger(a.logger))
	if err != nil {
		return fmt.Errorf("%s: %w", title(req), err)
	}

	procs := make([]processor, channels)
	for ch := range procs {
		procs[ch] = newProcessor(r)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	enc := wav.NewEncoder(out, format.SampleRate, bitDepth, channels, int(dec.WavAudioFormat))

	buf := &audio.IntBuffer{Data: make([]int, applyBlockFrames*channels), Format: format}
	chanBuf := make([]float64, applyBlockFrames)
	pcm := pcmScale{full: math.Exp2(float64(bitDepth - 1))}
	if bitDepth == 8 {
		// 8-bit WAV samples are unsigned around 128.
		pcm.offset = 128
	}

	frames := 0

	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return fmt.Errorf("reading %s: %w", inPath, err)
		}

		if n == 0 {
			break
		}

		buf.Data = buf.Data[:n]
		filterInterleaved(buf.Data, channels, procs, chanBuf, pcm)

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		frames += n / channels
		buf.Data = buf.Data[:cap(buf.Data)]
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalising %s: %w", outPath, err)
	}

	a.logger.Info("filtered",
		zap.String("in", inPath),
		zap.String("out", outPath),
		zap.Int("frames", frames),
		zap.Int("channels", channels),
		zap.Int("order", r.Order()),
	)

	return nil
}

// pcmScale maps stored integer samples to [-1, 1).
type pcmScale struct {
	full   float64
	offset int
}

// filterInterleaved runs each channel of data through its processor and
// writes the result back with clipping to the integer range.
func filterInterleaved(data []int, channels int, procs []processor, scratch []float64, pcm pcmScale) {
	frames := len(data) / channels
	x := scratch[:frames]

	for ch, p := range procs {
		for i := range x {
			x[i] = float64(data[i*channels+ch]-pcm.offset) / pcm.full
		}

		p.ProcessBlock(x)

		for i, v := range x {
			s := math.Round(v * pcm.full)
			s = math.Max(-pcm.full, math.Min(pcm.full-1, s))
			data[i*channels+ch] = int(s) + pcm.offset
		}
	}
}
