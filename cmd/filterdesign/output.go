package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/internal/config"
)

var titleCaser = cases.Title(language.English)

type sectionOutput struct {
	B [3]float64 `json:"b" yaml:"b,flow"`
	A [3]float64 `json:"a" yaml:"a,flow"`
}

type designOutput struct {
	Name       string          `json:"name" yaml:"name"`
	Title      string          `json:"title" yaml:"title"`
	Order      int             `json:"order" yaml:"order"`
	SampleRate float64         `json:"sample_rate" yaml:"sample_rate"`
	Stable     bool            `json:"stable" yaml:"stable"`
	B          []float64       `json:"b" yaml:"b,flow"`
	A          []float64       `json:"a" yaml:"a,flow"`
	Sections   []sectionOutput `json:"sections,omitempty" yaml:"sections,omitempty"`
}

// title renders e.g. "Chebyshev1 Bandpass, 300-3000 Hz".
func title(req config.Request) string {
	edges := make([]string, len(req.Cutoff))
	for i, f := range req.Cutoff {
		edges[i] = fmt.Sprintf("%g", f)
	}

	return fmt.Sprintf("%s %s, %s Hz", titleCaser.String(req.Family), titleCaser.String(req.Kind), strings.Join(edges, "-"))
}

func newDesignOutput(req config.Request, r *design.Result) designOutput {
	out := designOutput{
		Name:       req.Name,
		Title:      title(req),
		Order:      r.Order(),
		SampleRate: req.SampleRate,
		Stable:     r.IsStable(),
		B:          r.B,
		A:          r.A,
	}

	for _, s := range r.Sections {
		out.Sections = append(out.Sections, sectionOutput{B: s.Num(), A: s.Den()})
	}

	return out
}

func writeDesigns(w io.Writer, format string, designs []designOutput) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(designs)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(designs)
	case "table":
		for i, d := range designs {
			if i > 0 {
				fmt.Fprintln(w)
			}

			writeDesignTable(w, d)
		}

		return nil
	}

	return fmt.Errorf("unknown output format %q", format)
}

func writeDesignTable(w io.Writer, d designOutput) {
	header := d.Title
	if d.Name != "" {
		header = d.Name + ": " + header
	}

	fmt.Fprintf(w, "%s (order %d, fs %g Hz, stable %v)\n", header, d.Order, d.SampleRate, d.Stable)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	if len(d.Sections) == 0 {
		fmt.Fprintln(tw, "k\tb[k]\t")

		for k, v := range d.B {
			fmt.Fprintf(tw, "%d\t%.12g\t\n", k, v)
		}

		_ = tw.Flush()

		return
	}

	fmt.Fprintln(tw, "section\tb0\tb1\tb2\ta1\ta2\t")

	for i, s := range d.Sections {
		fmt.Fprintf(tw, "%d\t%.12g\t%.12g\t%.12g\t%.12g\t%.12g\t\n", i, s.B[0], s.B[1], s.B[2], s.A[1], s.A[2])
	}

	_ = tw.Flush()
}
