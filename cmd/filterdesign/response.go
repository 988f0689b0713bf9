package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/response"
)

type responsePoint struct {
	Freq       float64 `json:"freq_hz" yaml:"freq_hz"`
	MagDB      float64 `json:"magnitude_db" yaml:"magnitude_db"`
	PhaseDeg   float64 `json:"phase_deg" yaml:"phase_deg"`
	GroupDelay float64 `json:"group_delay" yaml:"group_delay"`
}

func newResponseCmd(a *app) *cobra.Command {
	var points int

	cmd := &cobra.Command{
		Use:   "response",
		Short: "Print the frequency response of a filter",
		Long: `Sample magnitude, phase and group delay of the filter described by
the flags on a uniform grid from DC to just below Nyquist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := a.request()
			if err != nil {
				return err
			}

			r, err := req.Design(design.WithLogger(a.logger))
			if err != nil {
				return fmt.Errorf("%s: %w", title(req), err)
			}

			c, err := response.Sample(r, points, req.SampleRate)
			if err != nil {
				return err
			}

			a.logger.Debug("response sampled", zap.Int("points", c.Len()))

			pts := make([]responsePoint, c.Len())
			for i := range pts {
				pts[i] = responsePoint{
					Freq:       c.Freq[i],
					MagDB:      c.MagnitudeDB[i],
					PhaseDeg:   c.Phase[i] * 180 / math.Pi,
					GroupDelay: c.GroupDelay[i],
				}
			}

			return writeResponse(cmd.OutOrStdout(), a.v.GetString("output"), title(req), pts)
		},
	}

	cmd.Flags().IntVarP(&points, "points", "n", 32, "number of frequencies")

	return cmd
}

func writeResponse(w io.Writer, format, heading string, pts []responsePoint) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(pts)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(pts)
	case "table":
		fmt.Fprintln(w, heading)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "Hz\tdB\tphase\tdelay\t")

		for _, p := range pts {
			fmt.Fprintf(tw, "%.1f\t%.3f\t%.2f\t%.3f\t\n", p.Freq, p.MagDB, p.PhaseDeg, p.GroupDelay)
		}

		return tw.Flush()
	}

	return fmt.Errorf("unknown output format %q", format)
}
