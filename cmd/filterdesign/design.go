package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/design"
	"github.com/cwbudde/algo-filterdesign/internal/config"
)

func newDesignCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "design",
		Short: "Print filter coefficients",
		Long: `Design one filter from the flags, or every filter in a design file,
and print the second-order sections and transfer-function coefficients.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reqs, err := a.requests(file)
			if err != nil {
				return err
			}

			outs := make([]designOutput, 0, len(reqs))

			for _, req := range reqs {
				r, err := req.Design(design.WithLogger(a.logger))
				if err != nil {
					return fmt.Errorf("%s: %w", title(req), err)
				}

				outs = append(outs, newDesignOutput(req, r))
			}

			return writeDesigns(cmd.OutOrStdout(), a.v.GetString("output"), outs)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML design file with a list of filters")

	return cmd
}

// requests returns the filters of a design file, or the single filter
// described by the flags when file is empty.
func (a *app) requests(file string) ([]config.Request, error) {
	if file == "" {
		req, err := a.request()
		if err != nil {
			return nil, err
		}

		return []config.Request{req}, nil
	}

	f, err := config.LoadFile(file)
	if err != nil {
		return nil, err
	}

	return f.Filters, nil
}
