package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sentsplit/internal/bench"
)

func newSweepCmd(a *app) *cobra.Command {
	var (
		param      string
		minV, maxV float64
		step       float64
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a range of max-len or SaT threshold values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs, err := a.loadCorpus()
			if err != nil {
				return err
			}
			opts := a.cfg.SplitterOptions(a.logger)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%-10s %-8s %-8s %-8s\n", param, "Prec", "Rec", "F1")
			fmt.Fprintln(out, strings.Repeat("-", 40))

			switch param {
			case "max-len":
				values := bench.SweepRange(int(minV), int(maxV), int(step))
				results, err := bench.SweepMaxLen(cmd.Context(), docs, a.cfg.Model, values, a.benchConfig(), opts...)
				if err != nil {
					return err
				}
				for _, r := range results {
					fmt.Fprintf(out, "%-10d %-8.4f %-8.4f %-8.4f\n", r.Value, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1)
				}

			case "threshold":
				values := bench.SweepRange(float32(minV), float32(maxV), float32(step))
				results, err := bench.SweepThresholds(cmd.Context(), docs, a.cfg.Model, values, a.benchConfig(), opts...)
				if err != nil {
					return err
				}
				for _, r := range results {
					fmt.Fprintf(out, "%-10.3f %-8.4f %-8.4f %-8.4f\n", r.Value, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1)
				}

			default:
				return fmt.Errorf("invalid sweep parameter %q (want max-len or threshold)", param)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&param, "param", "max-len", "Parameter to sweep (max-len|threshold)")
	cmd.Flags().Float64Var(&minV, "min", 20, "Smallest value")
	cmd.Flags().Float64Var(&maxV, "max", 200, "Largest value")
	cmd.Flags().Float64Var(&step, "step", 20, "Step between values")

	return cmd
}
