package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sentsplit/punkt"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List languages with bundled Punkt models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, lang := range punkt.Languages() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
