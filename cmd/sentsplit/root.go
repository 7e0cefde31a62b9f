package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sentsplit/internal/config"
)

// app holds state shared between the root command and its subcommands.
type app struct {
	cfgFile string
	envFile string
	cfg     config.Config
	logger  *slog.Logger
}

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()
	a := &app{}

	cmd := &cobra.Command{
		Use:   "sentsplit [file...]",
		Short: "Split text into sentences with character offsets",
		Long: `Split text into sentences with character offsets.

Reads the given files, or standard input when none are given, and prints one
sentence per line. Offsets count characters (Unicode code points) from the
start of each input.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: a.cfgFile,
				EnvFile:    a.envFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			a.cfg = loaded
			a.logger = loaded.NewLogger(cmd.ErrOrStderr())
			slog.SetDefault(a.logger)
			return nil
		},
		RunE: a.runSplit,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Optional env file (default .env)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.Flags().String("format", "text", "Output format (text|jsonl)")
	cmd.Flags().Bool("spans", false, "Prefix text output with start and end offsets")

	cmd.AddCommand(newLanguagesCmd())

	return cmd
}
