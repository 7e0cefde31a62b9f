package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sentsplit"
	"github.com/jamesainslie/go-sentsplit/internal/bench"
	"github.com/jamesainslie/go-sentsplit/internal/config"
)

type app struct {
	cfgFile string
	envFile string
	cfg     config.Config
	logger  *slog.Logger
}

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()
	// The evaluation corpus is line oriented.
	defaults.Splitter.SplitOnLineBreaks = true
	defaults.Splitter.MaxLenBeforeSplit = 100
	a := &app{}

	cmd := &cobra.Command{
		Use:   "sentsplit-bench",
		Short: "Evaluate sentence splitting against a gold corpus",
		Long: `Evaluate sentence splitting against a gold corpus.

The data directory holds pairs of files: NAME.txt with raw text and
NAME.split with one gold sentence per line. Predicted spans must match gold
spans exactly unless --tolerance is set.`,
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
		RunE: a.runEvaluate,
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Optional env file (default .env)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)
	config.RegisterBenchFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newSweepCmd(a))

	return cmd
}

func (a *app) benchConfig() bench.Config {
	cfg := bench.DefaultConfig()
	cfg.Tolerance = a.cfg.Bench.Tolerance
	cfg.Concurrency = a.cfg.Bench.Concurrency
	return cfg
}

func (a *app) loadCorpus() ([]*bench.Document, error) {
	docs, err := bench.LoadCorpus(a.cfg.Bench.DataDir, a.logger)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no *.split files in %s", a.cfg.Bench.DataDir)
	}
	a.logger.Info("loaded corpus", "dir", a.cfg.Bench.DataDir, "documents", len(docs))
	return docs, nil
}

func (a *app) runEvaluate(cmd *cobra.Command, _ []string) error {
	docs, err := a.loadCorpus()
	if err != nil {
		return err
	}

	splitter, err := sentsplit.New(a.cfg.Model, a.cfg.SplitterOptions(a.logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = splitter.Close() }() // Cleanup error ignored in CLI

	report, err := bench.EvaluateCorpus(cmd.Context(), splitter, docs, a.benchConfig())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range report.Documents {
		m := r.Metrics
		fmt.Fprintf(out, "%s: tp=%d, fp=%d, fn=%d, f1=%.5f\n",
			r.ID, m.TruePositives, m.FalsePositives, m.FalseNegatives, m.F1)
	}

	fmt.Fprintf(out, "\n%s\n", strings.Repeat("-", 80))
	fmt.Fprintf(out, "f1 using %s: %.5f (%d spans from %d files)\n",
		a.cfg.Model, report.Total.F1, report.Spans, len(report.Documents))
	fmt.Fprintf(out, "precision: %.5f  recall: %.5f\n", report.Total.Precision, report.Total.Recall)
	fmt.Fprintf(out, "%s\n", strings.Repeat("-", 80))
	return nil
}
