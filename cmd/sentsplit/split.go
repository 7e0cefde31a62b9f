package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jamesainslie/go-sentsplit"
)

// record is one line of jsonl output.
type record struct {
	Source string `json:"source,omitempty"`
	Text   string `json:"text"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

func (a *app) runSplit(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	withSpans, err := cmd.Flags().GetBool("spans")
	if err != nil {
		return err
	}
	if format != "text" && format != "jsonl" {
		return fmt.Errorf("invalid format %q (want text or jsonl)", format)
	}

	splitter, err := sentsplit.New(a.cfg.Model, a.cfg.SplitterOptions(a.logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = splitter.Close() }() // Cleanup error ignored in CLI

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	for _, name := range inputs {
		text, err := readInput(cmd.InOrStdin(), name)
		if err != nil {
			return err
		}

		sentences, err := splitter.Split(cmd.Context(), text)
		if err != nil {
			return fmt.Errorf("splitting %s: %w", name, err)
		}
		a.logger.Debug("split input", "source", name, "sentences", len(sentences))

		for _, s := range sentences {
			switch {
			case format == "jsonl":
				rec := record{Text: s.Text, Start: s.Span.Start, End: s.Span.End}
				if name != "-" {
					rec.Source = name
				}
				if err := enc.Encode(rec); err != nil {
					return fmt.Errorf("writing output: %w", err)
				}
			case withSpans:
				_, err = fmt.Fprintf(out, "%d\t%d\t%s\n", s.Span.Start, s.Span.End, s.Text)
			default:
				_, err = fmt.Fprintln(out, s.Text)
			}
			if err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
	}
	return nil
}

func readInput(stdin io.Reader, name string) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}
