package main

import (
	"fmt"
	"os"

	"github.com/jamesainslie/go-sentsplit/inference"
)

// Set by the build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	err := cmd.Execute()

	if shutdownErr := inference.Shutdown(); shutdownErr != nil && err == nil {
		err = shutdownErr
	}

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
