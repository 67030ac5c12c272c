package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "tally",
	Short:         "Collection audit sampling and reporting",
	Long:          "tally draws a rule-governed random sample from a record collection, renders a paginated audit report, and persists the selection as a static group.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("run failed", "error", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}
