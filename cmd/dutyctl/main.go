package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// options are the flags shared by every command
type options struct {
	from     string
	days     int
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "dutyctl",
		Short:   "Crew duty tooling",
		Version: version,
		Long: `dutyctl builds crew duties from a YAML problem file and reports their
legality: maximum flight duty period, rest, home base inconvenience and
day-off encroachment.

The planning horizon is read from the file unless --from is given.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.from, "from", "", "first planning date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().IntVar(&opts.days, "days", 7, "number of planning days when --from is set")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")

	rootCmd.AddCommand(validateCmd(opts))
	rootCmd.AddCommand(evaluateCmd(opts))
	rootCmd.AddCommand(repositionCmd(opts))
	rootCmd.AddCommand(importCmd(opts))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
