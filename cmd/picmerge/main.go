package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"picmerge/internal/config"
	appErrors "picmerge/internal/errors"
	"picmerge/internal/logging"
)

func main() {
	config.LoadDotEnv()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "picmerge",
		Short:         "Merge image folders without losing files to name collisions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(
		newMergeCmd(&verbose),
		newScanCmd(&verbose),
		newLsCmd(&verbose),
		newPruneCmd(&verbose),
		newVersionCmd(),
	)
	return cmd
}

func newLogger(verbose bool) zerolog.Logger {
	return logging.New(os.Stderr, verbose || config.EnvTruthy("PICMERGE_VERBOSE"))
}
