package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"picmerge/internal/app"
	osfs "picmerge/internal/infra/fs"
)

func newPruneCmd(verbose *bool) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune <folder>",
		Short: "Remove empty subdirectories, deepest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pruner := &app.Pruner{FS: osfs.OSFS{}, Logger: newLogger(*verbose)}
			removed, err := pruner.Prune(args[0], app.PruneOptions{DryRun: dryRun})
			if err != nil {
				return err
			}
			action := "Removed"
			if dryRun {
				action = "Would remove"
			}
			fmt.Printf("%s %d empty directories\n", action, removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report what would be removed")
	return cmd
}
