package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"picmerge/internal/app"
	"picmerge/internal/infra/exif"
	osfs "picmerge/internal/infra/fs"
	"picmerge/internal/presentation"
)

func newScanCmd(verbose *bool) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "scan <folder>",
		Short: "List images under a folder with their capture dates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scanner := &app.Scanner{
				FS:       osfs.OSFS{},
				Metadata: exif.Reader{},
				Workers:  workers,
				Logger:   newLogger(*verbose),
			}
			images, err := scanner.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			for _, img := range images {
				date := "-"
				if !img.TakenAt.IsZero() {
					date = img.TakenAt.Format("2006-01-02 15:04")
					if !img.HasDate {
						date += " (mtime)"
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", date, presentation.FormatBytes(img.Size), img.RelativePath)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\n%d images\n", len(images))
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "metadata worker count (0 = number of CPUs)")
	return cmd
}
