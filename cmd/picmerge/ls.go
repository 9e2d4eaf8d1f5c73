package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"picmerge/internal/app"
	osfs "picmerge/internal/infra/fs"
)

// previewCacheSize bounds the folder preview cache; listings rarely touch
// more folders than this in one invocation.
const previewCacheSize = 256

func newLsCmd(verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <root>",
		Short: "List subfolders of a root with image counts and a preview image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			finder, err := app.NewPreviewFinder(osfs.OSFS{}, newLogger(*verbose), previewCacheSize)
			if err != nil {
				return err
			}
			summaries, err := finder.Summarize(args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
			for _, s := range summaries {
				preview := s.Preview
				if preview == "" {
					preview = "-"
				}
				fmt.Fprintf(w, "%s\t%d images\t%s\n", s.Name, s.ImageCount, preview)
			}
			return w.Flush()
		},
	}
	return cmd
}
