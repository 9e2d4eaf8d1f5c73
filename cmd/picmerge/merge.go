package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"picmerge/internal/app"
	"picmerge/internal/config"
	"picmerge/internal/domain"
	osfs "picmerge/internal/infra/fs"
	"picmerge/internal/logging"
	"picmerge/internal/presentation"
	"picmerge/internal/tui"
)

func newMergeCmd(verbose *bool) *cobra.Command {
	var (
		destination string
		mode        string
		onCollision string
		recursive   bool
		extensions  []string
		dryRun      bool
		plain       bool
		jobFile     string
	)

	cmd := &cobra.Command{
		Use:   "merge [sources...]",
		Short: "Merge source folders into one destination",
		Long: `Merge walks the given source folders, plans a destination for every image,
resolves name collisions, and copies or moves the files. The full plan is
built before any byte is written, so --dry-run shows exactly what would
happen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := args
			cfg := domain.DefaultMergeConfiguration()

			parsedMode, err := domain.ParseMode(mode)
			if err != nil {
				return err
			}
			cfg.Mode = parsedMode
			parsedPolicy, err := domain.ParseCollisionPolicy(onCollision)
			if err != nil {
				return err
			}
			cfg.OnCollision = parsedPolicy
			cfg.Recursive = recursive
			cfg.IncludedExtensions = config.NormalizeExtensions(extensions)

			if destination == "" {
				destination = config.EnvOr("PICMERGE_DESTINATION", "")
			}

			// Flags that were set explicitly win over the job file.
			if jobFile != "" {
				jf, err := config.LoadJobFile(jobFile)
				if err != nil {
					return err
				}
				if len(sources) == 0 {
					sources = jf.Sources
				}
				if !cmd.Flags().Changed("into") && jf.Destination != "" {
					destination = jf.Destination
				}
				if !cmd.Flags().Changed("mode") && jf.Mode != "" {
					cfg.Mode = jf.Mode
				}
				if !cmd.Flags().Changed("on-collision") && jf.OnCollision != "" {
					cfg.OnCollision = jf.OnCollision
				}
				if !cmd.Flags().Changed("recursive") && jf.Recursive != nil {
					cfg.Recursive = *jf.Recursive
				}
				if !cmd.Flags().Changed("ext") && len(jf.Extensions) > 0 {
					cfg.IncludedExtensions = jf.Extensions
				}
			}

			logger := newLogger(*verbose)
			fsys := osfs.OSFS{}

			if dryRun {
				planner := &app.Planner{FS: fsys, Logger: logger}
				if err := planner.ValidateLayout(sources, destination); err != nil {
					return err
				}
				plan, err := planner.Plan(cmd.Context(), sources, destination, cfg)
				if err != nil {
					return err
				}
				presentation.Printer{Writer: os.Stdout, Verbose: *verbose}.PrintPlan(plan)
				return nil
			}

			if plain {
				service := app.NewService(fsys, logger)
				job, err := service.Submit(sources, destination, cfg)
				if err != nil {
					return err
				}
				printer := presentation.Printer{Writer: os.Stdout, Verbose: *verbose}
				summary := printer.Run(job.Events())
				if summary.FinalState == domain.StateFailed {
					return summary.Err
				}
				return nil
			}

			// The TUI owns the terminal; engine logs would tear the display.
			service := app.NewService(fsys, logging.Nop())
			job, err := service.Submit(sources, destination, cfg)
			if err != nil {
				return err
			}
			program := tea.NewProgram(tui.NewModel(job, sources, destination))
			final, err := program.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(tui.Model); ok && m.Summary != nil && m.Summary.FinalState == domain.StateFailed {
				return m.Summary.Err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&destination, "into", "t", "", "destination folder (env PICMERGE_DESTINATION)")
	cmd.Flags().StringVarP(&mode, "mode", "m", "copy", "copy or move")
	cmd.Flags().StringVar(&onCollision, "on-collision", "rename", "rename, skip or overwrite")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", true, "descend into subfolders of each source")
	cmd.Flags().StringSliceVar(&extensions, "ext", nil, "only include these extensions (default: all supported)")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "show the plan without copying anything")
	cmd.Flags().BoolVar(&plain, "plain", false, "line-based output instead of the interactive view")
	cmd.Flags().StringVarP(&jobFile, "config", "c", "", "YAML job file with sources, destination and options")
	return cmd
}
