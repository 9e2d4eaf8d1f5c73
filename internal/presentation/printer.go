package presentation

import (
	"fmt"
	"io"

	"picmerge/internal/domain"
	appErrors "picmerge/internal/errors"
)

// Printer renders job events as plain lines, for terminals where the TUI is
// not wanted.
type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// Run consumes a job's event stream until it closes and returns the final
// summary.
func (p Printer) Run(events <-chan domain.Event) domain.JobSummary {
	var summary domain.JobSummary
	var done, total int
	for ev := range events {
		switch ev := ev.(type) {
		case domain.PlanReady:
			total = ev.TotalFiles
			fmt.Fprintf(p.Writer, "Merging %d files (%s)\n", ev.TotalFiles, FormatBytes(ev.TotalBytes))
		case domain.FileTransferred:
			done++
			if p.Verbose {
				fmt.Fprintf(p.Writer, "[%d/%d] %s (%s)\n", done, total, ev.Path, FormatBytes(ev.Bytes))
			}
		case domain.FileSkipped:
			done++
			fmt.Fprintf(p.Writer, "[%d/%d] skipped %s: %s\n", done, total, ev.Path, ev.Reason)
		case domain.FileFailed:
			done++
			fmt.Fprintf(p.Writer, "[%d/%d] failed %s: %s\n", done, total, ev.Path, appErrors.UserMessage(ev.Err))
		case domain.JobSummary:
			summary = ev
		}
	}
	p.PrintSummary(summary)
	return summary
}

func (p Printer) PrintSummary(s domain.JobSummary) {
	fmt.Fprintf(p.Writer, "\n%s: %d transferred, %d skipped, %d failed\n",
		s.FinalState, s.Completed, s.Skipped, s.Failed)
	if s.PrunedDirs > 0 {
		fmt.Fprintf(p.Writer, "Removed %d empty source directories\n", s.PrunedDirs)
	}
	if s.Err != nil {
		fmt.Fprintln(p.Writer, appErrors.UserMessage(s.Err))
	}
}

// maxPlanLines bounds the dry-run listing; long plans show head and tail.
const maxPlanLines = 10

// PrintPlan shows what a merge would do without touching the filesystem.
func (p Printer) PrintPlan(plan domain.MergePlan) {
	lines := formatPlanLines(plan.Entries)
	for _, line := range lines {
		fmt.Fprintln(p.Writer, line)
	}
	fmt.Fprintf(p.Writer, "\nDry run: %d files (%s), %d skipped\n",
		plan.TotalFiles()-plan.SkippedCount(), FormatBytes(plan.TotalBytes()), plan.SkippedCount())
}

func formatPlanLines(entries []domain.MergePlanEntry) []string {
	if len(entries) <= maxPlanLines {
		lines := make([]string, 0, len(entries))
		for _, e := range entries {
			lines = append(lines, formatPlanEntry(e))
		}
		return lines
	}

	half := maxPlanLines / 2
	lines := make([]string, 0, maxPlanLines+1)
	for _, e := range entries[:half] {
		lines = append(lines, formatPlanEntry(e))
	}
	lines = append(lines, fmt.Sprintf("... %d more files ...", len(entries)-maxPlanLines))
	for _, e := range entries[len(entries)-half:] {
		lines = append(lines, formatPlanEntry(e))
	}
	return lines
}

func formatPlanEntry(e domain.MergePlanEntry) string {
	if e.Action == domain.ActionSkip {
		return fmt.Sprintf("  skip  %s (%s)", e.Destination, e.SkipReason)
	}
	return fmt.Sprintf("  %-4s  %s -> %s", e.Action, e.File.SourcePath, e.Destination)
}

// FormatBytes formats a byte count in human-readable form.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
