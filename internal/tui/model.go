package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"picmerge/internal/app"
	"picmerge/internal/domain"
	appErrors "picmerge/internal/errors"
	"picmerge/internal/presentation"
)

// logTail is how many recent per-file lines stay visible.
const logTail = 6

type eventMsg struct {
	event domain.Event
	ok    bool
}

// Model renders a running merge job: progress, a short activity log, and
// the closing summary. Pressing q requests cancellation; the model keeps
// consuming events until the job's summary arrives.
type Model struct {
	job     *app.Job
	Summary *domain.JobSummary

	sources     []string
	destination string

	spinner  spinner.Model
	progress progress.Model

	totalFiles int
	totalBytes int64
	doneFiles  int
	doneBytes  int64

	logLines   []string
	cancelling bool
	Quitting   bool
	width      int
}

func NewModel(job *app.Job, sources []string, destination string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		job:         job,
		sources:     sources,
		destination: destination,
		spinner:     s,
		progress:    p,
		width:       80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.job.Events()))
}

func waitForEvent(events <-chan domain.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return eventMsg{event: ev, ok: ok}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.Summary != nil {
				m.Quitting = true
				return m, tea.Quit
			}
			m.cancelling = true
			m.job.Cancel()
			return m, nil
		case "enter":
			if m.Summary != nil {
				m.Quitting = true
				return m, tea.Quit
			}
		}

	case eventMsg:
		if !msg.ok {
			return m, tea.Quit
		}
		cmd := m.applyEvent(msg.event)
		return m, tea.Batch(cmd, waitForEvent(m.job.Events()))

	case spinner.TickMsg:
		if m.Summary == nil {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m *Model) applyEvent(ev domain.Event) tea.Cmd {
	switch ev := ev.(type) {
	case domain.PlanReady:
		m.totalFiles = ev.TotalFiles
		m.totalBytes = ev.TotalBytes
	case domain.FileTransferred:
		m.doneFiles++
		m.doneBytes += ev.Bytes
		m.appendLog(fmt.Sprintf("%s %s", successStyle.Render(iconTransferred), ev.Path))
	case domain.FileSkipped:
		m.doneFiles++
		m.appendLog(fmt.Sprintf("%s %s (%s)", skippedStyle.Render(iconSkipped), ev.Path, ev.Reason))
	case domain.FileFailed:
		m.doneFiles++
		m.appendLog(fmt.Sprintf("%s %s: %s", failedStyle.Render(iconFailed), ev.Path, appErrors.UserMessage(ev.Err)))
	case domain.JobSummary:
		summary := ev
		m.Summary = &summary
	}

	if m.totalFiles > 0 {
		return m.progress.SetPercent(float64(m.doneFiles) / float64(m.totalFiles))
	}
	return nil
}

func (m *Model) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > logTail {
		m.logLines = m.logLines[len(m.logLines)-logTail:]
	}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.Summary != nil {
		b.WriteString(m.renderSummary())
	} else {
		b.WriteString(m.renderRunning())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	lines := []string{titleStyle.Render("picmerge")}
	for _, src := range m.sources {
		lines = append(lines, pathStyle.Render(fmt.Sprintf("%s %s", iconFolder, src)))
	}
	lines = append(lines, pathStyle.Render(fmt.Sprintf("%s %s %s", iconArrow, iconFolder, m.destination)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderRunning() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Merging"))
	b.WriteString("\n\n")

	label := "Merging..."
	if m.cancelling {
		label = "Cancelling..."
	} else if m.totalFiles == 0 {
		label = "Planning..."
	}
	b.WriteString(fmt.Sprintf("  %s %s\n\n", m.spinner.View(), label))

	if m.totalFiles > 0 {
		percent := float64(m.doneFiles) / float64(m.totalFiles)
		b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
		b.WriteString(fmt.Sprintf("  %s %s\n",
			countStyle.Render(fmt.Sprintf("%d/%d files", m.doneFiles, m.totalFiles)),
			pathStyle.Render(fmt.Sprintf("(%s of %s)",
				presentation.FormatBytes(m.doneBytes), presentation.FormatBytes(m.totalBytes))),
		))
	}

	if len(m.logLines) > 0 {
		b.WriteString("\n")
		for _, line := range m.logLines {
			b.WriteString("  ")
			b.WriteString(logStyle.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderSummary() string {
	s := m.Summary
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n\n")

	headline := successStyle.Render(fmt.Sprintf("%s Merge %s", iconTransferred, s.FinalState))
	if s.FinalState != domain.StateCompleted {
		headline = failedStyle.Render(fmt.Sprintf("%s Merge %s", iconFailed, s.FinalState))
	}
	b.WriteString("  " + headline + "\n\n")

	b.WriteString(fmt.Sprintf("  Transferred:  %s\n", countStyle.Render(fmt.Sprintf("%d", s.Completed))))
	b.WriteString(fmt.Sprintf("  Skipped:      %s\n", skippedStyle.Render(fmt.Sprintf("%d", s.Skipped))))
	b.WriteString(fmt.Sprintf("  Failed:       %s\n", failedStyle.Render(fmt.Sprintf("%d", s.Failed))))
	if s.PrunedDirs > 0 {
		b.WriteString(fmt.Sprintf("  Pruned dirs:  %s\n", countStyle.Render(fmt.Sprintf("%d", s.PrunedDirs))))
	}
	if s.Err != nil {
		b.WriteString("\n  " + failedStyle.Render(appErrors.UserMessage(s.Err)) + "\n")
	}
	return b.String()
}

func (m Model) renderHelp() string {
	if m.Summary != nil {
		return helpStyle.Render("Press Enter to exit")
	}
	if m.cancelling {
		return helpStyle.Render("Finishing the current file...")
	}
	return helpStyle.Render("Press q to cancel")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
