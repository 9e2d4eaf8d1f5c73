package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#E8A87C")
	successColor = lipgloss.Color("#85DCB0")
	warningColor = lipgloss.Color("#F6AE2D")
	errorColor   = lipgloss.Color("#E85D75")
	mutedColor   = lipgloss.Color("#6B7280")
	dimTextColor = lipgloss.Color("#9CA3AF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	pathStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(mutedColor).
			MarginTop(1).
			MarginBottom(1)

	countStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	skippedStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	failedStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	logStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			MarginTop(2)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	iconTransferred = "✓"
	iconSkipped     = "○"
	iconFailed      = "✗"
	iconFolder      = "📁"
	iconArrow       = "→"
)
