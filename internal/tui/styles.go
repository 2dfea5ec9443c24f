package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("#7AA2F7")
	copied  = lipgloss.Color("#9ECE6A")
	skipped = lipgloss.Color("#E0AF68")
	failed  = lipgloss.Color("#F7768E")
	faint   = lipgloss.Color("#565F89")
	plain   = lipgloss.Color("#C0CAF5")
	soft    = lipgloss.Color("#A9B1D6")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1)
	subtitleStyle = lipgloss.NewStyle().Foreground(soft).Italic(true)
	sectionStyle  = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(faint).
			MarginTop(1).
			MarginBottom(1)
	helpStyle    = lipgloss.NewStyle().Foreground(faint).Italic(true).MarginTop(2)
	spinnerStyle = lipgloss.NewStyle().Foreground(accent)
)

// Per-file lines.
var (
	fileNameStyle = lipgloss.NewStyle().Foreground(plain)
	pathStyle     = lipgloss.NewStyle().Foreground(faint).Italic(true)
	dateStyle     = lipgloss.NewStyle().Foreground(soft)
	successStyle  = lipgloss.NewStyle().Foreground(copied).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(skipped)
	errorStyle    = lipgloss.NewStyle().Foreground(failed).Bold(true)
)

// Summary block.
var (
	statLabelStyle    = lipgloss.NewStyle().Foreground(soft).Width(18)
	statValueStyle    = lipgloss.NewStyle().Foreground(plain).Bold(true)
	highlightBoxStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(0, 1).
				MarginTop(1)
)

const (
	iconSkipped = "•"
	iconSuccess = "✓"
	iconError   = "✗"
	iconArrow   = "→"
	iconFolder  = "📁"
)
