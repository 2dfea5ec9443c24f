package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"phimport/internal/domain"
	appErrors "phimport/internal/errors"
	"phimport/internal/presentation"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseImporting Phase = iota
	PhaseDone
	PhaseError
)

const recentLimit = 4

// Messages for the TUI
type (
	OutcomeMsg struct {
		Outcome domain.Outcome
		Current int
		Total   int
	}
	DoneMsg struct {
		Report domain.BatchReport
		Err    error
	}
	tickMsg time.Time
)

type Config struct {
	SourceDir string
	TargetDir string
	DryRun    bool
	Verbose   bool
}

// Model is the main TUI model
type Model struct {
	config   Config
	Phase    Phase
	Report   domain.BatchReport
	Err      error
	spinner  spinner.Model
	progress progress.Model
	current  int
	total    int
	recent   []domain.Outcome
	skipped  []domain.Outcome
	Quitting bool
	width    int
}

func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	return Model{
		config:   cfg,
		Phase:    PhaseImporting,
		spinner:  s,
		progress: p,
		width:    80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
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
			m.Quitting = true
			return m, tea.Quit
		case "enter":
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case OutcomeMsg:
		m.current = msg.Current
		m.total = msg.Total
		m.recent = append(m.recent, msg.Outcome)
		if len(m.recent) > recentLimit {
			m.recent = m.recent[len(m.recent)-recentLimit:]
		}
		if msg.Outcome.Status.Skipped() {
			m.skipped = append(m.skipped, msg.Outcome)
		}
		return m, nil

	case DoneMsg:
		m.Report = msg.Report
		m.Err = msg.Err
		if msg.Err != nil {
			m.Phase = PhaseError
		} else {
			m.Phase = PhaseDone
		}
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseImporting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case tickMsg:
		if m.Phase == PhaseImporting {
			var cmds []tea.Cmd
			if m.total > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.current)/float64(m.total)))
			}
			cmds = append(cmds, tickCmd())
			return m, tea.Batch(cmds...)
		}
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseImporting:
		b.WriteString(m.renderProgress())
	case PhaseDone:
		b.WriteString(m.renderSummary())
	case PhaseError:
		b.WriteString(m.renderSummary())
		b.WriteString("\n")
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("📷 Phimport")
	subtitle := subtitleStyle.Render("Pictures into date folders, nothing overwritten")

	dimStyle := lipgloss.NewStyle().Foreground(soft)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Source: %s", iconFolder, shortenPath(m.config.SourceDir))),
		dimStyle.Render(fmt.Sprintf("%s Target: %s", iconFolder, shortenPath(m.config.TargetDir))),
	)
}

func (m Model) renderProgress() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Importing"))
	b.WriteString("\n\n")

	percent := 0.0
	if m.total > 0 {
		percent = float64(m.current) / float64(m.total)
	}
	countStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)
	percentStyle := lipgloss.NewStyle().Foreground(soft)

	b.WriteString(fmt.Sprintf("  %s Importing...\n\n", m.spinner.View()))
	b.WriteString(fmt.Sprintf("  %s\n", m.progress.ViewAs(percent)))
	b.WriteString(fmt.Sprintf("  %s %s\n\n",
		countStyle.Render(fmt.Sprintf("%d/%d files", m.current, m.total)),
		percentStyle.Render(fmt.Sprintf("(%.0f%%)", percent*100)),
	))

	for _, o := range m.recent {
		b.WriteString("  ")
		b.WriteString(formatOutcome(o))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n\n")

	r := m.Report
	dimStyle := lipgloss.NewStyle().Foreground(soft)
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Copied:"), successStyle.Render(fmt.Sprintf("%s %d", iconSuccess, r.CopiedCount()))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("No capture date:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, r.Count(domain.SkippedNoTimestamp)))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Unsupported:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, r.Count(domain.SkippedUnsupported)))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Folders:"), statValueStyle.Render(fmt.Sprintf("%d", len(r.Folders())))))

	if len(m.skipped) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("Not transferred:"))
		b.WriteString("\n")
		for _, o := range m.skipped {
			b.WriteString(fmt.Sprintf("  %s %s  %s\n", iconSkipped, fileNameStyle.Render(o.Source.Name), dateStyle.Render(presentation.SkipReason(o.Status))))
		}
	}

	if m.config.DryRun {
		b.WriteString("\n")
		b.WriteString(highlightBoxStyle.Render("🔍 Dry Run - No files were written"))
	}
	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Import aborted: %s", appErrors.UserMessage(m.Err)))

	return highlightBoxStyle.Copy().
		BorderForeground(failed).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseImporting:
		help = "Importing files... Press q to quit"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

func formatOutcome(o domain.Outcome) string {
	switch o.Status {
	case domain.Copied:
		target := filepath.Join(filepath.Base(o.Folder), filepath.Base(o.TargetPath))
		return fmt.Sprintf("%s %s %s %s  %s",
			successStyle.Render(iconSuccess),
			fileNameStyle.Render(o.Source.Name),
			iconArrow,
			pathStyle.Render(target),
			dateStyle.Render(o.TakenAt.Format("2006-01-02 15:04")),
		)
	case domain.SkippedNoTimestamp:
		fallthrough
	case domain.SkippedUnsupported:
		return fmt.Sprintf("%s %s  %s", warningStyle.Render(iconSkipped), fileNameStyle.Render(o.Source.Name), dateStyle.Render(presentation.SkipReason(o.Status)))
	default:
		return fmt.Sprintf("%s %s", errorStyle.Render(iconError), fileNameStyle.Render(o.Source.Name))
	}
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
