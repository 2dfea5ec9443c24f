package presentation

import (
	"fmt"
	"io"
	"path/filepath"

	"phimport/internal/domain"
	appErrors "phimport/internal/errors"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

func (p Printer) PrintReport(report domain.BatchReport) {
	if report.DryRun {
		fmt.Fprintln(p.Writer, "Would import:")
	} else {
		fmt.Fprintln(p.Writer, "Importing:")
	}
	fmt.Fprintln(p.Writer)

	lines := formatCopyLines(report.Outcomes)
	if !p.Verbose {
		lines = truncate(lines)
	}
	for _, line := range lines {
		fmt.Fprintln(p.Writer, line)
	}

	skipped := formatSkipLines(report.Outcomes)
	if len(skipped) > 0 {
		fmt.Fprintln(p.Writer)
		fmt.Fprintln(p.Writer, "Not transferred:")
		for _, line := range skipped {
			fmt.Fprintln(p.Writer, line)
		}
	}

	fmt.Fprintln(p.Writer)
	p.printSummary(report)
}

func (p Printer) printSummary(report domain.BatchReport) {
	verb := "Copied"
	if report.DryRun {
		verb = "Would copy"
	}
	fmt.Fprintf(p.Writer, "%s %d of %d files into %d folders.\n", verb, report.CopiedCount(), report.Total, len(report.Folders()))
	fmt.Fprintf(p.Writer, "Skipped %d files (%d without capture date, %d unsupported).\n",
		report.SkippedCount(), report.Count(domain.SkippedNoTimestamp), report.Count(domain.SkippedUnsupported))

	if fatal, ok := report.Fatal(); ok {
		remaining := report.Total - len(report.Outcomes)
		fmt.Fprintf(p.Writer, "Import aborted at %s: %s (%d files not processed).\n",
			fatal.Source.Name, appErrors.UserMessage(fatal.Err), remaining)
		return
	}
	if !report.Completed {
		fmt.Fprintf(p.Writer, "Import interrupted after %d of %d files.\n", len(report.Outcomes), report.Total)
		return
	}
	if report.DryRun {
		fmt.Fprintln(p.Writer, "Dry run: no files were written.")
	}
}

func formatCopyLines(outcomes []domain.Outcome) []string {
	lines := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Status != domain.Copied {
			continue
		}
		rel := filepath.Join(filepath.Base(o.Folder), filepath.Base(o.TargetPath))
		date := o.TakenAt.Format("2006-01-02 15:04")
		lines = append(lines, fmt.Sprintf("Copy %s -> %s  %s", o.Source.Name, rel, date))
	}
	return lines
}

func truncate(lines []string) []string {
	if len(lines) <= 4 {
		return lines
	}
	head := lines[:2]
	tail := lines[len(lines)-2:]
	return append(append(append([]string{}, head...), "..."), tail...)
}

func formatSkipLines(outcomes []domain.Outcome) []string {
	var lines []string
	for _, o := range outcomes {
		if !o.Status.Skipped() {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", o.Source.Name, SkipReason(o.Status)))
	}
	return lines
}

// SkipReason describes why a skipped file was not transferred.
func SkipReason(status domain.OutcomeStatus) string {
	switch status {
	case domain.SkippedNoTimestamp:
		return "no capture date found"
	case domain.SkippedUnsupported:
		return "not a supported picture file"
	default:
		return string(status)
	}
}
