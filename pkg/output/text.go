package output

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ccollicutt/xmllog2json/pkg/severity"
)

var (
	styleHeader  = lipgloss.NewStyle().Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	styleFailed  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	stylePath    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Faint(true)
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "xmllog2json: %d files, %d failed, %d records accepted, %d rejected\n",
		report.Summary.FilesProcessed,
		report.Summary.FilesFailed,
		report.Summary.RecordsAccepted,
		report.Summary.RecordsRejected)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, styleHeader.Render("=== XML Log Conversion Report ==="))
	fmt.Fprintln(w)

	for i := range report.Files {
		f.formatFile(&report.Files[i], w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d files, %d failed, %d records accepted, %d rejected\n",
		report.Summary.FilesProcessed,
		report.Summary.FilesFailed,
		report.Summary.RecordsAccepted,
		report.Summary.RecordsRejected)
	fmt.Fprintf(w, "Totals:  %s\n", formatCounts(report.Summary.Counts))

	if f.opts.Verbose {
		fmt.Fprintf(w, "Run ID: %s\n", report.Metadata.RunID)
		fmt.Fprintf(w, "Output: %s\n", report.Metadata.OutputDir)
		fmt.Fprintf(w, "Counter scope: %s\n", report.Metadata.CounterScope)
		if fi := report.Metadata.Filter; fi != nil {
			fmt.Fprintf(w, "Filter: %s\n", formatFilter(fi))
		}
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return nil
}

func (f *TextFormatter) formatFile(fr *FileReport, w io.Writer) {
	if fr.Failed() {
		fmt.Fprintf(w, "[%s] %s\n", styleFailed.Render("FAILED"), fr.Source)
		fmt.Fprintf(w, "  %s\n", fr.Error)
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "[%s] %s\n", styleOK.Render("OK"), fr.Source)
	fmt.Fprintf(w, "  %d records: %d accepted, %d rejected\n", fr.Records, fr.Accepted, fr.Rejected)
	fmt.Fprintf(w, "  %s\n", formatCounts(fr.Counts))

	if f.opts.Verbose {
		for _, p := range fr.Outputs {
			fmt.Fprintf(w, "    -> %s\n", stylePath.Render(p))
		}
	}
	fmt.Fprintln(w)
}

func formatCounts(counts map[severity.Severity]int) string {
	return fmt.Sprintf("%s=%d %s=%d %s=%d",
		styleSeverity(severity.Warning), counts[severity.Warning],
		styleSeverity(severity.Info), counts[severity.Info],
		styleSeverity(severity.Error), counts[severity.Error])
}

func styleSeverity(s severity.Severity) string {
	switch s {
	case severity.Warning:
		return styleWarning.Render(s.String())
	case severity.Error:
		return styleError.Render(s.String())
	default:
		return styleInfo.Render(s.String())
	}
}

func formatFilter(fi *FilterInfo) string {
	sevs := "all"
	if len(fi.Severities) > 0 {
		sevs = ""
		for i, s := range fi.Severities {
			if i > 0 {
				sevs += ","
			}
			sevs += s.String()
		}
	}

	start, stop := "-inf", "+inf"
	if fi.Start != nil {
		start = fi.Start.Format("2006-01-02T15:04:05")
	}
	if fi.Stop != nil {
		stop = fi.Stop.Format("2006-01-02T15:04:05")
	}
	return fmt.Sprintf("severity=%s interval=[%s, %s]", sevs, start, stop)
}
