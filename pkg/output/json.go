package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// reportIndent is the indent of the printed report. Bucket files use four
// spaces; see Writer.
const reportIndent = "  "

// JSONFormatter prints the run report as a single JSON document, suitable
// for piping into other tools. The same shape is posted to webhooks.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter returns a JSONFormatter. Quiet limits the document to
// the run Summary; Verbose has no effect since the full report already
// lists every output file.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns "json".
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the report, or only its Summary when quiet, to w.
func (f *JSONFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	var payload any = report
	if f.opts.Quiet {
		payload = report.Summary
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", reportIndent)
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
