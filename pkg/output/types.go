// Package output writes converted severity buckets to disk and renders run
// reports.
package output

import (
	"time"

	"github.com/ccollicutt/xmllog2json/pkg/converter"
	"github.com/ccollicutt/xmllog2json/pkg/entry"
	"github.com/ccollicutt/xmllog2json/pkg/severity"
)

// Report is the complete run output.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Files contains one entry per input file.
	Files []FileReport

	// Metadata provides context about the run.
	Metadata Metadata
}

// Summary provides aggregate statistics.
type Summary struct {
	// FilesProcessed is the number of input files attempted.
	FilesProcessed int

	// FilesFailed is the number of files that could not be converted.
	FilesFailed int

	// RecordsAccepted is the number of records written to buckets.
	RecordsAccepted int

	// RecordsRejected is the number of records skipped by validation or filters.
	RecordsRejected int

	// Counts is the run tally per severity.
	Counts map[severity.Severity]int
}

// FileReport describes one input file.
type FileReport struct {
	Source   string
	Records  int
	Accepted int
	Rejected int

	// Counts is the tally snapshot after this file.
	Counts map[severity.Severity]int

	// Outputs lists the JSON files written.
	Outputs []string

	// Error is the failure message, empty on success.
	Error string `json:",omitempty"`
}

// Failed returns true if the file could not be converted.
func (f *FileReport) Failed() bool {
	return f.Error != ""
}

// Metadata provides context about the run.
type Metadata struct {
	// RunID identifies the run.
	RunID string

	// ConfigFile is the configuration file used, if any.
	ConfigFile string `json:",omitempty"`

	// OutputDir is where bucket files were written.
	OutputDir string

	// CounterScope is the tally granularity (run or file).
	CounterScope converter.CounterScope

	// Filter is the filter that was applied, if any.
	Filter *FilterInfo `json:",omitempty"`

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is how long the run took.
	Duration time.Duration
}

// FilterInfo describes an applied filter.
type FilterInfo struct {
	Severities []severity.Severity `json:",omitempty"`
	Start      *time.Time          `json:",omitempty"`
	Stop       *time.Time          `json:",omitempty"`
}

// NewFilterInfo describes f, or returns nil when f filters nothing.
func NewFilterInfo(f entry.Filter) *FilterInfo {
	if f.IsZero() {
		return nil
	}
	info := &FilterInfo{Severities: f.Severities()}
	if t, ok := f.Start(); ok {
		info.Start = &t
	}
	if t, ok := f.Stop(); ok {
		info.Stop = &t
	}
	return info
}

// NewReport creates a Report from a run result. meta supplies the fields
// the run does not know about; RunID, StartedAt and Duration are filled
// from the run.
func NewReport(run *converter.RunResult, meta Metadata) *Report {
	meta.RunID = run.RunID
	meta.StartedAt = run.StartTime
	meta.Duration = run.EndTime.Sub(run.StartTime)

	report := &Report{
		Files:    make([]FileReport, 0, len(run.Files)),
		Metadata: meta,
		Summary: Summary{
			FilesProcessed:  len(run.Files),
			FilesFailed:     run.FailedFiles(),
			RecordsAccepted: run.TotalAccepted(),
			RecordsRejected: run.TotalRejected(),
			Counts:          countsOrZero(run.Counts),
		},
	}

	for _, f := range run.Files {
		fr := FileReport{
			Source:   f.Source,
			Records:  f.Records,
			Accepted: f.Accepted,
			Rejected: f.Rejected,
			Counts:   countsOrZero(f.Counts),
			Outputs:  f.Outputs,
		}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		report.Files = append(report.Files, fr)
	}

	return report
}

// countsOrZero returns counts, or a zero tally for every severity when
// counts is nil, so failed files report zeros instead of null.
func countsOrZero(counts map[severity.Severity]int) map[severity.Severity]int {
	if counts != nil {
		return counts
	}
	zero := make(map[severity.Severity]int, len(severity.All()))
	for _, s := range severity.All() {
		zero[s] = 0
	}
	return zero
}

// HasFailures returns true if any file failed.
func (r *Report) HasFailures() bool {
	return r.Summary.FilesFailed > 0
}
