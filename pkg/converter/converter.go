// Package converter turns XML log documents into severity buckets.
package converter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ccollicutt/xmllog2json/pkg/bucket"
	"github.com/ccollicutt/xmllog2json/pkg/document"
	"github.com/ccollicutt/xmllog2json/pkg/entry"
	"github.com/ccollicutt/xmllog2json/pkg/severity"
)

// CounterScope selects how long a severity tally lives.
type CounterScope string

const (
	// ScopeRun keeps one tally for every file in the run.
	ScopeRun CounterScope = "run"

	// ScopeFile starts a fresh tally for each file.
	ScopeFile CounterScope = "file"
)

// ParseCounterScope validates a scope name. Empty means ScopeRun.
func ParseCounterScope(s string) (CounterScope, error) {
	switch CounterScope(s) {
	case "", ScopeRun:
		return ScopeRun, nil
	case ScopeFile:
		return ScopeFile, nil
	default:
		return "", fmt.Errorf("invalid counter scope %q (must be run or file)", s)
	}
}

// Converter converts documents one at a time.
type Converter struct {
	filter entry.Filter
	scope  CounterScope
	logger *slog.Logger

	// counts is the run tally. Each file's tally is folded in once the
	// file succeeds.
	counts *severity.Counts
}

// Option configures converter behavior.
type Option func(*Converter)

// WithFilter sets the filter applied to every record.
func WithFilter(f entry.Filter) Option {
	return func(c *Converter) {
		c.filter = f
	}
}

// WithCounterScope sets the tally granularity.
func WithCounterScope(s CounterScope) Option {
	return func(c *Converter) {
		c.scope = s
	}
}

// WithLogger sets the logger used for per-record diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Converter. Defaults: no filter, run-scoped counts,
// slog.Default logger.
func New(opts ...Option) *Converter {
	c := &Converter{
		scope:  ScopeRun,
		logger: slog.Default(),
		counts: severity.NewCounts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Counts returns the run tally.
func (c *Converter) Counts() *severity.Counts {
	return c.counts
}

// Filter returns the active filter.
func (c *Converter) Filter() entry.Filter {
	return c.filter
}

// Scope returns the counter scope.
func (c *Converter) Scope() CounterScope {
	return c.scope
}

// FileResult describes the conversion of one document.
type FileResult struct {
	// Source is the file path or name the document came from.
	Source string

	// Buckets holds accepted entries. Nil when the document could not be parsed.
	Buckets *bucket.Buckets

	// Counts is the tally snapshot after this file. With ScopeRun it is
	// cumulative for the run so far. It is nil until the file is committed
	// and stays nil for failed files.
	Counts map[severity.Severity]int

	// Records is the number of records in the document.
	Records int

	// Accepted and Rejected split Records by validation outcome.
	Accepted int
	Rejected int

	// Outputs lists files written for this document by the run's handler.
	Outputs []string

	// Err is set when the document could not be converted or its output
	// could not be handled.
	Err error

	// Duration is how long conversion took.
	Duration time.Duration
}

// Failed reports whether the document could not be converted.
func (r *FileResult) Failed() bool {
	return r.Err != nil
}

// ConvertBytes converts one document held in memory and adds its tally to
// the run tally.
//
// The whole document is walked before any record is built, so a structural
// error leaves the tally and buckets untouched. Records failing validation
// are skipped and counted in Rejected.
func (c *Converter) ConvertBytes(ctx context.Context, source string, data []byte) (*FileResult, error) {
	result, counts, err := c.convert(ctx, source, data)
	if err != nil {
		return nil, err
	}
	c.commit(result, counts)
	return result, nil
}

// ConvertFile reads and converts the document at path.
func (c *Converter) ConvertFile(ctx context.Context, path string) (*FileResult, error) {
	result, counts, err := c.convertFile(ctx, path)
	if err != nil {
		return nil, err
	}
	c.commit(result, counts)
	return result, nil
}

func (c *Converter) convertFile(ctx context.Context, path string) (*FileResult, *severity.Counts, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, nil, fmt.Errorf("reading input file: %w", err)
	}
	return c.convert(ctx, path, data)
}

// convert builds the file's entries against a private tally. Nothing
// reaches the run tally until commit.
func (c *Converter) convert(ctx context.Context, source string, data []byte) (*FileResult, *severity.Counts, error) {
	start := time.Now()

	doc, err := document.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", source, err)
	}

	records, err := doc.Records()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", source, err)
	}

	counts := severity.NewCounts()
	builder := entry.NewBuilder(c.filter, counts)

	result := &FileResult{
		Source:  source,
		Records: len(records),
	}

	entries := make([]entry.LogEntry, 0, len(records))
	for _, rec := range records {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		e, err := builder.Attempt(rec.Timestamp, rec.Severity, rec.Message)
		if err != nil {
			result.Rejected++
			c.logger.Debug("record skipped",
				"source", source,
				"record", rec.Index,
				"reason", err)
			continue
		}
		entries = append(entries, e)
	}

	result.Accepted = len(entries)
	result.Buckets = bucket.Bucket(entries)
	result.Duration = time.Since(start)

	return result, counts, nil
}

// commit folds a file's tally into the run tally and records the snapshot
// the scope calls for.
func (c *Converter) commit(result *FileResult, counts *severity.Counts) {
	c.counts.Add(counts)
	if c.scope == ScopeFile {
		result.Counts = counts.Snapshot()
	} else {
		result.Counts = c.counts.Snapshot()
	}
}

// RunResult collects the outcome of converting a set of files.
type RunResult struct {
	// RunID identifies this run in reports and webhook payloads.
	RunID string

	// Files holds one result per input, in input order.
	Files []*FileResult

	// Counts is the run tally.
	Counts map[severity.Severity]int

	// StartTime is when the run began.
	StartTime time.Time

	// EndTime is when the run completed.
	EndTime time.Time
}

// FailedFiles returns the number of files that could not be converted.
func (r *RunResult) FailedFiles() int {
	n := 0
	for _, f := range r.Files {
		if f.Failed() {
			n++
		}
	}
	return n
}

// HasFailures returns true if any file failed.
func (r *RunResult) HasFailures() bool {
	return r.FailedFiles() > 0
}

// TotalAccepted returns accepted records across all files.
func (r *RunResult) TotalAccepted() int {
	n := 0
	for _, f := range r.Files {
		n += f.Accepted
	}
	return n
}

// TotalRejected returns rejected records across all files.
func (r *RunResult) TotalRejected() int {
	n := 0
	for _, f := range r.Files {
		n += f.Rejected
	}
	return n
}

// FileHandler is called after each successfully converted file, with its
// 1-based position in the run. A handler error marks the file as failed and
// keeps its records out of the run tally.
type FileHandler func(ctx context.Context, index int, result *FileResult) error

// Run converts each path in order. A file that fails is recorded in its
// FileResult and the run moves on. Run returns an error only when ctx is
// cancelled; files converted before that are kept in the result.
func (c *Converter) Run(ctx context.Context, paths []string, handle FileHandler) (*RunResult, error) {
	run := &RunResult{
		RunID:     uuid.NewString(),
		Files:     make([]*FileResult, 0, len(paths)),
		StartTime: time.Now(),
	}

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			run.Counts = c.counts.Snapshot()
			run.EndTime = time.Now()
			return run, err
		}

		result, counts, err := c.convertFile(ctx, path)
		if err != nil {
			if ctx.Err() != nil {
				run.Counts = c.counts.Snapshot()
				run.EndTime = time.Now()
				return run, ctx.Err()
			}
			c.logger.Error("conversion failed", "source", path, "error", err)
			run.Files = append(run.Files, &FileResult{Source: path, Err: err})
			continue
		}

		c.logger.Info("file converted",
			"source", path,
			"records", result.Records,
			"accepted", result.Accepted,
			"rejected", result.Rejected)

		if handle != nil {
			if err := handle(ctx, i+1, result); err != nil {
				c.logger.Error("handling converted file", "source", path, "error", err)
				result.Err = err
			}
		}
		if result.Err == nil {
			c.commit(result, counts)
		}

		run.Files = append(run.Files, result)
	}

	run.Counts = c.counts.Snapshot()
	run.EndTime = time.Now()
	return run, nil
}
