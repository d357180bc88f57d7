package entry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ccollicutt/xmllog2json/pkg/severity"
	"github.com/ccollicutt/xmllog2json/pkg/timestamp"
)

// Rejection reasons returned by Builder.Attempt. Timestamp and severity
// parse failures are returned as *timestamp.TimestampError and
// *severity.SeverityError.
var (
	ErrEmptyTimestamp   = errors.New("timestamp is empty")
	ErrOutsideInterval  = errors.New("timestamp outside filter interval")
	ErrEmptySeverity    = errors.New("severity is empty")
	ErrSeverityFiltered = errors.New("severity excluded by filter")
	ErrEmptyMessage     = errors.New("message is empty")
)

// Builder turns raw field strings into LogEntry values, applying a Filter
// and recording each accepted entry in a severity.Counts.
type Builder struct {
	filter Filter
	counts *severity.Counts
}

// NewBuilder creates a Builder. A nil counts gets a fresh registry.
func NewBuilder(filter Filter, counts *severity.Counts) *Builder {
	if counts == nil {
		counts = severity.NewCounts()
	}
	return &Builder{
		filter: filter,
		counts: counts,
	}
}

// Counts returns the registry the builder increments.
func (b *Builder) Counts() *severity.Counts {
	return b.counts
}

// Filter returns the active filter.
func (b *Builder) Filter() Filter {
	return b.filter
}

// Build returns the entry and true when every check passes, or a zero
// LogEntry and false otherwise.
func (b *Builder) Build(ts, sev, message string) (LogEntry, bool) {
	e, err := b.Attempt(ts, sev, message)
	return e, err == nil
}

// Attempt is Build with the reason for rejection. Checks run in a fixed
// order and the first failure is returned. The counts are incremented only
// when the entry is returned.
func (b *Builder) Attempt(ts, sev, message string) (LogEntry, error) {
	ts = strings.TrimSpace(ts)
	sev = strings.TrimSpace(sev)
	message = strings.TrimSpace(message)

	if ts == "" {
		return LogEntry{}, ErrEmptyTimestamp
	}
	instant, err := timestamp.Parse(ts)
	if err != nil {
		return LogEntry{}, err
	}
	if !b.filter.AllowsInstant(instant) {
		return LogEntry{}, fmt.Errorf("%w: %s", ErrOutsideInterval, ts)
	}

	if sev == "" {
		return LogEntry{}, ErrEmptySeverity
	}
	s, err := severity.Classify(sev)
	if err != nil {
		return LogEntry{}, err
	}
	if !b.filter.AllowsSeverity(s) {
		return LogEntry{}, fmt.Errorf("%w: %s", ErrSeverityFiltered, s)
	}

	if message == "" {
		return LogEntry{}, ErrEmptyMessage
	}

	b.counts.Increment(s)

	return LogEntry{
		Timestamp: timestamp.Format(instant),
		Instant:   instant,
		Severity:  s,
		Message:   message,
	}, nil
}
