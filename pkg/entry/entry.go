// Package entry validates raw log fields and builds immutable LogEntry values.
package entry

import (
	"time"

	"github.com/ccollicutt/xmllog2json/pkg/severity"
)

// LogEntry is a validated log record. Values are only produced by Builder,
// so a LogEntry in hand always passed every check.
type LogEntry struct {
	// Timestamp is the display form, DD-MM-YYYY HH:MM:SS.
	Timestamp string

	// Instant is the parsed point in time used for interval filtering.
	Instant time.Time

	// Severity is the canonical severity.
	Severity severity.Severity

	// Message is the non-empty message text.
	Message string
}

// Record is the serialisable form of a LogEntry.
type Record struct {
	Timestamp string            `json:"timestamp"`
	Severity  severity.Severity `json:"severity"`
	Message   string            `json:"message"`
}

// Record converts e to its serialisable mapping.
func (e LogEntry) Record() Record {
	return Record{
		Timestamp: e.Timestamp,
		Severity:  e.Severity,
		Message:   e.Message,
	}
}
