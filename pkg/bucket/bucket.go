// Package bucket groups accepted log entries by severity, keeping document
// order within each group.
package bucket

import (
	"github.com/ccollicutt/xmllog2json/pkg/entry"
	"github.com/ccollicutt/xmllog2json/pkg/severity"
)

// Messages is the JSON envelope written for one severity.
type Messages struct {
	Messages []entry.Record `json:"messages"`
}

// Buckets holds one ordered record list per severity. Every severity has a
// list from construction, so an empty group serialises as [] rather than
// being absent.
type Buckets struct {
	groups map[severity.Severity][]entry.Record
}

// New returns empty buckets for all severities.
func New() *Buckets {
	b := &Buckets{groups: make(map[severity.Severity][]entry.Record, 3)}
	for _, s := range severity.All() {
		b.groups[s] = []entry.Record{}
	}
	return b
}

// Bucket groups entries by severity in the order given.
func Bucket(entries []entry.LogEntry) *Buckets {
	b := New()
	for _, e := range entries {
		b.Add(e)
	}
	return b
}

// Add appends e's record to its severity's list.
func (b *Buckets) Add(e entry.LogEntry) {
	b.groups[e.Severity] = append(b.groups[e.Severity], e.Record())
}

// Get returns the records for s. The slice must not be modified.
func (b *Buckets) Get(s severity.Severity) []entry.Record {
	return b.groups[s]
}

// Len returns the number of records for s.
func (b *Buckets) Len(s severity.Severity) int {
	return len(b.groups[s])
}

// Total returns the number of records across all severities.
func (b *Buckets) Total() int {
	total := 0
	for _, recs := range b.groups {
		total += len(recs)
	}
	return total
}

// Severities returns every severity in canonical order.
func (b *Buckets) Severities() []severity.Severity {
	return severity.All()
}

// NonEmpty returns the severities with at least one record, in canonical order.
func (b *Buckets) NonEmpty() []severity.Severity {
	var out []severity.Severity
	for _, s := range severity.All() {
		if len(b.groups[s]) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Document returns the serialisable envelope for s.
func (b *Buckets) Document(s severity.Severity) Messages {
	recs := b.groups[s]
	if recs == nil {
		recs = []entry.Record{}
	}
	return Messages{Messages: recs}
}
