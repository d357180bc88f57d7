package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/ccollicutt/xmllog2json/pkg/severity"
	"github.com/ccollicutt/xmllog2json/pkg/timestamp"
)

// SeverityAll selects every severity in a filter specification.
const SeverityAll = "all"

// Filter restricts which entries a Builder accepts. The zero value accepts
// everything.
type Filter struct {
	severities map[severity.Severity]bool // nil means all
	start      *time.Time
	stop       *time.Time
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// WithSeverities limits accepted entries to the given severities.
// An empty list leaves severity filtering off.
func WithSeverities(sevs ...severity.Severity) FilterOption {
	return func(f *Filter) {
		if len(sevs) == 0 {
			f.severities = nil
			return
		}
		f.severities = make(map[severity.Severity]bool, len(sevs))
		for _, s := range sevs {
			f.severities[s] = true
		}
	}
}

// WithStart sets the inclusive lower bound of the accepted interval.
func WithStart(t time.Time) FilterOption {
	return func(f *Filter) {
		f.start = &t
	}
}

// WithStop sets the inclusive upper bound of the accepted interval.
func WithStop(t time.Time) FilterOption {
	return func(f *Filter) {
		f.stop = &t
	}
}

// NewFilter builds a Filter from options.
func NewFilter(opts ...FilterOption) Filter {
	var f Filter
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// AllowsSeverity reports whether s passes the severity allow-list.
func (f Filter) AllowsSeverity(s severity.Severity) bool {
	if f.severities == nil {
		return true
	}
	return f.severities[s]
}

// AllowsInstant reports whether t lies within [start, stop].
func (f Filter) AllowsInstant(t time.Time) bool {
	if f.start != nil && t.Before(*f.start) {
		return false
	}
	if f.stop != nil && t.After(*f.stop) {
		return false
	}
	return true
}

// Severities returns the allow-list in canonical order, or nil when every
// severity is accepted.
func (f Filter) Severities() []severity.Severity {
	if f.severities == nil {
		return nil
	}
	var out []severity.Severity
	for _, s := range severity.All() {
		if f.severities[s] {
			out = append(out, s)
		}
	}
	return out
}

// Start returns the lower bound, if any.
func (f Filter) Start() (time.Time, bool) {
	if f.start == nil {
		return time.Time{}, false
	}
	return *f.start, true
}

// Stop returns the upper bound, if any.
func (f Filter) Stop() (time.Time, bool) {
	if f.stop == nil {
		return time.Time{}, false
	}
	return *f.stop, true
}

// IsZero reports whether f filters nothing.
func (f Filter) IsZero() bool {
	return f.severities == nil && f.start == nil && f.stop == nil
}

// ParseFilter builds a Filter from user-supplied strings. sev is "", "all",
// a single severity or a comma-separated list; start and stop are ISO-8601
// date-times or empty.
//
// Values that cannot be understood switch that part of the filter off and
// are described in the returned warnings. ParseFilter never fails.
func ParseFilter(sev, start, stop string) (Filter, []string) {
	var opts []FilterOption
	var warnings []string

	if sevs, err := parseSeverityList(sev); err != nil {
		warnings = append(warnings, fmt.Sprintf("ignoring severity filter: %v", err))
	} else if len(sevs) > 0 {
		opts = append(opts, WithSeverities(sevs...))
	}

	if start = strings.TrimSpace(start); start != "" {
		t, err := timestamp.Parse(start)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring start bound: %v", err))
		} else {
			opts = append(opts, WithStart(t))
		}
	}

	if stop = strings.TrimSpace(stop); stop != "" {
		t, err := timestamp.Parse(stop)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring stop bound: %v", err))
		} else {
			opts = append(opts, WithStop(t))
		}
	}

	return NewFilter(opts...), warnings
}

func parseSeverityList(spec string) ([]severity.Severity, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, SeverityAll) {
		return nil, nil
	}

	var out []severity.Severity
	for _, part := range strings.Split(spec, ",") {
		s, err := severity.Classify(part)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
