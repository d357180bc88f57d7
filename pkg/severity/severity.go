// Package severity defines the closed set of log severities and the
// per-severity tally kept while converting documents.
package severity

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Severity is one of the three recognised log levels.
type Severity string

const (
	Warning Severity = "WARNING"
	Info    Severity = "INFO"
	Error   Severity = "ERROR"
)

// All returns every severity in canonical order.
func All() []Severity {
	return []Severity{Warning, Info, Error}
}

// String returns the canonical spelling.
func (s Severity) String() string {
	return string(s)
}

// Valid reports whether s is one of the canonical values.
func (s Severity) Valid() bool {
	switch s {
	case Warning, Info, Error:
		return true
	}
	return false
}

// ErrUnknownSeverity is matched by every *SeverityError via errors.Is.
var ErrUnknownSeverity = errors.New("unknown severity")

// SeverityError is returned when a token does not name a known severity.
type SeverityError struct {
	Raw string
}

func (e *SeverityError) Error() string {
	return fmt.Sprintf("unknown severity %q (must be WARNING, INFO, or ERROR)", e.Raw)
}

// Is reports whether target is ErrUnknownSeverity.
func (e *SeverityError) Is(target error) bool {
	return target == ErrUnknownSeverity
}

// Classify maps a raw token to a Severity. Matching is case-insensitive:
// "warning", "Warning" and "WARNING" all yield Warning. Surrounding
// whitespace is ignored.
func Classify(raw string) (Severity, error) {
	// A Caser carries state, so one is made per call.
	s := Severity(cases.Upper(language.Und).String(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", &SeverityError{Raw: raw}
	}
	return s, nil
}
