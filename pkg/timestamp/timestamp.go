// Package timestamp validates ISO-8601 log timestamps and renders them in the
// DD-MM-YYYY HH:MM:SS display form used in converted output.
package timestamp

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DisplayLayout is the Go layout of the canonical output form.
const DisplayLayout = "02-01-2006 15:04:05"

// layouts are tried in order. time.Parse accepts a fractional second after the
// seconds field even when the layout omits it, so only the offset forms differ.
var layouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
}

// ErrInvalidTimestamp is matched by every *TimestampError via errors.Is.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// TimestampError describes why a raw timestamp was rejected.
type TimestampError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *TimestampError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid timestamp %q: %s: %v", e.Raw, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid timestamp %q: %s", e.Raw, e.Reason)
}

func (e *TimestampError) Unwrap() error { return e.Err }

// Is reports whether target is ErrInvalidTimestamp.
func (e *TimestampError) Is(target error) bool {
	return target == ErrInvalidTimestamp
}

// Parse parses an ISO-8601 combined date-time such as 2024-01-15T10:30:00.
// Fractional seconds and a zone offset are optional. Timestamps without an
// offset are read as UTC.
func Parse(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, &TimestampError{Raw: raw, Reason: "empty value"}
	}
	if !strings.Contains(raw, "T") {
		return time.Time{}, &TimestampError{Raw: raw, Reason: "missing T separator between date and time"}
	}

	if !hasDateTimeShape(raw) {
		return time.Time{}, &TimestampError{Raw: raw, Reason: "not an ISO-8601 date-time"}
	}

	var firstErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}

	return time.Time{}, &TimestampError{Raw: raw, Reason: "not an ISO-8601 date-time", Err: firstErr}
}

// hasDateTimeShape checks the fixed YYYY-MM-DDTHH:MM:SS prefix. time.Parse
// accepts a one-digit hour, so the separator positions are checked first.
func hasDateTimeShape(raw string) bool {
	return len(raw) >= 19 &&
		raw[4] == '-' && raw[7] == '-' && raw[10] == 'T' &&
		raw[13] == ':' && raw[16] == ':'
}

// Format renders t in the display layout. The wall clock is kept as parsed,
// so an offset is dropped rather than converted.
func Format(t time.Time) string {
	return t.Format(DisplayLayout)
}

// Normalize parses raw and returns its DD-MM-YYYY HH:MM:SS form.
func Normalize(raw string) (string, error) {
	t, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return Format(t), nil
}
