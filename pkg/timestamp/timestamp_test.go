package timestamp

import (
	"errors"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "basic",
			raw:  "2024-01-15T10:30:00",
			want: "15-01-2024 10:30:00",
		},
		{
			name: "fractional seconds truncated",
			raw:  "2024-01-15T10:30:00.123456",
			want: "15-01-2024 10:30:00",
		},
		{
			name: "utc designator",
			raw:  "2024-01-15T10:30:00Z",
			want: "15-01-2024 10:30:00",
		},
		{
			name: "offset keeps wall clock",
			raw:  "2024-01-15T23:30:00+05:30",
			want: "15-01-2024 23:30:00",
		},
		{
			name: "compact offset",
			raw:  "2024-01-15T23:30:00+0530",
			want: "15-01-2024 23:30:00",
		},
		{
			name: "leap day",
			raw:  "2024-02-29T00:00:00",
			want: "29-02-2024 00:00:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalize_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason string
	}{
		{"empty", "", "empty value"},
		{"not a date", "not-a-date", "missing T separator between date and time"},
		{"out of range fields", "2024-13-40T99:99:99", "not an ISO-8601 date-time"},
		{"space separator", "2024-01-15 10:30:00", "missing T separator between date and time"},
		{"date only", "2024-01-15", "missing T separator between date and time"},
		{"non digit field", "2024-0a-15T10:30:00", "not an ISO-8601 date-time"},
		{"missing seconds", "2024-01-15T10:30", "not an ISO-8601 date-time"},
		{"trailing garbage", "2024-01-15T10:30:00abc", "not an ISO-8601 date-time"},
		{"february 30", "2024-02-30T10:30:00", "not an ISO-8601 date-time"},
		{"single digit hour", "2024-01-15T9:30:00", "not an ISO-8601 date-time"},
		{"single digit hour utc", "2024-01-15T9:30:00Z", "not an ISO-8601 date-time"},
		{"single digit month", "2024-1-15T10:30:00", "not an ISO-8601 date-time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw)
			if err == nil {
				t.Fatalf("Normalize(%q) = %q, want error", tt.raw, got)
			}
			if got != "" {
				t.Errorf("Normalize(%q) returned partial output %q", tt.raw, got)
			}
			if !errors.Is(err, ErrInvalidTimestamp) {
				t.Errorf("error %v is not ErrInvalidTimestamp", err)
			}
			var tsErr *TimestampError
			if !errors.As(err, &tsErr) {
				t.Fatalf("error %T is not *TimestampError", err)
			}
			if tsErr.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", tsErr.Reason, tt.reason)
			}
			if tsErr.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", tsErr.Raw, tt.raw)
			}
		})
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	inputs := []string{
		"2024-01-15T10:30:00",
		"1999-12-31T23:59:59",
		"2000-02-29T12:00:01",
		"2030-07-04T00:00:00",
	}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			out, err := Normalize(raw)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}

			back, err := time.Parse(DisplayLayout, out)
			if err != nil {
				t.Fatalf("re-parsing %q: %v", out, err)
			}
			orig, err := Parse(raw)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !back.Equal(orig) {
				t.Errorf("round trip %q -> %q -> %v, want %v", raw, out, back, orig)
			}
		})
	}
}

func TestParse_NaiveIsUTC(t *testing.T) {
	got, err := Parse("2024-06-01T08:00:00")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Parse() = %v, want %v", got, want)
	}
}

func TestParse_OffsetInstant(t *testing.T) {
	got, err := Parse("2024-06-01T10:00:00+02:00")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Parse() = %v, want instant %v", got, want)
	}
}

func TestTimestampError_Message(t *testing.T) {
	err := &TimestampError{Raw: "x", Reason: "empty value"}
	if err.Error() != `invalid timestamp "x": empty value` {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want nil", err.Unwrap())
	}
}
