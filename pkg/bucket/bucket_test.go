package bucket

import (
	"encoding/json"
	"testing"

	"github.com/ccollicutt/xmllog2json/pkg/entry"
	"github.com/ccollicutt/xmllog2json/pkg/severity"
)

func mustBuild(t *testing.T, b *entry.Builder, ts, sev, msg string) entry.LogEntry {
	t.Helper()
	e, err := b.Attempt(ts, sev, msg)
	if err != nil {
		t.Fatalf("Attempt(%q, %q, %q) error = %v", ts, sev, msg, err)
	}
	return e
}

func TestNew_AllKeysPresent(t *testing.T) {
	b := New()
	for _, s := range severity.All() {
		if got := b.Get(s); got == nil || len(got) != 0 {
			t.Errorf("Get(%s) = %v, want empty non-nil slice", s, got)
		}
	}
	if b.Total() != 0 {
		t.Errorf("Total() = %d, want 0", b.Total())
	}
	if len(b.NonEmpty()) != 0 {
		t.Errorf("NonEmpty() = %v, want none", b.NonEmpty())
	}
}

func TestBucket_OrderAndGrouping(t *testing.T) {
	builder := entry.NewBuilder(entry.Filter{}, nil)
	entries := []entry.LogEntry{
		mustBuild(t, builder, "2024-01-15T10:00:00", "ERROR", "e1"),
		mustBuild(t, builder, "2024-01-15T10:00:01", "INFO", "i1"),
		mustBuild(t, builder, "2024-01-15T09:00:00", "ERROR", "e2"),
		mustBuild(t, builder, "2024-01-15T10:00:03", "ERROR", "e3"),
	}

	b := Bucket(entries)

	if b.Len(severity.Error) != 3 || b.Len(severity.Info) != 1 || b.Len(severity.Warning) != 0 {
		t.Fatalf("lens = %d/%d/%d", b.Len(severity.Warning), b.Len(severity.Info), b.Len(severity.Error))
	}

	// Document order, not timestamp order.
	errs := b.Get(severity.Error)
	for i, want := range []string{"e1", "e2", "e3"} {
		if errs[i].Message != want {
			t.Errorf("Error[%d].Message = %q, want %q", i, errs[i].Message, want)
		}
	}

	nonEmpty := b.NonEmpty()
	if len(nonEmpty) != 2 || nonEmpty[0] != severity.Info || nonEmpty[1] != severity.Error {
		t.Errorf("NonEmpty() = %v, want [INFO ERROR]", nonEmpty)
	}
	if b.Total() != 4 {
		t.Errorf("Total() = %d, want 4", b.Total())
	}
}

func TestDocument_JSONShape(t *testing.T) {
	builder := entry.NewBuilder(entry.Filter{}, nil)
	b := Bucket([]entry.LogEntry{
		mustBuild(t, builder, "2024-01-15T10:30:00", "warning", "disk"),
	})

	data, err := json.Marshal(b.Document(severity.Warning))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"messages":[{"timestamp":"15-01-2024 10:30:00","severity":"WARNING","message":"disk"}]}`
	if string(data) != want {
		t.Errorf("JSON = %s\nwant %s", data, want)
	}

	empty, err := json.Marshal(b.Document(severity.Error))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(empty) != `{"messages":[]}` {
		t.Errorf("empty bucket JSON = %s, want {\"messages\":[]}", empty)
	}
}

func TestBucket_FreshEachTime(t *testing.T) {
	builder := entry.NewBuilder(entry.Filter{}, nil)
	entries := []entry.LogEntry{mustBuild(t, builder, "2024-01-15T10:30:00", "INFO", "a")}

	first := Bucket(entries)
	second := Bucket(entries)
	if first.Len(severity.Info) != 1 || second.Len(severity.Info) != 1 {
		t.Errorf("buckets leaked between calls: %d, %d", first.Len(severity.Info), second.Len(severity.Info))
	}
}
