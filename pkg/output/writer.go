package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ccollicutt/xmllog2json/pkg/bucket"
	"github.com/ccollicutt/xmllog2json/pkg/severity"
)

// DefaultDir is where bucket files go when no directory is configured.
const DefaultDir = "output"

// Writer writes one JSON file per severity bucket.
type Writer struct {
	dir       string
	skipEmpty bool
	now       func() time.Time
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithSkipEmpty only writes buckets holding at least one record. By default
// every severity gets a file, empty ones containing {"messages": []}.
func WithSkipEmpty(skip bool) WriterOption {
	return func(w *Writer) { w.skipEmpty = skip }
}

// WithClock overrides the time source used in file names.
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) { w.now = now }
}

// NewWriter creates a Writer targeting dir.
func NewWriter(dir string, opts ...WriterOption) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	w := &Writer{
		dir: dir,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// FileName returns the name used for a bucket file:
// <SEVERITY>_<index>_<unix millis>.json.
func FileName(s severity.Severity, index int, at time.Time) string {
	return fmt.Sprintf("%s_%d_%d.json", s, index, at.UnixMilli())
}

// Write stores each bucket of b under the output directory, creating it if
// needed. index is the input file's position in the run. It returns the
// paths written, in canonical severity order.
func (w *Writer) Write(index int, b *bucket.Buckets) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	sevs := b.Severities()
	if w.skipEmpty {
		sevs = b.NonEmpty()
	}

	at := w.now()
	paths := make([]string, 0, len(sevs))
	for _, s := range sevs {
		path := filepath.Join(w.dir, FileName(s, index, at))
		if err := writeJSON(path, b.Document(s)); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path) // #nosec G304 -- path is built from the configured output dir
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
