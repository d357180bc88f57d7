// Package document walks XML log documents and extracts the raw fields of
// each log record.
//
// A document looks like:
//
//	<logs>
//	  <log>
//	    <timestamp>2024-01-15T10:30:00</timestamp>
//	    <severity>ERROR</severity>
//	    <message>disk full</message>
//	  </log>
//	</logs>
//
// The root element's tag and the record tags are not checked. Inside a
// record only timestamp, severity and message are allowed.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// Recognised field tags.
const (
	TagTimestamp = "timestamp"
	TagSeverity  = "severity"
	TagMessage   = "message"
)

// ErrEmptyDocument is returned for input with no content or no root element.
var ErrEmptyDocument = errors.New("document is empty")

// SyntaxError wraps an XML parse failure.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed XML: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// UnrecognizedTagError reports a record field outside the known set.
type UnrecognizedTagError struct {
	// Tag is the offending element name.
	Tag string

	// Record is the 1-based position of the record in the document.
	Record int
}

func (e *UnrecognizedTagError) Error() string {
	return fmt.Sprintf("record %d: unrecognized tag %q (expected timestamp, severity, or message)", e.Record, e.Tag)
}

// IsStructural reports whether err means the document itself is unusable,
// as opposed to a single record failing validation.
func IsStructural(err error) bool {
	var syntaxErr *SyntaxError
	var tagErr *UnrecognizedTagError
	return errors.Is(err, ErrEmptyDocument) || errors.As(err, &syntaxErr) || errors.As(err, &tagErr)
}

// RawRecord holds the unvalidated text of one record's fields. Absent
// fields are empty strings.
type RawRecord struct {
	// Index is the 1-based position of the record in the document.
	Index int

	Timestamp string
	Severity  string
	Message   string
}

// Document is a fully parsed XML log document.
type Document struct {
	root *etree.Element
}

// Parse reads a whole XML document.
func Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &SyntaxError{Err: err}
	}

	root := doc.Root()
	if root == nil {
		return nil, ErrEmptyDocument
	}
	if err := checkTopLevel(doc); err != nil {
		return nil, &SyntaxError{Err: err}
	}

	return &Document{root: root}, nil
}

// checkTopLevel rejects what etree tolerates at the top level: more than one
// root element, or text outside the root.
func checkTopLevel(doc *etree.Document) error {
	if n := len(doc.ChildElements()); n != 1 {
		return fmt.Errorf("document has %d root elements, want 1", n)
	}
	for _, tok := range doc.Child {
		if cd, ok := tok.(*etree.CharData); ok && strings.TrimSpace(cd.Data) != "" {
			return fmt.Errorf("unexpected text %q outside the root element", strings.TrimSpace(cd.Data))
		}
	}
	return nil
}

// RootTag returns the name of the document's root element.
func (d *Document) RootTag() string {
	return d.root.Tag
}

// Len returns the number of records in the document.
func (d *Document) Len() int {
	return len(d.root.ChildElements())
}

// Walk returns a fresh iterator over the document's records. Walking does
// not modify the document, so it may be walked any number of times.
func (d *Document) Walk() *Walker {
	return &Walker{records: d.root.ChildElements()}
}

// Records walks the whole document. It fails on the first structural
// error, returning no records.
func (d *Document) Records() ([]RawRecord, error) {
	w := d.Walk()
	out := make([]RawRecord, 0, len(w.records))
	for {
		rec, err := w.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

// Walker iterates a document's records lazily.
// A Walker is not safe for concurrent use.
type Walker struct {
	records []*etree.Element
	pos     int
}

// Next returns the next record. It returns io.EOF when the document is
// exhausted and *UnrecognizedTagError when a record has an unknown field.
// After an error the walker stays at the failing record.
func (w *Walker) Next() (RawRecord, error) {
	if w.pos >= len(w.records) {
		return RawRecord{}, io.EOF
	}

	rec, err := extract(w.records[w.pos], w.pos+1)
	if err != nil {
		return RawRecord{}, err
	}
	w.pos++
	return rec, nil
}

func extract(el *etree.Element, index int) (RawRecord, error) {
	rec := RawRecord{Index: index}
	for _, field := range el.ChildElements() {
		// A repeated tag overwrites the earlier value.
		switch field.FullTag() {
		case TagTimestamp:
			rec.Timestamp = field.Text()
		case TagSeverity:
			rec.Severity = field.Text()
		case TagMessage:
			rec.Message = field.Text()
		default:
			return RawRecord{}, &UnrecognizedTagError{Tag: field.FullTag(), Record: index}
		}
	}
	return rec, nil
}
