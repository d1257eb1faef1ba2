package tagscan

import (
	"fmt"
	"io"
	"sync"
)

// DiagnosticKind identifies the structural anomaly behind a Diagnostic.
type DiagnosticKind int

const (
	// UnexpectedClosingTag is a closing tag for a requested name with no
	// matching open tag at the time it is encountered.
	UnexpectedClosingTag DiagnosticKind = iota + 1

	// MissingClosingTag is a requested opening tag still unmatched when the
	// input ends.
	MissingClosingTag
)

// String returns a short machine-friendly name for the kind.
func (k DiagnosticKind) String() string {
	switch k {
	case UnexpectedClosingTag:
		return "unexpected_closing_tag"
	case MissingClosingTag:
		return "missing_closing_tag"
	default:
		return "unknown"
	}
}

// Diagnostic describes one malformed-structure finding.
type Diagnostic struct {
	Kind DiagnosticKind

	// Tag is the name of the offending tag.
	Tag string

	// Offset is the byte offset of the offending tag's '<'.
	Offset int
}

// Message returns the human-readable description of the finding. For an
// unexpected closing tag it is also the Content of the MALFORMED record.
func (d Diagnostic) Message() string {
	switch d.Kind {
	case UnexpectedClosingTag:
		return fmt.Sprintf("Unexpected closing tag </%s> at position %d", d.Tag, d.Offset)
	case MissingClosingTag:
		return fmt.Sprintf("%s for tag '%s'", MissingClosingContent, d.Tag)
	default:
		return fmt.Sprintf("Unknown problem with tag '%s' at position %d", d.Tag, d.Offset)
	}
}

// String formats the diagnostic as a single error line.
func (d Diagnostic) String() string {
	return "Error: " + d.Message()
}

// ErrorSink receives diagnostics as the scanner detects them.
type ErrorSink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts an ordinary function to the ErrorSink interface.
type SinkFunc func(d Diagnostic)

// Report calls f(d).
func (f SinkFunc) Report(d Diagnostic) {
	f(d)
}

var _ ErrorSink = (*WriterSink)(nil)

// WriterSink writes each diagnostic as one line to an io.Writer.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink returns a sink that writes to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Report writes the diagnostic line. Write errors are ignored; the scan
// never stops on diagnostics.
func (s *WriterSink) Report(d Diagnostic) {
	_, _ = fmt.Fprintln(s.w, d.String())
}

var _ ErrorSink = (*ErrorBuffer)(nil)

// ErrorBuffer collects diagnostics for later retrieval.
// ErrorBuffer is safe for concurrent use.
type ErrorBuffer struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Report appends the diagnostic.
func (b *ErrorBuffer) Report(d Diagnostic) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.diags = append(b.diags, d)
}

// Errors returns the collected diagnostics as display lines in report order.
func (b *ErrorBuffer) Errors() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.diags))
	for i, d := range b.diags {
		out[i] = d.String()
	}
	return out
}

// Diagnostics returns a copy of the collected diagnostics in report order.
func (b *ErrorBuffer) Diagnostics() []Diagnostic {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Diagnostic, len(b.diags))
	copy(out, b.diags)
	return out
}

// Len returns the number of collected diagnostics.
func (b *ErrorBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.diags)
}

// Reset discards all collected diagnostics.
func (b *ErrorBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.diags = nil
}
