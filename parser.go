package tagscan

import (
	"io"
	"os"
	"strings"
)

// Parser extracts requested tags from markup. Diagnostics are either
// displayed immediately through a sink or stored for retrieval with Errors.
//
// Parse keeps all scan state local to the call. In store mode the error
// buffer is shared by every call on the Parser, so goroutines that need the
// errors of their own input use separate Parsers.
type Parser struct {
	display bool
	output  io.Writer
	sink    ErrorSink
	buffer  *ErrorBuffer
}

// Option configures a Parser.
type Option func(*Parser)

// WithOutput sets the writer diagnostics are displayed on.
// Defaults to os.Stderr. Ignored in store mode.
func WithOutput(w io.Writer) Option {
	return func(p *Parser) {
		p.output = w
	}
}

// WithSink sets the sink diagnostics are displayed through, replacing the
// default line writer. Ignored in store mode.
func WithSink(s ErrorSink) Option {
	return func(p *Parser) {
		p.sink = s
	}
}

// NewParser creates a Parser. With displayErrors set, diagnostics are
// written as they are detected; otherwise they are buffered and returned by
// Errors.
func NewParser(displayErrors bool, opts ...Option) *Parser {
	p := &Parser{
		display: displayErrors,
		output:  os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}

	if !p.display {
		p.buffer = &ErrorBuffer{}
		p.sink = p.buffer
	} else if p.sink == nil {
		p.sink = NewWriterSink(p.output)
	}

	return p
}

// DisplayErrors reports whether diagnostics are displayed rather than stored.
func (p *Parser) DisplayErrors() bool {
	return p.display
}

// Errors returns the stored diagnostic lines of every Parse call so far.
// It is always empty in display mode.
func (p *Parser) Errors() []string {
	if p.buffer == nil {
		return []string{}
	}
	return p.buffer.Errors()
}

// Diagnostics returns the stored diagnostics of every Parse call so far,
// with their offsets. It is always empty in display mode.
func (p *Parser) Diagnostics() []Diagnostic {
	if p.buffer == nil {
		return nil
	}
	return p.buffer.Diagnostics()
}

// Parse scans input once and returns a record per requested opening tag in
// encounter order, interleaved with MALFORMED records for unexpected closing
// tags at the point they were found. Duplicate and empty names in tags are
// ignored, so a bare "<>" is never extracted even when "" is requested;
// empty input or no usable names yields no records.
func (p *Parser) Parse(input string, tags []string) []Record {
	if input == "" {
		return nil
	}
	requested := tagSet(tags)
	if len(requested) == 0 {
		return nil
	}

	s := &parseState{
		input:     input,
		requested: requested,
		sink:      p.sink,
	}
	s.scan()
	s.resolveUnclosed()
	return s.results
}

func tagSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}

// openTag is an opening tag that has not been matched yet.
type openTag struct {
	name         string
	start        int
	contentStart int
	resultIndex  int
}

// parseState is owned by a single Parse call.
type parseState struct {
	input     string
	requested map[string]struct{}
	sink      ErrorSink

	cursor  int
	stack   []openTag
	results []Record
}

func (s *parseState) scan() {
	for s.cursor < len(s.input) {
		i := strings.IndexByte(s.input[s.cursor:], '<')
		if i < 0 {
			return
		}
		lt := s.cursor + i

		tok, ok := ScanTag(s.input, lt)
		if !ok {
			s.cursor = lt + 1
			continue
		}

		if tok.Closing {
			s.closeTag(tok)
		} else if s.isRequested(tok.Name) {
			s.openTag(tok)
		}
		s.cursor = tok.End + 1
	}
}

func (s *parseState) isRequested(name string) bool {
	_, ok := s.requested[name]
	return ok
}

func (s *parseState) openTag(tok TagToken) {
	s.stack = append(s.stack, openTag{
		name:         tok.Name,
		start:        tok.Start,
		contentStart: tok.End + 1,
		resultIndex:  len(s.results),
	})
	s.results = append(s.results, Record{
		Tag:     tok.Name,
		Content: PendingContent,
		Status:  StatusPending,
	})
}

// closeTag matches tok against the nearest open tag of the same name. Every
// entry above the match is closed in the same step, and all of them end at
// tok.Start.
func (s *parseState) closeTag(tok TagToken) {
	depth := -1
	for i := len(s.stack) - 1; i >= 0; i-- {
		if s.stack[i].name == tok.Name {
			depth = i
			break
		}
	}

	if depth < 0 {
		if s.isRequested(tok.Name) {
			s.unexpectedClose(tok)
		}
		return
	}

	for i := len(s.stack) - 1; i >= depth; i-- {
		entry := s.stack[i]
		content := ""
		if tok.Start >= entry.contentStart {
			content = s.input[entry.contentStart:tok.Start]
		}
		s.results[entry.resultIndex].Content = content
		s.results[entry.resultIndex].Status = StatusComplete
	}
	s.stack = s.stack[:depth]
}

func (s *parseState) unexpectedClose(tok TagToken) {
	d := Diagnostic{
		Kind:   UnexpectedClosingTag,
		Tag:    tok.Name,
		Offset: tok.Start,
	}
	s.results = append(s.results, Record{
		Tag:     MalformedTag,
		Content: d.Message(),
		Status:  StatusMalformed,
	})
	s.sink.Report(d)
}

// resolveUnclosed marks every tag still open at end of input, most recent
// first. The slot a stack entry points at is always the most recent pending
// record with that name.
func (s *parseState) resolveUnclosed() {
	for len(s.stack) > 0 {
		top := len(s.stack) - 1
		entry := s.stack[top]
		s.stack = s.stack[:top]

		rec := &s.results[entry.resultIndex]
		if rec.Status != StatusPending {
			continue
		}
		rec.Content = MissingClosingContent
		rec.Status = StatusUnclosed
		s.sink.Report(Diagnostic{
			Kind:   MissingClosingTag,
			Tag:    entry.name,
			Offset: entry.start,
		})
	}
}
