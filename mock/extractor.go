package mock

import "github.com/fwojciec/tagscan"

var _ tagscan.TagExtractor = (*TagExtractor)(nil)

// TagExtractor is a mock implementation of tagscan.TagExtractor.
type TagExtractor struct {
	NameFn        func() string
	ExtractTagsFn func(input string, tags []string) (*tagscan.Extraction, error)
}

func (e *TagExtractor) Name() string {
	return e.NameFn()
}

func (e *TagExtractor) ExtractTags(input string, tags []string) (*tagscan.Extraction, error) {
	return e.ExtractTagsFn(input, tags)
}

var _ tagscan.ErrorSink = (*ErrorSink)(nil)

// ErrorSink is a mock implementation of tagscan.ErrorSink.
type ErrorSink struct {
	ReportFn func(d tagscan.Diagnostic)
}

func (s *ErrorSink) Report(d tagscan.Diagnostic) {
	s.ReportFn(d)
}
