package slog

import (
	"log/slog"

	"github.com/fwojciec/tagscan"
)

var _ tagscan.ErrorSink = (*Sink)(nil)

// Sink reports parser diagnostics as structured warnings.
type Sink struct {
	logger *slog.Logger
}

// NewSink creates a new Sink.
func NewSink(logger *slog.Logger) *Sink {
	return &Sink{logger: logger}
}

// Report logs d at warn level.
func (s *Sink) Report(d tagscan.Diagnostic) {
	s.logger.Warn(d.Message(),
		"kind", d.Kind.String(),
		"tag", d.Tag,
		"offset", d.Offset,
	)
}
