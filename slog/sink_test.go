package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/tagscan"
	tsslog "github.com/fwojciec/tagscan/slog"
	"github.com/stretchr/testify/assert"
)

func TestSink_Report(t *testing.T) {
	t.Parallel()

	t.Run("logs diagnostics from the parser as warnings", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		p := tagscan.NewParser(true, tagscan.WithSink(tsslog.NewSink(logger)))
		p.Parse("<div>Start content</div></div>", []string{"div"})

		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "kind=unexpected_closing_tag")
		assert.Contains(t, output, "tag=div")
		assert.Contains(t, output, "offset=24")
	})

	t.Run("logs missing closing tags", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		tsslog.NewSink(logger).Report(tagscan.Diagnostic{Kind: tagscan.MissingClosingTag, Tag: "p", Offset: 3})

		output := buf.String()
		assert.Contains(t, output, "kind=missing_closing_tag")
		assert.Contains(t, output, "\"MALFORMED - Missing closing tag for tag 'p'\"")
	})
}
