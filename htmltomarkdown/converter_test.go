package htmltomarkdown_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/tagscan"
	"github.com/fwojciec/tagscan/htmltomarkdown"
	"github.com/fwojciec/tagscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Converter implements tagscan.Converter at compile time.
var _ tagscan.Converter = (*htmltomarkdown.Converter)(nil)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h2>Subtitle</h2><p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "## Subtitle")
		assert.Contains(t, md, "Hello, world!")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`Visit <a href="https://example.com">Example</a> for more info.`)

		require.NoError(t, err)
		assert.Contains(t, md, "[Example](https://example.com)")
	})

	t.Run("tolerates fragments with stray closing tags", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`a</p>b`)

		require.NoError(t, err)
		assert.Contains(t, md, "a")
		assert.Contains(t, md, "b")
	})

	t.Run("returns empty string for blank input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert("  \n ")

		require.NoError(t, err)
		assert.Empty(t, md)
	})
}

func TestConvertRecords(t *testing.T) {
	t.Parallel()

	t.Run("converts only complete records", func(t *testing.T) {
		t.Parallel()

		records := []tagscan.Record{
			{Tag: "div", Content: "<strong>bold</strong>", Status: tagscan.StatusComplete},
			{Tag: "div", Content: tagscan.MissingClosingContent, Status: tagscan.StatusUnclosed},
		}

		out, err := htmltomarkdown.ConvertRecords(htmltomarkdown.NewConverter(), records)

		require.NoError(t, err)
		assert.Equal(t, "**bold**", out[0].Content)
		assert.Equal(t, tagscan.MissingClosingContent, out[1].Content)
		assert.Equal(t, "<strong>bold</strong>", records[0].Content, "input must not change")
	})

	t.Run("returns converter errors as invalid", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", errors.New("boom")
			},
		}
		records := []tagscan.Record{{Tag: "p", Content: "x", Status: tagscan.StatusComplete}}

		_, err := htmltomarkdown.ConvertRecords(conv, records)

		require.Error(t, err)
		assert.Equal(t, tagscan.EINVALID, tagscan.ErrorCode(err))
	})
}
