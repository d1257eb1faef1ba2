// Package htmltomarkdown renders extracted tag content as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/tagscan"
)

// Ensure Converter implements tagscan.Converter at compile time.
var _ tagscan.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML fragments to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown. Record content is often
// empty, so blank input converts to an empty string rather than an error.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(result), nil
}

// ConvertRecords returns a copy of records with the content of every
// complete record converted to Markdown. MALFORMED and unclosed records keep
// their marker text.
func ConvertRecords(conv tagscan.Converter, records []tagscan.Record) ([]tagscan.Record, error) {
	out := make([]tagscan.Record, len(records))
	for i, r := range records {
		out[i] = r
		if r.Status != tagscan.StatusComplete {
			continue
		}
		md, err := conv.Convert(r.Content)
		if err != nil {
			return nil, tagscan.Errorf(tagscan.EINVALID, "converting <%s> record %d: %v", r.Tag, i, err)
		}
		out[i].Content = md
	}
	return out, nil
}
