// Package etree provides an XML-based tagscan.TagExtractor. It treats the
// input as the body of a synthetic root element and requires it to be
// well-formed XML, which makes it a strict counterpart to the scanner.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/tagscan"
)

// Approach is the Name of Extractor.
const Approach = "xml"

// Ensure Extractor implements tagscan.TagExtractor at compile time.
var _ tagscan.TagExtractor = (*Extractor)(nil)

// Extractor parses input as XML and collects the text content of requested
// elements.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Name returns Approach.
func (e *Extractor) Name() string {
	return Approach
}

// ExtractTags returns the text content of every requested element in
// document order. Input that is not well-formed XML yields no records and
// one entry in Extraction.Errors.
func (e *Extractor) ExtractTags(input string, tags []string) (*tagscan.Extraction, error) {
	requested := make(map[string]bool, len(tags))
	for _, tag := range tags {
		if tag != "" {
			requested[tag] = true
		}
	}

	ext := &tagscan.Extraction{Approach: Approach}
	if input == "" || len(requested) == 0 {
		return ext, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString("<root>" + input + "</root>"); err != nil {
		ext.Errors = append(ext.Errors, "Error: "+err.Error())
		return ext, nil
	}

	collect(doc.Root(), requested, &ext.Records)
	return ext, nil
}

// collect appends matching descendants of el in pre-order.
func collect(el *etree.Element, requested map[string]bool, out *[]tagscan.Record) {
	for _, child := range el.ChildElements() {
		if requested[child.FullTag()] {
			*out = append(*out, tagscan.Record{
				Tag:     child.FullTag(),
				Content: textContent(child),
				Status:  tagscan.StatusComplete,
			})
		}
		collect(child, requested, out)
	}
}

func textContent(el *etree.Element) string {
	var sb strings.Builder
	appendText(&sb, el)
	return sb.String()
}

func appendText(sb *strings.Builder, el *etree.Element) {
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			appendText(sb, t)
		}
	}
}
