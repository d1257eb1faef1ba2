// Package goquery provides a DOM-based tagscan.TagExtractor built on an
// HTML5 parser, used as a reference point for the linear scanner.
package goquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tagscan"
)

// Approach is the Name of Extractor.
const Approach = "dom"

// validTagName restricts names to plain CSS type selectors.
var validTagName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// Ensure Extractor implements tagscan.TagExtractor at compile time.
var _ tagscan.TagExtractor = (*Extractor)(nil)

// Extractor parses the whole input into a DOM and selects the requested
// elements. The HTML5 parser repairs malformed markup silently, so the
// returned Extraction never carries structural errors, and element names
// are matched case-insensitively.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Name returns Approach.
func (e *Extractor) Name() string {
	return Approach
}

// ExtractTags returns the inner HTML of every requested element in document
// order. Returns EINVALID for tag names that are not plain element names.
func (e *Extractor) ExtractTags(input string, tags []string) (*tagscan.Extraction, error) {
	selector, err := buildSelector(tags)
	if err != nil {
		return nil, err
	}

	ext := &tagscan.Extraction{Approach: Approach}
	if input == "" || selector == "" {
		return ext, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil, tagscan.Errorf(tagscan.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		content, err := sel.Html()
		if err != nil {
			ext.Errors = append(ext.Errors, fmt.Sprintf("Error: rendering <%s>: %v", name, err))
			return
		}
		ext.Records = append(ext.Records, tagscan.Record{
			Tag:     name,
			Content: content,
			Status:  tagscan.StatusComplete,
		})
	})

	return ext, nil
}

// buildSelector joins the requested names into one group selector so that
// matches come back in document order.
func buildSelector(tags []string) (string, error) {
	seen := make(map[string]bool, len(tags))
	parts := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if !validTagName.MatchString(tag) {
			return "", tagscan.Errorf(tagscan.EINVALID, "invalid tag name %q", tag)
		}
		name := strings.ToLower(tag)
		if seen[name] {
			continue
		}
		seen[name] = true
		parts = append(parts, name)
	}
	return strings.Join(parts, ", "), nil
}
