// Package readability narrows HTML pages to their main content using
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/tagscan"
	"github.com/go-shiori/go-readability"
)

// Ensure Cleaner implements tagscan.Cleaner at compile time.
var _ tagscan.Cleaner = (*Cleaner)(nil)

// Cleaner strips boilerplate from a page before tag extraction.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean returns the article content readability finds in rawHTML.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", tagscan.Errorf(tagscan.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	return article.Content, nil
}
