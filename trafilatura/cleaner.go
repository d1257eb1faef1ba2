// Package trafilatura narrows HTML pages to their main content using
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/tagscan"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements tagscan.Cleaner at compile time.
var _ tagscan.Cleaner = (*Cleaner)(nil)

// Cleaner strips boilerplate from a page before tag extraction.
type Cleaner struct {
	fallback bool
}

// Option configures a Cleaner.
type Option func(*Cleaner)

// WithFallback toggles trafilatura's readability and dom-distiller
// fallbacks. Enabled by default.
func WithFallback(enabled bool) Option {
	return func(c *Cleaner) {
		c.fallback = enabled
	}
}

// NewCleaner creates a new Cleaner.
func NewCleaner(opts ...Option) *Cleaner {
	c := &Cleaner{fallback: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean returns the main content of rawHTML rendered back to HTML.
// A page with no detectable content yields an empty string.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", tagscan.Errorf(tagscan.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: c.fallback,
	})
	if err != nil {
		return "", err
	}
	if result.ContentNode == nil {
		return "", nil
	}

	return renderNode(result.ContentNode)
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
