package mock

import "github.com/fwojciec/tagscan"

var _ tagscan.Converter = (*Converter)(nil)

// Converter is a mock implementation of tagscan.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ tagscan.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of tagscan.Cleaner.
type Cleaner struct {
	CleanFn func(html string) (string, error)
}

func (c *Cleaner) Clean(html string) (string, error) {
	return c.CleanFn(html)
}
