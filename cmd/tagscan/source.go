package main

import (
	"context"
	"errors"
	"strings"

	"github.com/fwojciec/tagscan"
)

// Compile-time interface verification.
var _ tagscan.Fetcher = (*SourceFetcher)(nil)

// SourceFetcher routes http(s) sources to a web fetcher and everything else
// to a file fetcher.
type SourceFetcher struct {
	Files tagscan.Fetcher
	Web   tagscan.Fetcher
}

// IsWebSource reports whether source is an http or https URL.
func IsWebSource(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Fetch implements tagscan.Fetcher.
func (s *SourceFetcher) Fetch(ctx context.Context, source string) (string, error) {
	if IsWebSource(source) {
		if s.Web == nil {
			return "", tagscan.Errorf(tagscan.EINVALID, "web sources are not available")
		}
		return s.Web.Fetch(ctx, source)
	}
	if s.Files == nil {
		return "", tagscan.Errorf(tagscan.EINVALID, "file sources are not available")
	}
	return s.Files.Fetch(ctx, source)
}

// Close closes both fetchers.
func (s *SourceFetcher) Close() error {
	var errs []error
	for _, f := range []tagscan.Fetcher{s.Files, s.Web} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
