package fs

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/tagscan"
)

// DefaultMaxBytes caps how much markup is read from one source.
const DefaultMaxBytes = 32 << 20

var _ tagscan.Fetcher = (*Fetcher)(nil)

// Fetcher reads markup from local files. The source "-" reads standard
// input.
type Fetcher struct {
	stdin    io.Reader
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithStdin sets the reader used for the "-" source.
func WithStdin(r io.Reader) Option {
	return func(f *Fetcher) {
		f.stdin = r
	}
}

// WithMaxBytes sets the maximum number of bytes read from one source.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		stdin:    os.Stdin,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the contents of the file at source.
// A missing file returns ENOTFOUND.
func (f *Fetcher) Fetch(ctx context.Context, source string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if source == "-" {
		return f.read(f.stdin, "standard input")
	}

	file, err := os.Open(source)
	if errors.Is(err, os.ErrNotExist) {
		return "", tagscan.Errorf(tagscan.ENOTFOUND, "file not found: %s", source)
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	return f.read(file, source)
}

func (f *Fetcher) read(r io.Reader, name string) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(b)) > f.maxBytes {
		return "", tagscan.Errorf(tagscan.EINVALID, "%s exceeds %d bytes", name, f.maxBytes)
	}
	return string(b), nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
