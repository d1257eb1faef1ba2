// Package http provides an HTTP-based implementation of tagscan.Fetcher
// for pages that do not need JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/tagscan"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent is sent unless WithUserAgent overrides it. Many sites
// refuse requests that do not look like they come from a browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// DefaultMaxBytes caps the size of a fetched body.
const DefaultMaxBytes = 32 << 20

// Ensure Fetcher implements tagscan.Fetcher at compile time.
var _ tagscan.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves markup from URLs using plain HTTP GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBytes  int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBytes limits how much of a response body is read.
// Larger bodies are an error.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBytes {
		return "", tagscan.Errorf(tagscan.EINVALID, "response from %s exceeds %d bytes", url, f.maxBytes)
	}

	return string(body), nil
}

// statusError classifies a non-200 response. Missing pages and other client
// errors carry application codes so retries skip them; server errors stay
// uncoded and are retried.
func statusError(code int, url string) error {
	switch {
	case code == http.StatusNotFound || code == http.StatusGone:
		return tagscan.Errorf(tagscan.ENOTFOUND, "HTTP %d for %s", code, url)
	case code == http.StatusTooManyRequests:
		return fmt.Errorf("HTTP %d for %s", code, url)
	case code >= 400 && code < 500:
		return tagscan.Errorf(tagscan.EINVALID, "HTTP %d for %s", code, url)
	}
	return fmt.Errorf("HTTP %d for %s", code, url)
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
