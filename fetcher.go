package tagscan

import "context"

// Fetcher retrieves markup to scan.
// Implementations may read files, issue HTTP requests or drive a browser.
type Fetcher interface {
	// Fetch returns the markup found at source.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, source string) (markup string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter throttles requests per host.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
