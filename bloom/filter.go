// Package bloom skips repeated sources in batch runs using a Bloom filter.
package bloom

import (
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers which sources a batch has already queued.
// It is safe for concurrent use.
type Filter struct {
	mu    sync.Mutex
	f     *bloom.BloomFilter
	exact map[string]struct{}
}

// NewFilter creates a filter sized for n expected sources with the given
// false positive rate. The rate only bounds how often Seen falls back to
// its exact set; Seen itself never reports an unseen source.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f:     bloom.NewWithEstimates(n, fpRate),
		exact: make(map[string]struct{}, n),
	}
}

// Key normalizes a source so trivially different spellings of the same
// page collide: surrounding space and any URL fragment are dropped.
func Key(source string) string {
	source = strings.TrimSpace(source)
	if i := strings.IndexByte(source, '#'); i >= 0 && strings.Contains(source, "://") {
		source = source[:i]
	}
	return source
}

// Add records source.
func (f *Filter) Add(source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := Key(source)
	f.f.AddString(key)
	f.exact[key] = struct{}{}
}

// Test returns true if source might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(source string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(Key(source))
}

// Seen records source and reports whether it was recorded before.
// Probable hits from the Bloom filter are confirmed against the exact set,
// so a false positive never skips a new source.
func (f *Filter) Seen(source string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := Key(source)
	if !f.f.TestAndAddString(key) {
		f.exact[key] = struct{}{}
		return false
	}
	if _, ok := f.exact[key]; ok {
		return true
	}
	f.exact[key] = struct{}{}
	return false
}

// EstimatedCount returns the approximate number of distinct sources added.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
