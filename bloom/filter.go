// Package bloom provides probabilistic visited-URL tracking for
// pagination chains using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for visited-URL tracking. A false positive
// ends a pagination chain early; a false negative never happens, so a
// cycle can never loop forever.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as visited.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL may have been visited. False positives
// are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// TestAndAdd marks the URL visited and reports whether it may have been
// seen before the call.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of URLs in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
