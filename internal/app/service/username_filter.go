package service

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// UsernameFilter is a bloom filter over known usernames. It short-circuits
// public profile lookups for usernames that definitely do not exist; a positive
// answer still requires a store read.
type UsernameFilter struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewUsernameFilter sizes the filter for the expected number of usernames and
// the acceptable false-positive rate.
func NewUsernameFilter(expected uint, falsePositiveRate float64) *UsernameFilter {
	return &UsernameFilter{
		filter: bloom.NewWithEstimates(expected, falsePositiveRate),
	}
}

// Warm seeds the filter with every known username.
func (f *UsernameFilter) Warm(usernames []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range usernames {
		f.filter.AddString(name)
	}
}

// Add records a newly seen username.
func (f *UsernameFilter) Add(username string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filter.AddString(username)
}

// MightContain reports whether the username could exist. False means it
// definitely does not.
func (f *UsernameFilter) MightContain(username string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.TestString(username)
}
