// Package cache provides an optional Redis-backed cache for fetched order
// pages. Entries expire via a fixed TTL; within the TTL window identical
// page requests short-circuit the admin API.
package cache

import "time"

// Entry is a cached order page.
type Entry struct {
	// Body is the raw response body of the page.
	Body []byte `json:"body"`

	// NextURL is the pagination cursor discovered with this page, "" for the
	// last page of a chain.
	NextURL string `json:"next_url"`

	// CachedAt is when the page was fetched.
	CachedAt time.Time `json:"cached_at"`
}
