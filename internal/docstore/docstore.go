// Package docstore caches raw detail documents on disk, one file per book
// URL. The cache is content-addressed by the escaped URL, so refetching and
// rewriting an entry is idempotent.
package docstore

import (
	"errors"
	"net/url"
)

// ErrMiss is returned by Get when no document is cached for the key.
var ErrMiss = errors.New("docstore: miss")

// Cache is the raw-document store consulted by the book fetcher.
type Cache interface {
	// Get returns the cached bytes for key, or ErrMiss.
	Get(key string) ([]byte, error)
	// Put stores data under key, replacing any prior entry.
	Put(key string, data []byte) error
}

// Key canonicalizes a book URL into its cache key: the whole URL
// percent-escaped into a single safe filename. Equal URL strings always map
// to the same file.
func Key(rawURL string) string {
	return url.QueryEscape(rawURL)
}
