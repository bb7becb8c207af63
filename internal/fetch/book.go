package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shelfdata/bookharvest/internal/catalog"
	"github.com/shelfdata/bookharvest/internal/docstore"
	"github.com/shelfdata/bookharvest/internal/extract"
)

// Stats describes how one book fetch was satisfied, for progress reporting.
type Stats struct {
	// StatusCode is zero when the document came from cache or the fetch
	// failed before an HTTP response.
	StatusCode int
	FromCache  bool
	Bytes      int64
	Duration   time.Duration
}

// BookFetcher turns one book URL into a record. Every failure anywhere in
// fetch-parse-extract is absorbed at this boundary: the error is logged
// with a stack and the book is reported absent, never an error. Partial
// catalog loss is preferred over a crawl-halting failure.
type BookFetcher struct {
	getter   Getter
	cache    docstore.Cache
	useCache bool
	logger   *zap.Logger
}

// NewBookFetcher wires a Getter and a document cache. When useCache is off
// every fetch goes to the network and overwrites the cached copy.
func NewBookFetcher(getter Getter, cache docstore.Cache, useCache bool, logger *zap.Logger) *BookFetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookFetcher{getter: getter, cache: cache, useCache: useCache, logger: logger}
}

// Fetch resolves one book URL into a record, or nil when anything failed.
func (f *BookFetcher) Fetch(ctx context.Context, rawURL string) (rec *catalog.BookRecord, stats Stats) {
	start := time.Now()
	defer func() {
		stats.Duration = time.Since(start)
		if r := recover(); r != nil {
			rec = nil
			f.logger.Error("book fetch panicked",
				zap.String("url", rawURL),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()

	data, err := f.document(ctx, rawURL, &stats)
	if err != nil {
		f.dropBook(rawURL, "fetch", err)
		return nil, stats
	}
	doc, err := extract.Document(data)
	if err != nil {
		f.dropBook(rawURL, "parse", err)
		return nil, stats
	}
	record, err := extract.Extract(doc, rawURL)
	if err != nil {
		f.dropBook(rawURL, "extract", err)
		return nil, stats
	}
	return &record, stats
}

// document returns the raw page bytes, cache-first when enabled. Network
// responses are persisted verbatim under the same canonical key before
// parsing.
func (f *BookFetcher) document(ctx context.Context, rawURL string, stats *Stats) ([]byte, error) {
	key := docstore.Key(rawURL)
	if f.useCache {
		data, err := f.cache.Get(key)
		switch {
		case err == nil:
			stats.FromCache = true
			stats.Bytes = int64(len(data))
			return data, nil
		case !errors.Is(err, docstore.ErrMiss):
			return nil, fmt.Errorf("cache read: %w", err)
		}
	}

	resp, err := f.getter.Get(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	stats.StatusCode = resp.StatusCode
	stats.Bytes = int64(len(resp.Body))

	if err := f.cache.Put(key, resp.Body); err != nil {
		return nil, fmt.Errorf("cache write: %w", err)
	}
	return resp.Body, nil
}

func (f *BookFetcher) dropBook(rawURL, phase string, err error) {
	f.logger.Error("book dropped",
		zap.String("url", rawURL),
		zap.String("phase", phase),
		zap.Error(err),
		zap.Stack("stack"))
}
