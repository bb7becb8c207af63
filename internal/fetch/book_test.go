package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shelfdata/bookharvest/internal/docstore"
	"github.com/shelfdata/bookharvest/internal/fetch"
)

const detailURL = "https://www.goodreads.com/book/show/18619684.The_Martian"

const minimalBookDoc = `<html><body><div id="metacol">
<h1 id="bookTitle">The Martian</h1>
<a class="authorName"><span itemprop="name">Andy Weir</span></a>
</div></body></html>`

type scriptedGetter struct {
	calls atomic.Int64
	body  []byte
	code  int
	err   error
}

func (g *scriptedGetter) Get(_ context.Context, url string, _ http.Header) (fetch.Response, error) {
	g.calls.Add(1)
	if g.err != nil {
		return fetch.Response{}, g.err
	}
	return fetch.Response{URL: url, StatusCode: g.code, Body: g.body}, nil
}

type failingCache struct{}

func (failingCache) Get(string) ([]byte, error) { return nil, docstore.ErrMiss }
func (failingCache) Put(string, []byte) error   { return errors.New("disk full") }

func TestBookFetcherCacheHit(t *testing.T) {
	t.Parallel()

	cache := docstore.NewMemory()
	require.NoError(t, cache.Put(docstore.Key(detailURL), []byte(minimalBookDoc)))
	getter := &scriptedGetter{code: http.StatusOK}

	f := fetch.NewBookFetcher(getter, cache, true, zap.NewNop())
	rec, stats := f.Fetch(context.Background(), detailURL)

	require.NotNil(t, rec)
	assert.Equal(t, "The Martian", *rec.Title)
	assert.True(t, stats.FromCache)
	assert.Zero(t, stats.StatusCode)
	assert.Equal(t, int64(0), getter.calls.Load(), "cache hit must not touch the network")
}

func TestBookFetcherCacheMissWritesThrough(t *testing.T) {
	t.Parallel()

	cache := docstore.NewMemory()
	getter := &scriptedGetter{code: http.StatusOK, body: []byte(minimalBookDoc)}

	f := fetch.NewBookFetcher(getter, cache, true, zap.NewNop())
	rec, stats := f.Fetch(context.Background(), detailURL)

	require.NotNil(t, rec)
	assert.Equal(t, int64(1), getter.calls.Load())
	assert.Equal(t, http.StatusOK, stats.StatusCode)
	assert.False(t, stats.FromCache)

	cached, err := cache.Get(docstore.Key(detailURL))
	require.NoError(t, err)
	assert.Equal(t, []byte(minimalBookDoc), cached, "raw response must be persisted verbatim")
}

func TestBookFetcherBypassesCacheWhenDisabled(t *testing.T) {
	t.Parallel()

	cache := docstore.NewMemory()
	require.NoError(t, cache.Put(docstore.Key(detailURL), []byte("<html>stale</html>")))
	getter := &scriptedGetter{code: http.StatusOK, body: []byte(minimalBookDoc)}

	f := fetch.NewBookFetcher(getter, cache, false, zap.NewNop())
	rec, _ := f.Fetch(context.Background(), detailURL)

	require.NotNil(t, rec)
	assert.Equal(t, int64(1), getter.calls.Load())
	cached, err := cache.Get(docstore.Key(detailURL))
	require.NoError(t, err)
	assert.Equal(t, []byte(minimalBookDoc), cached, "refetch must overwrite the stale copy")
}

func TestBookFetcherAbsentOnErrors(t *testing.T) {
	t.Parallel()

	t.Run("NetworkError", func(t *testing.T) {
		getter := &scriptedGetter{err: errors.New("connection refused")}
		f := fetch.NewBookFetcher(getter, docstore.NewMemory(), true, zap.NewNop())
		rec, stats := f.Fetch(context.Background(), detailURL)
		assert.Nil(t, rec)
		assert.False(t, stats.FromCache)
	})

	t.Run("ExtractFailure", func(t *testing.T) {
		getter := &scriptedGetter{code: http.StatusOK, body: []byte("<html><p>not a book</p></html>")}
		f := fetch.NewBookFetcher(getter, docstore.NewMemory(), true, zap.NewNop())
		rec, _ := f.Fetch(context.Background(), detailURL)
		assert.Nil(t, rec)
	})

	t.Run("CacheWriteFailure", func(t *testing.T) {
		getter := &scriptedGetter{code: http.StatusOK, body: []byte(minimalBookDoc)}
		f := fetch.NewBookFetcher(getter, failingCache{}, true, zap.NewNop())
		rec, _ := f.Fetch(context.Background(), detailURL)
		assert.Nil(t, rec, "any failure in fetch-parse-extract must yield absent")
	})
}
