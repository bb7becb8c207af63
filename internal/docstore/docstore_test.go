// Package docstore_test tests the raw-document cache implementations.
package docstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfdata/bookharvest/internal/docstore"
)

func TestKey(t *testing.T) {
	t.Parallel()

	url := "https://www.goodreads.com/book/show/2657.To_Kill_a_Mockingbird"
	key := docstore.Key(url)
	assert.NotContains(t, key, "/")
	assert.NotContains(t, key, ":")
	assert.Equal(t, key, docstore.Key(url))
	assert.NotEqual(t, key, docstore.Key(url+"?ac=1"))
}

func TestNewDisk(t *testing.T) {
	t.Run("CreatesMissingDir", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "docs")
		cache, err := docstore.NewDisk(base)
		require.NoError(t, err)
		assert.NotNil(t, cache)
		info, err := os.Stat(base)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("MissingBaseDir", func(t *testing.T) {
		_, err := docstore.NewDisk("  ")
		assert.Error(t, err)
	})

	t.Run("BaseDirIsNotADirectory", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "occupied")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
		_, err := docstore.NewDisk(file)
		assert.Error(t, err)
	})
}

func TestDiskRoundTrip(t *testing.T) {
	cache, err := docstore.NewDisk(t.TempDir())
	require.NoError(t, err)

	key := docstore.Key("https://www.goodreads.com/book/show/1885.Pride_and_Prejudice")

	t.Run("MissBeforePut", func(t *testing.T) {
		_, err := cache.Get(key)
		assert.ErrorIs(t, err, docstore.ErrMiss)
	})

	t.Run("PutThenGet", func(t *testing.T) {
		require.NoError(t, cache.Put(key, []byte("<html>doc</html>")))
		data, err := cache.Get(key)
		require.NoError(t, err)
		assert.Equal(t, []byte("<html>doc</html>"), data)
	})

	t.Run("OverwriteReplaces", func(t *testing.T) {
		require.NoError(t, cache.Put(key, []byte("<html>v2</html>")))
		data, err := cache.Get(key)
		require.NoError(t, err)
		assert.Equal(t, []byte("<html>v2</html>"), data)
	})

	t.Run("RejectsTraversalKey", func(t *testing.T) {
		assert.Error(t, cache.Put(filepath.Join("..", "escape"), []byte("x")))
		_, err := cache.Get(filepath.Join("..", "escape"))
		assert.Error(t, err)
	})

	t.Run("RejectsEmptyKey", func(t *testing.T) {
		assert.Error(t, cache.Put(" ", []byte("x")))
	})
}

func TestMemory(t *testing.T) {
	t.Parallel()

	cache := docstore.NewMemory()
	_, err := cache.Get("missing")
	assert.ErrorIs(t, err, docstore.ErrMiss)

	require.NoError(t, cache.Put("k", []byte("doc")))
	data, err := cache.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("doc"), data)

	// Mutating the returned slice must not leak into the cache.
	data[0] = 'X'
	again, err := cache.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("doc"), again)
	assert.Equal(t, 1, cache.Len())
}
