package dataset

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cinegraph/cinegraph/errors"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := OpenCache(filepath.Join(t.TempDir(), "cache.db"), zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestCacheStoreAndGet(t *testing.T) {
	cache := openTestCache(t)

	ds := &Dataset{
		FetchedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		Source:    "https://example.com/movies.json",
		Movies:    []MovieRecord{{ID: 1, Title: "Alpha"}},
	}
	require.NoError(t, cache.Store(ds))

	got, err := cache.Get(ds.Source)
	require.NoError(t, err)
	assert.Equal(t, ds.Source, got.Source)
	require.Len(t, got.Movies, 1)
	assert.Equal(t, "Alpha", got.Movies[0].Title)
}

func TestCacheUpsertReplacesSource(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Store(&Dataset{
		Source: "src",
		Movies: []MovieRecord{{ID: 1, Title: "Old"}},
	}))
	require.NoError(t, cache.Store(&Dataset{
		Source: "src",
		Movies: []MovieRecord{{ID: 1, Title: "New"}, {ID: 2, Title: "Extra"}},
	}))

	got, err := cache.Get("src")
	require.NoError(t, err)
	require.Len(t, got.Movies, 2)
	assert.Equal(t, "New", got.Movies[0].Title)
}

func TestCacheLatest(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Store(&Dataset{Source: "a", Movies: []MovieRecord{{ID: 1, Title: "A"}}}))
	got, err := cache.Latest()
	require.NoError(t, err)
	assert.Equal(t, "a", got.Source)
}

func TestCacheEmpty(t *testing.T) {
	cache := openTestCache(t)

	_, err := cache.Latest()
	require.Error(t, err)
	assert.True(t, errors.IsNoDataError(err))

	_, err = cache.Get("never-stored")
	require.Error(t, err)
	assert.True(t, errors.IsNoDataError(err))
}
