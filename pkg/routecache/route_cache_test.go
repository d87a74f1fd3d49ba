package routecache

import (
	"testing"
	"time"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRoute() datastructure.PathResult {
	return datastructure.NewPathResult(
		[]string{"A", "B", "C"},
		[]datastructure.Coordinate{
			datastructure.NewCoordinate(0, 0),
			datastructure.NewCoordinate(0, 0.001),
			datastructure.NewCoordinate(0, 0.002),
		},
		[]string{"ab", "bc"},
		444, 222, 2, 3*time.Millisecond,
	)
}

func TestRouteCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := Open(dir, zap.NewNop())
	require.NoError(t, err)

	start := datastructure.NewCoordinate(-7.7601234, 110.3701234)
	end := datastructure.NewCoordinate(-7.7509876, 110.3809876)

	_, ok, err := cache.Get(1, "astar", start, end)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(1, "astar", start, end, testRoute()))
	got, ok, err := cache.Get(1, "astar", start, end)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testRoute(), got)

	t.Run("coordinates are rounded", func(t *testing.T) {
		near := datastructure.NewCoordinate(start.Lat+1e-8, start.Lon-1e-8)
		_, ok, err := cache.Get(1, "astar", near, end)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("algorithm is part of the key", func(t *testing.T) {
		_, ok, err := cache.Get(1, "dijkstra", start, end)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("not found routes are not stored", func(t *testing.T) {
		require.NoError(t, cache.Put(1, "astar", end, start, datastructure.NotFoundPathResult(3, 0)))
		_, ok, err := cache.Get(1, "astar", end, start)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("newer version purges older entries", func(t *testing.T) {
		_, ok, err := cache.Get(2, "astar", start, end)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = cache.Get(1, "astar", start, end)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	st := cache.Stats()
	assert.Equal(t, uint64(2), st.Hits)
	assert.Equal(t, uint64(2), st.Version)

	require.NoError(t, cache.Put(2, "astar", start, end, testRoute()))
	require.NoError(t, cache.Close())

	reopened, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer reopened.Close()
	_, ok, err = reopened.Get(2, "astar", start, end)
	require.NoError(t, err)
	assert.False(t, ok)
}
