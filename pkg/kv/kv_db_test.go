package kv

import (
	"context"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testSnapshot() graph.Snapshot {
	return graph.Snapshot{
		Nodes: []graph.SnapshotNode{
			{ID: "A", Lat: 0, Lng: 0, Name: "start"},
			{ID: "B", Lat: 0, Lng: 0.001},
			{ID: "C", Lat: 0, Lng: 0.002, IsPOI: true},
		},
		Edges: []graph.SnapshotEdge{
			{ID: "ab", From: "A", To: "B", Distance: 111, Bidirectional: true},
			{ID: "bc", From: "B", To: "C", Distance: 111, Bidirectional: false, Name: "Jalan Malioboro"},
		},
	}
}

func TestSnapshotStore(t *testing.T) {
	db, err := OpenKVDB(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	snap := testSnapshot()

	meta, err := db.SaveSnapshot(ctx, "yogya", snap)
	require.NoError(t, err)
	assert.Equal(t, 3, meta.Nodes)
	assert.Equal(t, 2, meta.Edges)
	assert.Greater(t, meta.Size, 0)

	got, err := db.LoadSnapshot("yogya")
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	_, err = db.SaveSnapshot(ctx, "empty", graph.Snapshot{})
	require.NoError(t, err)
	empty, err := db.LoadSnapshot("empty")
	require.NoError(t, err)
	assert.Empty(t, empty.Nodes)

	metas, err := db.ListSnapshots()
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "empty", metas[0].Name)
	assert.Equal(t, "yogya", metas[1].Name)

	require.NoError(t, db.DeleteSnapshot("empty"))
	_, err = db.LoadSnapshot("empty")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
	assert.ErrorIs(t, db.DeleteSnapshot("empty"), ErrSnapshotNotFound)

	_, err = db.SaveSnapshot(ctx, "../etc", snap)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestCompression(t *testing.T) {
	bb := []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	c, err := compress(bb)
	require.NoError(t, err)
	assert.Less(t, len(c), len(bb))

	d, err := decompress(c)
	require.NoError(t, err)
	assert.Equal(t, bb, d)
}

func TestDeleteSnapshotClosedDB(t *testing.T) {
	db, err := OpenKVDB(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	_, err = db.SaveSnapshot(context.Background(), "yogya", testSnapshot())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	err = db.DeleteSnapshot("yogya")
	assert.ErrorIs(t, err, badger.ErrDBClosed)
	assert.NotErrorIs(t, err, ErrSnapshotNotFound)
}
