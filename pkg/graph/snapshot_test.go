package graph

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedSnapshot = `{
  "nodes": [
    {"id": 1, "lat": 0, "lng": 0, "name": "A"},
    {"id": "2", "lat": 0, "lon": 0.001},
    {"id": 3.0, "lat": 0, "lng": 0.002, "isPOI": true}
  ],
  "edges": [
    {"id": 10, "from": 1, "to": "2", "distance": 111, "bidirectional": true},
    {"id": "e-bc", "from": 2, "to": 3, "distance": 111, "bidirectional": false},
    {"from": 1, "to": 3}
  ]
}`

func TestParseSnapshot(t *testing.T) {
	snap, err := ParseSnapshot([]byte(mixedSnapshot))
	require.NoError(t, err)

	require.Len(t, snap.Nodes, 3)
	assert.Equal(t, "1", snap.Nodes[0].ID)
	assert.Equal(t, "2", snap.Nodes[1].ID)
	assert.Equal(t, "3", snap.Nodes[2].ID)
	assert.Equal(t, 0.001, snap.Nodes[1].Lng)
	assert.True(t, snap.Nodes[2].IsPOI)

	require.Len(t, snap.Edges, 3)
	assert.Equal(t, "10", snap.Edges[0].ID)
	assert.False(t, snap.Edges[1].Bidirectional)

	generated := snap.Edges[2]
	assert.Equal(t, "e2", generated.ID)
	assert.True(t, generated.Bidirectional)
	assert.InDelta(t, 222.4, generated.Distance, 0.5)
}

func TestParseSnapshotInvalid(t *testing.T) {
	cases := map[string]string{
		"not json":           `{"nodes": [`,
		"missing nodes":      `{"edges": []}`,
		"missing edges":      `{"nodes": []}`,
		"null nodes":         `{"nodes": null, "edges": []}`,
		"missing coordinate": `{"nodes": [{"id": 1, "lat": 0}], "edges": []}`,
		"bad id":             `{"nodes": [{"id": true, "lat": 0, "lng": 0}], "edges": []}`,
		"dangling edge":      `{"nodes": [{"id": 1, "lat": 0, "lng": 0}], "edges": [{"id": 1, "from": 1, "to": 2, "distance": 3}]}`,
		"duplicate node":     `{"nodes": [{"id": 1, "lat": 0, "lng": 0}, {"id": "1", "lat": 1, "lng": 1}], "edges": []}`,
		"negative distance":  `{"nodes": [{"id": 1, "lat": 0, "lng": 0}, {"id": 2, "lat": 1, "lng": 1}], "edges": [{"from": 1, "to": 2, "distance": -1}]}`,
		"latitude range":     `{"nodes": [{"id": 1, "lat": 91, "lng": 0}], "edges": []}`,
		"reserved node id":   `{"nodes": [{"id": "@virtual/x", "lat": 0, "lng": 0}], "edges": []}`,
		"reserved edge id":   `{"nodes": [{"id": 1, "lat": 0, "lng": 0}, {"id": 2, "lat": 1, "lng": 1}], "edges": [{"id": "@virtual/e", "from": 1, "to": 2}]}`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadJSON([]byte(doc))
			assert.ErrorIs(t, err, datastructure.ErrInvalidGraphFormat)
		})
	}
}

func TestFromSnapshotRejectsNonFiniteDistance(t *testing.T) {
	for _, dist := range []float64{math.NaN(), math.Inf(1)} {
		snap := Snapshot{
			Nodes: []SnapshotNode{{ID: "A", Lat: 0, Lng: 0}, {ID: "B", Lat: 0, Lng: 0.001}},
			Edges: []SnapshotEdge{{ID: "ab", From: "A", To: "B", Distance: dist, Bidirectional: true}},
		}
		_, err := FromSnapshot(snap)
		assert.ErrorIs(t, err, datastructure.ErrInvalidGraphFormat)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g, err := LoadJSON([]byte(mixedSnapshot))
	require.NoError(t, err)

	data, err := g.ExportJSON()
	require.NoError(t, err)

	var doc map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	_, hasLng := doc["nodes"][1]["lng"]
	_, hasLon := doc["nodes"][1]["lon"]
	assert.True(t, hasLng)
	assert.False(t, hasLon)

	again, err := LoadJSON(data)
	require.NoError(t, err)
	assert.Equal(t, g.NodeCount(), again.NodeCount())
	assert.Equal(t, g.EdgeCount(), again.EdgeCount())
	assert.Equal(t, g.Snapshot(), again.Snapshot())
}
