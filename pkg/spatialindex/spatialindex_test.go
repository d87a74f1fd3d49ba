package spatialindex

import (
	"testing"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A(0,0) - B(0,0.001) - C(0,0.002), and D(0.01,0) - E(0.01,0.001) about 1.1 km north.
func fixtureGraph(t *testing.T) *graph.Graph {
	g := graph.NewGraph()
	nodes := []datastructure.Node{
		datastructure.NewNode("A", 0, 0),
		datastructure.NewNode("B", 0, 0.001),
		datastructure.NewNode("C", 0, 0.002),
		datastructure.NewNode("D", 0.01, 0),
		datastructure.NewNode("E", 0.01, 0.001),
	}
	for _, n := range nodes {
		require.NoError(t, g.AddNode(n))
	}
	require.NoError(t, g.AddUndirectedEdge("ab", "A", "B", 111))
	require.NoError(t, g.AddUndirectedEdge("bc", "B", "C", 111))
	require.NoError(t, g.AddDirectedEdge("de", "D", "E", 111))
	return g
}

func TestNearbySegments(t *testing.T) {
	idx, err := BuildSegmentIndex(fixtureGraph(t))
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Size())

	t.Run("nearest first", func(t *testing.T) {
		segs, err := idx.NearbySegments(datastructure.NewCoordinate(0.0001, 0.0017), 50, 0)
		require.NoError(t, err)
		require.Len(t, segs, 1)
		assert.Equal(t, "bc", segs[0].Edge.ID)
		assert.InDelta(t, 11.1, segs[0].Distance, 0.2)
		assert.InDelta(t, 0.7, segs[0].Projection.T, 1e-9)
	})

	t.Run("shared endpoint ties keep insertion order", func(t *testing.T) {
		segs, err := idx.NearbySegments(datastructure.NewCoordinate(0.0001, 0.001), 50, 0)
		require.NoError(t, err)
		require.Len(t, segs, 2)
		assert.Equal(t, "ab", segs[0].Edge.ID)
		assert.Equal(t, "bc", segs[1].Edge.ID)
	})

	t.Run("limit", func(t *testing.T) {
		segs, err := idx.NearbySegments(datastructure.NewCoordinate(0.0001, 0.001), 50, 1)
		require.NoError(t, err)
		assert.Len(t, segs, 1)
	})

	t.Run("nothing in range", func(t *testing.T) {
		segs, err := idx.NearbySegments(datastructure.NewCoordinate(0.005, 0.005), 50, 0)
		require.NoError(t, err)
		assert.Empty(t, segs)
	})

	t.Run("nearest neighbours ignore the radius", func(t *testing.T) {
		segs := idx.NearestSegments(datastructure.NewCoordinate(0.011, 0.0005), 1)
		require.Len(t, segs, 1)
		assert.Equal(t, "de", segs[0].Edge.ID)
	})
}

func TestNearbySegmentsEmptyGraph(t *testing.T) {
	idx, err := BuildSegmentIndex(graph.NewGraph())
	require.NoError(t, err)
	segs, err := idx.NearbySegments(datastructure.NewCoordinate(0, 0), 100, 0)
	require.NoError(t, err)
	assert.Empty(t, segs)
}

func TestCoverage(t *testing.T) {
	cov := BuildCoverage(fixtureGraph(t), DefaultResolution)

	assert.Equal(t, DefaultResolution, cov.Resolution)
	assert.NotEmpty(t, cov.Cells)
	total := 0
	for _, c := range cov.Cells {
		total += c.Nodes
	}
	assert.Equal(t, 5, total)
	assert.Greater(t, cov.AreaKm2, 0.0)
	require.NotNil(t, cov.BoundingBox)
	assert.Equal(t, 0.01, cov.BoundingBox.MaxLat)

	assert.True(t, cov.Covers(datastructure.NewCoordinate(0, 0.0005)))
	assert.False(t, cov.Covers(datastructure.NewCoordinate(10, 10)))
}

func TestCoverageEmptyGraph(t *testing.T) {
	cov := BuildCoverage(graph.NewGraph(), DefaultResolution)
	assert.Empty(t, cov.Cells)
	assert.Nil(t, cov.BoundingBox)
	assert.False(t, cov.Covers(datastructure.NewCoordinate(0, 0)))
}
