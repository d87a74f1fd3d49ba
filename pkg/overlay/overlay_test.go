package overlay

import (
	"testing"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
fixture, all on the equator:

	A(0,0) -ab- B(0,0.001) -bc- C(0,0.002) -cd- D(0,0.003)
	            B ======bc2====== C            (parallel edge)
	E(1,1) -ef- F(1,1.001)                     (separate component)
*/
func fixtureGraph(t *testing.T) *graph.Graph {
	g := graph.NewGraph()
	nodes := []datastructure.Node{
		datastructure.NewNode("A", 0, 0),
		datastructure.NewNode("B", 0, 0.001),
		datastructure.NewNode("C", 0, 0.002),
		datastructure.NewNode("D", 0, 0.003),
		datastructure.NewNode("E", 1, 1),
		datastructure.NewNode("F", 1, 1.001),
	}
	for _, n := range nodes {
		require.NoError(t, g.AddNode(n))
	}
	require.NoError(t, g.AddUndirectedEdge("ab", "A", "B", 111))
	require.NoError(t, g.AddUndirectedEdge("bc", "B", "C", 111))
	require.NoError(t, g.AddDirectedEdge("cd", "C", "D", 111))
	require.NoError(t, g.AddUndirectedEdge("bc2", "C", "B", 140))
	require.NoError(t, g.AddUndirectedEdge("ef", "E", "F", 111))
	return g
}

func TestOverlayStatus(t *testing.T) {
	o := New()
	assert.Equal(t, datastructure.StatusNormal, o.Classify("ab"))

	o.Set("ab", datastructure.StatusBlocked)
	assert.Equal(t, datastructure.StatusBlocked, o.Classify("ab"))

	o.Set("ab", datastructure.StatusCongested)
	assert.Equal(t, datastructure.StatusCongested, o.Classify("ab"))
	assert.Empty(t, o.Blocked())
	assert.Equal(t, []string{"ab"}, o.Congested())

	mult, ok := o.Multiplier("ab")
	assert.True(t, ok)
	assert.Equal(t, 3.0, mult)

	o.Set("bc", datastructure.StatusBlocked)
	_, ok = o.Multiplier("bc")
	assert.False(t, ok)

	o.Set("ab", datastructure.StatusNormal)
	assert.Equal(t, datastructure.StatusNormal, o.Classify("ab"))

	o.ClearAll()
	assert.Equal(t, 0, o.Len())
}

func TestOverlayInherit(t *testing.T) {
	o := New()
	o.Set("bc", datastructure.StatusCongested)
	o.Inherit("bc", "bc~1", "bc~2")

	assert.Equal(t, datastructure.StatusNormal, o.Classify("bc"))
	assert.Equal(t, datastructure.StatusCongested, o.Classify("bc~1"))
	assert.Equal(t, datastructure.StatusCongested, o.Classify("bc~2"))

	o.Inherit("ab", "ab~1", "ab~2")
	assert.Equal(t, 2, o.Len())
}

func TestUndirectedBFS(t *testing.T) {
	g := fixtureGraph(t)

	path, ok := UndirectedBFS(g, "D", "A")
	require.True(t, ok)
	assert.Equal(t, []string{"D", "C", "B", "A"}, path)

	path, ok = UndirectedBFS(g, "B", "B")
	require.True(t, ok)
	assert.Equal(t, []string{"B"}, path)

	_, ok = UndirectedBFS(g, "A", "E")
	assert.False(t, ok)
	_, ok = UndirectedBFS(g, "A", "nope")
	assert.False(t, ok)
}

func TestApplyRun(t *testing.T) {
	t.Run("both clicks on the same edge edit exactly one edge", func(t *testing.T) {
		g := fixtureGraph(t)
		o := New()
		run, err := o.ApplyRun(g, datastructure.NewCoordinate(0, 0.0002), datastructure.NewCoordinate(0.00001, 0.0008),
			datastructure.StatusBlocked)
		require.NoError(t, err)
		assert.Equal(t, []string{"ab"}, run.EdgeIDs)
		assert.Equal(t, []string{"ab"}, o.Blocked())
	})

	t.Run("run covers the clicked edges and parallel edges on the path", func(t *testing.T) {
		g := fixtureGraph(t)
		o := New()
		run, err := o.ApplyRun(g, datastructure.NewCoordinate(0, 0.0005), datastructure.NewCoordinate(0, 0.0025),
			datastructure.StatusCongested)
		require.NoError(t, err)

		// ab.B = B, cd.A = C
		assert.Equal(t, []string{"B", "C"}, run.NodePath)
		assert.Equal(t, []string{"ab", "cd", "bc", "bc2"}, run.EdgeIDs)
		assert.Equal(t, []string{"ab", "bc", "bc2", "cd"}, o.Congested())
	})

	t.Run("adjacent edges only edit the two clicked edges", func(t *testing.T) {
		g := fixtureGraph(t)
		o := New()
		run, err := o.ApplyRun(g, datastructure.NewCoordinate(0, 0.0005), datastructure.NewCoordinate(0.0001, 0.0015),
			datastructure.StatusBlocked)
		require.NoError(t, err)
		assert.Equal(t, []string{"ab", "bc"}, run.EdgeIDs)
	})

	t.Run("clear removes the run from both sets", func(t *testing.T) {
		g := fixtureGraph(t)
		o := New()
		o.Set("ab", datastructure.StatusBlocked)
		o.Set("bc", datastructure.StatusCongested)
		o.Set("ef", datastructure.StatusBlocked)

		_, err := o.ApplyRun(g, datastructure.NewCoordinate(0, 0.0005), datastructure.NewCoordinate(0.0001, 0.0015),
			datastructure.StatusNormal)
		require.NoError(t, err)
		assert.Equal(t, []string{"ef"}, o.Blocked())
		assert.Empty(t, o.Congested())
	})

	t.Run("disconnected edges leave the overlay untouched", func(t *testing.T) {
		g := fixtureGraph(t)
		o := New()
		o.Set("cd", datastructure.StatusCongested)

		_, err := o.ApplyRun(g, datastructure.NewCoordinate(0, 0.0005), datastructure.NewCoordinate(1, 1.0005),
			datastructure.StatusBlocked)
		assert.ErrorIs(t, err, datastructure.ErrNoPathConnectingEdges)
		assert.Empty(t, o.Blocked())
		assert.Equal(t, []string{"cd"}, o.Congested())
	})

	t.Run("empty graph", func(t *testing.T) {
		_, err := New().ApplyRun(graph.NewGraph(), datastructure.NewCoordinate(0, 0), datastructure.NewCoordinate(1, 1),
			datastructure.StatusBlocked)
		assert.ErrorIs(t, err, datastructure.ErrNoRoadNearby)
	})
}
