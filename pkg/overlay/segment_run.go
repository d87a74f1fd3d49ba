package overlay

import (
	"fmt"

	"github.com/lintang-b-s/roadnav/pkg/datastructure"
	"github.com/lintang-b-s/roadnav/pkg/graph"
	"github.com/lintang-b-s/roadnav/pkg/util"
)

// Run edges between two road clicks. NodePath is empty when both clicks hit the same edge.
type Run struct {
	FirstEdge  string
	SecondEdge string
	NodePath   []string
	EdgeIDs    []string
}

/*
ResolveRun find the edges lying between two clicked points.

each click is attached to its nearest edge. when both hit the same edge the run is that edge.
otherwise an undirected bfs connects an endpoint of the first edge to an endpoint of the
second one, trying (first.B, second.A), (first.A, second.B), (first.B, second.B),
(first.A, second.A) in that order. the run is both clicked edges plus every parallel edge
between consecutive nodes of the bfs path.
*/
func ResolveRun(g *graph.Graph, first, second datastructure.Coordinate) (Run, error) {
	firstEdge, ok := g.NearestEdge(first)
	if !ok {
		return Run{}, fmt.Errorf("resolve first click: %w", datastructure.ErrNoRoadNearby)
	}
	secondEdge, ok := g.NearestEdge(second)
	if !ok {
		return Run{}, fmt.Errorf("resolve second click: %w", datastructure.ErrNoRoadNearby)
	}

	fe, se := firstEdge.Edge, secondEdge.Edge
	if fe.ID == se.ID {
		return Run{
			FirstEdge:  fe.ID,
			SecondEdge: se.ID,
			NodePath:   []string{},
			EdgeIDs:    []string{fe.ID},
		}, nil
	}

	combinations := [][2]string{
		{fe.B, se.A},
		{fe.A, se.B},
		{fe.B, se.B},
		{fe.A, se.A},
	}
	for _, c := range combinations {
		path, found := UndirectedBFS(g, c[0], c[1])
		if !found {
			continue
		}

		edgeIDs := []string{fe.ID, se.ID}
		seen := map[string]struct{}{fe.ID: {}, se.ID: {}}
		for i := 0; i+1 < len(path); i++ {
			for _, e := range g.EdgesBetween(path[i], path[i+1]) {
				if _, ok := seen[e.ID]; ok {
					continue
				}
				seen[e.ID] = struct{}{}
				edgeIDs = append(edgeIDs, e.ID)
			}
		}
		return Run{
			FirstEdge:  fe.ID,
			SecondEdge: se.ID,
			NodePath:   path,
			EdgeIDs:    edgeIDs,
		}, nil
	}
	return Run{}, fmt.Errorf("edges %s and %s: %w", fe.ID, se.ID, datastructure.ErrNoPathConnectingEdges)
}

// UndirectedBFS fewest-hop path ignoring edge direction. neighbors are visited in adjacency order.
func UndirectedBFS(g *graph.Graph, from, to string) ([]string, bool) {
	if !g.HasNode(from) || !g.HasNode(to) {
		return nil, false
	}
	if from == to {
		return []string{from}, true
	}

	parent := map[string]string{from: ""}
	queue := []string{from}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range g.Neighbors(curr, false) {
			if _, visited := parent[next]; visited {
				continue
			}
			parent[next] = curr
			if next == to {
				return buildPath(parent, from, to), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

func buildPath(parent map[string]string, from, to string) []string {
	path := []string{to}
	for curr := to; curr != from; {
		curr = parent[curr]
		path = append(path, curr)
	}
	return util.ReverseG(path)
}

// ApplyRun resolves the run and applies status to it. the overlay is untouched on error.
func (o *Overlay) ApplyRun(g *graph.Graph, first, second datastructure.Coordinate,
	status datastructure.RoadStatus) (Run, error) {
	run, err := ResolveRun(g, first, second)
	if err != nil {
		return Run{}, err
	}
	o.Apply(run.EdgeIDs, status)
	return run, nil
}
